// models/models.go
package models

import (
	"time"
)

// Profile 玩家展示信息，引擎不解释其内容
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// JoinRequest 连接后的第一个包: 加入游戏
type JoinRequest struct {
	RoomID string `json:"room_id,omitempty"` // 空则自动匹配
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// JoinAck 回给加入者的确认
type JoinAck struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

// PlayerInfo 广播用的玩家快照
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Score      int    `json:"score"`
	HasGuessed bool   `json:"has_guessed"`
}

// GameStateUpdate 会话快照。WordChoices 和 CurrentWord 只在发给画手的
// 副本里出现，其他人收到的是掩掉的版本。
type GameStateUpdate struct {
	Phase        string   `json:"phase"`
	Round        int      `json:"round"`
	DrawerID     string   `json:"drawer_id,omitempty"`
	TimerSeconds int      `json:"timer_seconds"`
	WordChoices  []string `json:"word_choices,omitempty"`
	CurrentWord  string   `json:"current_word,omitempty"`
	Winners      []string `json:"winners"`
}

// TimerUpdate 每秒的倒计时通知
type TimerUpdate struct {
	Seconds int `json:"seconds"`
}

// WordSelection 画手提交的选词
type WordSelection struct {
	Word string `json:"word"`
}

// ChatMessage 聊天消息(猜错的猜测也走这里)
type ChatMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// CorrectGuess 有人猜中时广播
type CorrectGuess struct {
	PlayerID   string       `json:"player_id"`
	PlayerName string       `json:"player_name"`
	Players    []PlayerInfo `json:"players"`
}

// GameWin 整局结束时广播的胜者
type GameWin struct {
	WinnerID    string       `json:"winner_id"`
	WinnerName  string       `json:"winner_name"`
	FinalScores []PlayerInfo `json:"final_scores"`
}

// PlayerResult 一局结束时单个玩家的结果
type PlayerResult struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Outcome  string `json:"outcome"` // win/lose
}

// GameRecord 一局游戏的结算摘要，用于持久化
type GameRecord struct {
	RoomID     string         `json:"room_id"`
	Rounds     int            `json:"rounds"`
	WinnerName string         `json:"winner_name"`
	Players    []PlayerResult `json:"players"`
	Duration   int            `json:"duration"` // 秒
	CreatedAt  time.Time      `json:"created_at"`
}
