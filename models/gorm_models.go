// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormPlayerProfile 玩家档案
type GormPlayerProfile struct {
	gorm.Model
	PlayerName string `gorm:"uniqueIndex;not null"`
	Avatar     string
	Stats      PlayerStats `gorm:"serializer:json;type:jsonb"`
}

// GormGameRecord 对局结算记录
type GormGameRecord struct {
	gorm.Model
	RoomID     string         `gorm:"index;not null"`
	Rounds     int            `gorm:"default:0"`
	WinnerName string         `gorm:"index"`
	Players    []PlayerResult `gorm:"serializer:json;type:jsonb;not null"`
	Duration   int            `gorm:"default:0"` // 对局时长(秒)
}

// PlayerStats 玩家累计统计
type PlayerStats struct {
	TotalGames int `json:"total_games"`
	Wins       int `json:"wins"`
	TotalScore int `json:"total_score"`
	BestScore  int `json:"best_score"`
}

// PlayerRanking 排行榜条目
type PlayerRanking struct {
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
	TotalScore int    `json:"total_score"`
}
