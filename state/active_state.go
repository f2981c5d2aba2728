// state/active_state.go
package state

import (
	"encoding/json"

	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
	"github.com/wfunc/sketchdash/scoring"
	"github.com/wfunc/sketchdash/words"
)

// ActiveState 绘画进行中。画手的笔画原样转发给其他人，
// 猜词者的聊天与当前词比对计分。回合在倒计时归零、所有人
// 猜中或画手离线时结束。
type ActiveState struct {
	gameStateBase
}

func newActiveState(g *Game) *ActiveState {
	return &ActiveState{gameStateBase{id: PhaseActive, game: g}}
}

func (s *ActiveState) OnEnter() {
	g := s.game
	g.broadcastSnapshot()
	g.ctx.StartClock()
}

func (s *ActiveState) OnExit() {
	// 当前词只在绘画阶段存在
	s.game.currentWord = ""
}

func (s *ActiveState) OnTick() {
	g := s.game
	g.timerSeconds--
	g.broadcastTimer()
	if g.timerSeconds <= 0 {
		g.endTurn()
	}
}

func (s *ActiveState) HandleEvent(playerID string, msgID uint16, data []byte) {
	switch msgID {
	case network.MsgTypeDrawStroke:
		s.handleStroke(playerID, data)
	case network.MsgTypeClearCanvas:
		s.handleClear(playerID)
	case network.MsgTypeSendMessage:
		s.handleChat(playerID, data)
	}
}

// 笔画数据对引擎不透明，只做画手校验和转发
func (s *ActiveState) handleStroke(playerID string, data []byte) {
	g := s.game
	if playerID != g.drawerID {
		return
	}
	g.ctx.BroadcastExcept(playerID, network.MsgTypeRemoteDraw, data)
}

func (s *ActiveState) handleClear(playerID string) {
	g := s.game
	if playerID != g.drawerID {
		return
	}
	g.ctx.Broadcast(network.MsgTypeRemoteClear, nil)
}

func (s *ActiveState) handleChat(playerID string, data []byte) {
	g := s.game

	player, ok := g.roster.Get(playerID)
	if !ok || playerID == g.drawerID || player.HasGuessed {
		return
	}

	var msg models.ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	// 比对只做去空白加大写；绘画阶段当前词非空，空文本永远不命中
	if words.Normalize(msg.Text) != g.currentWord {
		// 没猜中，按普通聊天广播
		out, _ := json.Marshal(models.ChatMessage{User: player.Name, Text: msg.Text})
		g.ctx.Broadcast(network.MsgTypeNewMessage, out)
		return
	}

	s.scoreGuess(player)
}

func (s *ActiveState) scoreGuess(player *Player) {
	g := s.game

	rank := len(g.winners) + 1
	player.Score += g.policy(rank, g.timerSeconds)
	player.HasGuessed = true
	g.winners = append(g.winners, player.ID)

	// 每个猜中者给画手固定加分
	if drawer, ok := g.roster.Get(g.drawerID); ok {
		drawer.Score += scoring.DrawerBonus
	}

	out, _ := json.Marshal(models.CorrectGuess{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Players:    g.roster.Snapshot(),
	})
	g.ctx.Broadcast(network.MsgTypeCorrectGuess, out)

	// 除画手外所有在线玩家都猜中，回合立即结束
	if g.connectedWinners() >= g.roster.Len()-1 {
		g.endTurn()
	}
}
