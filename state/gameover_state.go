// state/gameover_state.go
package state

import (
	"encoding/json"

	"github.com/wfunc/sketchdash/logger"
	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
)

// GameOverState 整局结算。广播胜者，上报结算摘要，
// 展示一段时间后整体重置回等待阶段。
type GameOverState struct {
	gameStateBase
}

func newGameOverState(g *Game) *GameOverState {
	return &GameOverState{gameStateBase{id: PhaseGameOver, game: g}}
}

func (s *GameOverState) OnEnter() {
	g := s.game
	g.ctx.StopClock()
	g.broadcastSnapshot()

	winner := g.leader()
	win := models.GameWin{FinalScores: g.roster.Snapshot()}
	if winner != nil {
		win.WinnerID = winner.ID
		win.WinnerName = winner.Name
	}
	data, _ := json.Marshal(win)
	g.ctx.Broadcast(network.MsgTypeGameWin, data)

	logger.Log.Infof("房间 %s 整局结束，胜者 %s", g.ctx.GetID(), win.WinnerName)
	g.ctx.ReportResult(g.buildRecord(winner))

	g.ctx.AfterDelay(g.cfg.GameOverDelay, func() {
		if g.Phase() == PhaseGameOver {
			g.fullReset()
		}
	})
}
