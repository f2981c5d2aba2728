// state/intermission_state.go
package state

// IntermissionState 回合间歇。固定延迟后决定去向:
// 人数不足回等待，轮转打满回合上限进结算，否则开下一回合。
// 回调进来先验阶段，重置后迟到的回调直接作废。
type IntermissionState struct {
	gameStateBase
}

func newIntermissionState(g *Game) *IntermissionState {
	return &IntermissionState{gameStateBase{id: PhaseIntermission, game: g}}
}

func (s *IntermissionState) OnEnter() {
	g := s.game
	g.ctx.StopClock()
	g.timerSeconds = 0
	g.broadcastSnapshot()

	g.ctx.AfterDelay(g.cfg.IntermissionDelay, func() {
		s.elapsed()
	})
}

func (s *IntermissionState) elapsed() {
	g := s.game
	if g.Phase() != PhaseIntermission {
		// 间歇期内发生过重置，这个回调已过期
		return
	}

	if g.roster.Len() < g.cfg.MinPlayers {
		g.fullReset()
		return
	}

	// 队列耗尽且回合数已达上限: 下一次重填会越界，转入结算
	if g.queue.Len() == 0 && !g.firstTurn && g.round >= g.cfg.MaxRounds {
		g.machine.ChangeState(newGameOverState(g))
		return
	}

	g.machine.ChangeState(newSelectingState(g))
}
