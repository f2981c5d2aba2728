// state/waiting_state.go
package state

// WaitingState 人数不足，干等。开局由 HandleJoin 里的
// 人数判断触发，这里对一切事件装聋作哑。
type WaitingState struct {
	gameStateBase
}

func newWaitingState(g *Game) *WaitingState {
	return &WaitingState{gameStateBase{id: PhaseWaiting, game: g}}
}

func (s *WaitingState) OnEnter() {
	s.game.ctx.StopClock()
}
