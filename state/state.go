package state

import (
	"errors"
)

// 会话阶段标识
const (
	PhaseWaiting      = "waiting"
	PhaseSelecting    = "selecting"
	PhaseActive       = "active"
	PhaseIntermission = "intermission"
	PhaseGameOver     = "gameover"
)

// 状态机接口
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(from, to string, condition func() bool)
}

// 状态接口。HandleEvent 只接受已经串行化的入站事件，
// 不适用于当前阶段的事件直接忽略。
type State interface {
	OnEnter()
	OnExit()
	OnTick()
	HandleEvent(playerID string, msgID uint16, data []byte)
	GetID() string
}

// ErrTransitionNotAllowed 转换守卫不满足
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// 基础状态机实现。转换表按 fromID -> toID 存守卫条件，
// 没有注册条件的转换默认放行。
type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

func (sm *BaseStateMachine) ChangeState(newState State) error {
	currentID := sm.currentState.GetID()
	newID := newState.GetID()

	if conditions, exists := sm.transitions[currentID]; exists {
		if condition, exists := conditions[newID]; exists {
			if condition != nil && !condition() {
				return ErrTransitionNotAllowed
			}
		}
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()

	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	return sm.currentState
}

func (sm *BaseStateMachine) AddTransition(from, to string, condition func() bool) {
	if _, exists := sm.transitions[from]; !exists {
		sm.transitions[from] = make(map[string]func() bool)
	}
	sm.transitions[from][to] = condition
}

// 阶段状态的公共部分
type gameStateBase struct {
	id   string
	game *Game
}

func (s *gameStateBase) GetID() string {
	return s.id
}

func (s *gameStateBase) OnEnter() {}

func (s *gameStateBase) OnExit() {}

func (s *gameStateBase) OnTick() {}

func (s *gameStateBase) HandleEvent(playerID string, msgID uint16, data []byte) {}
