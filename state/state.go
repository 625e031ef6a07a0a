package state

import (
	"errors"
	"sync"
)

// Lifecycle status names, doubling as state machine ids and as the string
// clients see in room payloads.
const (
	StatusLobby   = "lobby"
	StatusPlaying = "playing"
	StatusEnded   = "ended"
)

// 状态机接口
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
}

// 状态接口
type State interface {
	OnEnter()
	OnExit()
	GetID() string
	// HandleAction processes one serialized trigger. player is nil for
	// timer-driven actions.
	HandleAction(player Player, action Action) error
}

// ErrTransitionNotAllowed is returned when a state transition is not allowed.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// LifecycleTransitions is the room lifecycle: lobby -> playing -> ended,
// no skips, no way back.
func LifecycleTransitions() map[string][]string {
	return map[string][]string{
		StatusLobby:   {StatusPlaying},
		StatusPlaying: {StatusEnded},
	}
}

// 基础状态机实现
type BaseStateMachine struct {
	currentState State
	transitions  map[string][]string // fromState -> allowed toStates
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State, transitions map[string][]string) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  transitions,
	}
	initialState.OnEnter()
	return machine
}

func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	allowed := false
	for _, to := range sm.transitions[sm.currentState.GetID()] {
		if to == newState.GetID() {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrTransitionNotAllowed
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()

	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

// 房间状态基础结构
type RoomStateBase struct {
	ID   string
	Room RoomContext
}

func (s *RoomStateBase) GetID() string {
	return s.ID
}

func (s *RoomStateBase) OnEnter() {
	// 默认实现
}

func (s *RoomStateBase) OnExit() {
	// 默认实现
}

func (s *RoomStateBase) HandleAction(player Player, action Action) error {
	// 默认实现，具体状态可以覆盖此方法
	return nil
}
