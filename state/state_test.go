package state

import (
	"errors"
	"testing"
)

// mockState records its lifecycle calls.
type mockState struct {
	id       string
	entered  int
	exited   int
	lastAct  Action
	lastPlay Player
}

func (s *mockState) OnEnter()      { s.entered++ }
func (s *mockState) OnExit()       { s.exited++ }
func (s *mockState) GetID() string { return s.id }
func (s *mockState) HandleAction(player Player, action Action) error {
	s.lastPlay = player
	s.lastAct = action
	return nil
}

func TestInitialStateEntered(t *testing.T) {
	initial := &mockState{id: StatusLobby}
	machine := NewBaseStateMachine(initial, LifecycleTransitions())

	if initial.entered != 1 {
		t.Errorf("initial OnEnter called %d times, want 1", initial.entered)
	}
	if machine.GetCurrentState() != initial {
		t.Error("GetCurrentState is not the initial state")
	}
}

func TestAllowedTransition(t *testing.T) {
	initial := &mockState{id: StatusLobby}
	next := &mockState{id: StatusPlaying}
	machine := NewBaseStateMachine(initial, LifecycleTransitions())

	if err := machine.ChangeState(next); err != nil {
		t.Fatalf("lobby -> playing: %v", err)
	}
	if initial.exited != 1 {
		t.Errorf("old state OnExit called %d times, want 1", initial.exited)
	}
	if next.entered != 1 {
		t.Errorf("new state OnEnter called %d times, want 1", next.entered)
	}
	if machine.GetCurrentState() != next {
		t.Error("GetCurrentState did not move")
	}
}

func TestBlockedTransitions(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{StatusLobby, StatusEnded},   // no skipping play
		{StatusLobby, StatusLobby},   // no self loop
		{StatusPlaying, StatusLobby}, // no way back
		{StatusEnded, StatusPlaying}, // terminal
		{StatusEnded, StatusLobby},
	}

	for _, c := range cases {
		machine := NewBaseStateMachine(&mockState{id: c.from}, LifecycleTransitions())
		target := &mockState{id: c.to}
		if err := machine.ChangeState(target); !errors.Is(err, ErrTransitionNotAllowed) {
			t.Errorf("%s -> %s: err = %v, want ErrTransitionNotAllowed", c.from, c.to, err)
		}
		if target.entered != 0 {
			t.Errorf("%s -> %s: rejected state was entered", c.from, c.to)
		}
		if machine.GetCurrentState().GetID() != c.from {
			t.Errorf("%s -> %s: machine moved despite rejection", c.from, c.to)
		}
	}
}

func TestPlayingToEndedAllowed(t *testing.T) {
	machine := NewBaseStateMachine(&mockState{id: StatusPlaying}, LifecycleTransitions())
	if err := machine.ChangeState(&mockState{id: StatusEnded}); err != nil {
		t.Fatalf("playing -> ended: %v", err)
	}
}
