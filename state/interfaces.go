// state/interfaces.go
package state

import (
	"time"

	"github.com/wfunc/quizserver/quiz"
)

// Player is the view of a participant the game states need: identity,
// round eligibility, and the ability to apply a scoring outcome.
type Player interface {
	GetID() string
	GetName() string
	IsHost() bool
	IsConnected() bool
	GetLives() int
	GetStreak() int
	GetScore() int
	ApplyOutcome(outcome quiz.Outcome)
}

// RoomContext is the interface a room must implement to be driven by the
// state machine. It is defined here to break the import cycle between room
// and state. Every method is called with the room's action lock already
// held; implementations must not re-acquire it.
type RoomContext interface {
	GetID() string
	GetStatus() string
	SetStatus(status string)
	ChangeState(newState State) error

	GetPlayers() []Player // join order
	GetPlayer(id string) (Player, bool)

	GenerateRounds() ([]quiz.Round, error)
	SetRounds(rounds []quiz.Round)
	GetRounds() []quiz.Round
	GetCurrentRound() int
	SetCurrentRound(n int)

	Broadcast(event string, payload interface{})
	SendToPlayer(playerID, event string, payload interface{})
	Snapshot() interface{}

	// ScheduleTimer runs fn after d, serialized with the room's other
	// actions. CancelTimer is best effort; fn must tolerate firing late.
	ScheduleTimer(d time.Duration, fn func()) int64
	CancelTimer(id int64)
}
