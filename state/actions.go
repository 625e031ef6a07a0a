// state/actions.go
package state

import "time"

// Action is the closed set of triggers a room state can receive. Inbound
// events are decoded into exactly one of these at the connection boundary;
// RoundTimeoutAction is produced internally when a round clock expires.
// States dispatch on the concrete type; anything a state does not handle is
// a silent no-op.
type Action interface {
	isAction()
}

// StartGameAction moves a lobby into play. Honored only from the host.
type StartGameAction struct{}

// SubmitAnswerAction is one participant's response to the current round.
type SubmitAnswerAction struct {
	RoundID      string
	Answer       string
	ResponseTime time.Duration
}

// NextRoundAction is the host's explicit round advance, used to skip past
// players who never answer.
type NextRoundAction struct{}

// EndGameAction is the host's explicit end. Accepted at any status, but it
// only has an effect while playing.
type EndGameAction struct{}

// DisconnectAction tells the current state a player just went away; a
// shrinking pending set can resolve the round.
type DisconnectAction struct{}

// RoundTimeoutAction marks every still-pending player as timed out for the
// identified round. Stale ids (a cancelled timer firing late) are ignored.
type RoundTimeoutAction struct {
	RoundID string
}

func (StartGameAction) isAction()    {}
func (SubmitAnswerAction) isAction() {}
func (NextRoundAction) isAction()    {}
func (EndGameAction) isAction()      {}
func (DisconnectAction) isAction()   {}
func (RoundTimeoutAction) isAction() {}
