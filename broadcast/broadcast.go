// broadcast/broadcast.go
package broadcast

import (
	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/session"
)

// RoomBroadcaster resolves audiences through the session manager, so
// delivery never reaches back into room state. It implements
// room.Broadcaster.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
	}
}

// BroadcastToRoom delivers an event to every connection attached to the
// room, including the actor that caused it. Fire and forget: a failed or
// dropped send is logged and must never affect the other recipients or the
// state change behind the event.
func (b *RoomBroadcaster) BroadcastToRoom(roomID, event string, payload interface{}) {
	for _, s := range b.sessionManager.GetByRoomID(roomID) {
		if err := s.Send(event, payload); err != nil {
			logger.Log.Debugf("dropping %s to session %s: %v", event, s.ID, err)
		}
	}
}

// SendToPlayer delivers an event to a single connection. A missing session
// (the player already disconnected) is not an error.
func (b *RoomBroadcaster) SendToPlayer(playerID, event string, payload interface{}) {
	s, ok := b.sessionManager.Get(playerID)
	if !ok {
		return
	}
	if err := s.Send(event, payload); err != nil {
		logger.Log.Debugf("dropping %s to session %s: %v", event, s.ID, err)
	}
}
