package room

// Broadcaster defines the interface for delivering events to a room or to a
// single player. This is defined here to break the import cycle between
// room and broadcast. Implementations are fire and forget: they must never
// block the state transition that produced the event.
type Broadcaster interface {
	BroadcastToRoom(roomID, event string, payload interface{})
	SendToPlayer(playerID, event string, payload interface{})
}
