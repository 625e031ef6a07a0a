package network

// Inbound events (client -> server).
const (
	EventCreateRoom   = "createRoom"
	EventJoinRoom     = "joinRoom"
	EventStartGame    = "startGame"
	EventSubmitAnswer = "submitAnswer"
	EventNextRound    = "nextRound" // also outbound: the round-advance broadcast
	EventEndGame      = "endGame"
)

// Outbound events (server -> client).
const (
	EventRoomCreated        = "roomCreated"
	EventRoomJoined         = "roomJoined"
	EventPlayerJoined       = "playerJoined"
	EventPlayerUpdated      = "playerUpdated"
	EventPlayerDisconnected = "playerDisconnected"
	EventGameStarted        = "gameStarted"
	EventAnswerResult       = "answerResult"
	EventGameOver           = "gameOver"
	EventGameEnded          = "gameEnded"
	EventError              = "error"
)

// Inbound payloads. Field names match the original browser client.

type CreateRoomRequest struct {
	HostName string `json:"hostName"`
}

type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type RoomRequest struct {
	RoomID string `json:"roomId"`
}

type SubmitAnswerRequest struct {
	RoomID         string `json:"roomId"`
	RoundID        string `json:"roundId"`
	Answer         string `json:"answer"`
	ResponseTimeMs int64  `json:"responseTimeMs"`
}

// ErrorPayload carries a user-facing message, in the product language.
type ErrorPayload struct {
	Message string `json:"message"`
}
