// room/room.go
package room

import (
	"sync"
	"time"

	"github.com/wfunc/quizserver/network"
	"github.com/wfunc/quizserver/quiz"
	"github.com/wfunc/quizserver/state"
	"github.com/wfunc/quizserver/timer"
)

// colorPalette is the fixed set of cosmetic player colors, straight from
// the game client.
var colorPalette = []string{
	"#23c4ff", "#ff7a59", "#ffd166", "#06d6a0", "#9b5de5",
	"#f15bb5", "#4cc9f0", "#fca311", "#3a86ff", "#8338ec",
}

// Player is one participant's record. It lives as long as its room so a
// disconnected player still shows up in the final ranking. The id is the
// connection id; a reconnect means a new Player.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoomID    string `json:"roomId"`
	Score     int    `json:"score"`
	Streak    int    `json:"streak"`
	Lives     int    `json:"lives"`
	Color     string `json:"color"`
	Host      bool   `json:"isHost"`
	Connected bool   `json:"connected"`
}

func (p *Player) GetID() string     { return p.ID }
func (p *Player) GetName() string   { return p.Name }
func (p *Player) IsHost() bool      { return p.Host }
func (p *Player) IsConnected() bool { return p.Connected }
func (p *Player) GetLives() int     { return p.Lives }
func (p *Player) GetStreak() int    { return p.Streak }
func (p *Player) GetScore() int     { return p.Score }

// ApplyOutcome applies one scored answer. Points are additive; streak and
// lives are absolute values computed by the scoring engine.
func (p *Player) ApplyOutcome(outcome quiz.Outcome) {
	p.Score += outcome.Points
	p.Streak = outcome.Streak
	p.Lives = outcome.Lives
}

// Room 是游戏房间的核心结构. All mutable state is guarded by mu: every
// inbound action, timer firing and disconnect for this room runs as one
// atomic unit, so no two actions ever interleave their read-modify-write.
type Room struct {
	ID        string
	Code      string
	CreatedAt time.Time

	status       string
	currentRound int
	rounds       []quiz.Round
	players      []*Player // join order
	playersByID  map[string]*Player

	machine     state.StateMachine
	generator   *quiz.Generator
	broadcaster Broadcaster
	timers      *timer.Manager
	mu          sync.Mutex
}

// View is the serializable projection of a room sent to clients. The round
// list is deliberately absent: clients only ever see the current round, and
// never its correct connector.
type View struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Status       string    `json:"status"`
	CurrentRound int       `json:"currentRound"`
	Players      []*Player `json:"players"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewRoom 创建一个新房间, parked in the lobby.
func NewRoom(id, code string, generator *quiz.Generator, broadcaster Broadcaster, timers *timer.Manager) *Room {
	room := &Room{
		ID:          id,
		Code:        code,
		CreatedAt:   time.Now(),
		playersByID: make(map[string]*Player),
		generator:   generator,
		broadcaster: broadcaster,
		timers:      timers,
	}

	// 初始化状态机: entering the lobby state sets the initial status.
	room.machine = state.NewBaseStateMachine(state.NewLobbyState(room), state.LifecycleTransitions())

	return room
}

// --- serialized public API ---

// HandleAction runs one participant action against the room. The player is
// resolved from the connection id; an unknown id reaches the state as nil
// and falls out as a no-op.
func (r *Room) HandleAction(playerID string, action state.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var player state.Player
	if p, ok := r.playersByID[playerID]; ok {
		player = p
	}
	return r.machine.GetCurrentState().HandleAction(player, action)
}

// AddPlayer registers a player, only while the room is still in the lobby.
func (r *Room) AddPlayer(player *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != state.StatusLobby {
		return ErrRoomNotJoinable
	}

	player.RoomID = r.ID
	r.players = append(r.players, player)
	r.playersByID[player.ID] = player
	return nil
}

// MarkDisconnected flips the player's presence flag, tells the room, and
// lets the current state react (a disconnect can resolve the pending set).
// Idempotent; the player record and score are retained.
func (r *Room) MarkDisconnected(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.playersByID[playerID]
	if !ok || !player.Connected {
		return
	}
	player.Connected = false

	r.broadcaster.BroadcastToRoom(r.ID, network.EventPlayerDisconnected, map[string]interface{}{
		"player": player,
	})
	r.machine.GetCurrentState().HandleAction(player, state.DisconnectAction{})
}

// GetPlayerRecord looks up the live player record by connection id. The
// pointer is shared with the action path; read it only while no game is
// running or from inside an action.
func (r *Room) GetPlayerRecord(playerID string) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.playersByID[playerID]
	return player, ok
}

// PlayerView returns a copy of the player's record, safe to encode after the
// lock is released.
func (r *Room) PlayerView(playerID string) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.playersByID[playerID]
	if !ok {
		return nil, false
	}
	clone := *player
	return &clone, true
}

// Info returns a consistent snapshot for callers outside the action path
// (handlers, the admin RPC).
func (r *Room) Info() *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// --- state.RoomContext implementation ---
// Called by the game states with mu already held; nothing here locks.

func (r *Room) GetID() string                 { return r.ID }
func (r *Room) GetStatus() string             { return r.status }
func (r *Room) SetStatus(status string)       { r.status = status }
func (r *Room) GetCurrentRound() int          { return r.currentRound }
func (r *Room) SetCurrentRound(n int)         { r.currentRound = n }
func (r *Room) GetRounds() []quiz.Round       { return r.rounds }
func (r *Room) SetRounds(rounds []quiz.Round) { r.rounds = rounds }

func (r *Room) GenerateRounds() ([]quiz.Round, error) {
	return r.generator.Generate()
}

func (r *Room) ChangeState(newState state.State) error {
	return r.machine.ChangeState(newState)
}

func (r *Room) GetPlayers() []state.Player {
	players := make([]state.Player, len(r.players))
	for i, p := range r.players {
		players[i] = p
	}
	return players
}

func (r *Room) GetPlayer(id string) (state.Player, bool) {
	p, ok := r.playersByID[id]
	if !ok {
		return nil, false
	}
	return p, true
}

func (r *Room) Broadcast(event string, payload interface{}) {
	r.broadcaster.BroadcastToRoom(r.ID, event, payload)
}

func (r *Room) SendToPlayer(playerID, event string, payload interface{}) {
	r.broadcaster.SendToPlayer(playerID, event, payload)
}

func (r *Room) Snapshot() interface{} {
	return r.snapshot()
}

func (r *Room) ScheduleTimer(d time.Duration, fn func()) int64 {
	return r.timers.Schedule(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		fn()
	})
}

func (r *Room) CancelTimer(id int64) {
	r.timers.Cancel(id)
}

func (r *Room) snapshot() *View {
	// Copies, not the live records: views get JSON-encoded after the room
	// lock is released, concurrently with later score writes.
	players := make([]*Player, len(r.players))
	for i, p := range r.players {
		clone := *p
		players[i] = &clone
	}
	return &View{
		ID:           r.ID,
		Code:         r.Code,
		Status:       r.status,
		CurrentRound: r.currentRound,
		Players:      players,
		CreatedAt:    r.CreatedAt,
	}
}
