// room/manager.go
package room

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wfunc/quizserver/quiz"
	"github.com/wfunc/quizserver/timer"
)

// codeAlphabet has 32 symbols and excludes visually confusable characters
// (no 0/O, no 1/I). Codes compare case-insensitively.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room is not accepting players")
)

// Manager 管理所有房间: the process-wide registry of rooms and players,
// keyed by room id, by room code, and by connection id. Rooms are never
// removed implicitly; they live until process shutdown.
type Manager struct {
	rooms  map[string]*Room
	codes  map[string]string // room code -> room id
	byConn map[string]*Room  // connection id -> owning room

	bank          *quiz.Bank
	broadcaster   Broadcaster
	timers        *timer.Manager
	startingLives int
	rng           *rand.Rand
	mutex         sync.RWMutex
}

// NewManager wires the registry. The rand source drives room codes, player
// colors and per-room option shuffles; inject a seeded one in tests.
func NewManager(bank *quiz.Bank, broadcaster Broadcaster, timers *timer.Manager, startingLives int, rng *rand.Rand) *Manager {
	return &Manager{
		rooms:         make(map[string]*Room),
		codes:         make(map[string]string),
		byConn:        make(map[string]*Room),
		bank:          bank,
		broadcaster:   broadcaster,
		timers:        timers,
		startingLives: startingLives,
		rng:           rng,
	}
}

// CreateRoom allocates a fresh room with a code unique among active rooms
// and registers its creator as the host.
func (m *Manager) CreateRoom(connID, hostName string) (*Room, *Player) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	code := m.generateCode()
	generator := quiz.NewGenerator(m.bank, rand.New(rand.NewSource(m.rng.Int63())))
	room := NewRoom(uuid.New().String(), code, generator, m.broadcaster, m.timers)

	host := m.newPlayer(connID, hostName, true)
	room.AddPlayer(host)

	m.rooms[room.ID] = room
	m.codes[code] = room.ID
	m.byConn[connID] = room

	return room, host
}

// JoinRoom adds a player to the room with the given code. Fails with
// ErrRoomNotFound when no active room has the code and ErrRoomNotJoinable
// once the game has started.
func (m *Manager) JoinRoom(connID, code, name string) (*Room, *Player, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	roomID, ok := m.codes[strings.ToUpper(code)]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	room := m.rooms[roomID]

	player := m.newPlayer(connID, name, false)
	if err := room.AddPlayer(player); err != nil {
		return nil, nil, err
	}
	m.byConn[connID] = room

	return room, player, nil
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, exists := m.rooms[id]
	return room, exists
}

func (m *Manager) GetRoomByCode(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	roomID, ok := m.codes[strings.ToUpper(code)]
	if !ok {
		return nil, false
	}
	return m.rooms[roomID], true
}

// GetPlayer resolves a connection id to its player record. Absence is a
// normal outcome, not an error.
func (m *Manager) GetPlayer(connID string) (*Player, bool) {
	m.mutex.RLock()
	room, ok := m.byConn[connID]
	m.mutex.RUnlock()
	if !ok {
		return nil, false
	}
	return room.GetPlayerRecord(connID)
}

// MarkDisconnected flips the player's presence flag if the connection is
// known; unknown ids are ignored.
func (m *Manager) MarkDisconnected(connID string) {
	m.mutex.RLock()
	room, ok := m.byConn[connID]
	m.mutex.RUnlock()
	if !ok {
		return
	}
	room.MarkDisconnected(connID)
}

// ListRooms returns a point-in-time view of every active room.
func (m *Manager) ListRooms() []*View {
	m.mutex.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	m.mutex.RUnlock()

	views := make([]*View, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, room.Info())
	}
	return views
}

func (m *Manager) RoomCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// generateCode retries until it finds a code no active room is using.
// Caller holds the write lock.
func (m *Manager) generateCode() string {
	for {
		code := make([]byte, codeLength)
		for i := range code {
			code[i] = codeAlphabet[m.rng.Intn(len(codeAlphabet))]
		}
		if _, taken := m.codes[string(code)]; !taken {
			return string(code)
		}
	}
}

func (m *Manager) newPlayer(connID, name string, host bool) *Player {
	return &Player{
		ID:        connID,
		Name:      name,
		Lives:     m.startingLives,
		Color:     colorPalette[m.rng.Intn(len(colorPalette))],
		Host:      host,
		Connected: true,
	}
}
