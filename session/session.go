// session/session.go
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/network"
)

// Outbound frames are queued per session; sendBufferSize bounds how far a
// slow reader can fall behind before frames are dropped.
const sendBufferSize = 64

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrSendBufferFull = errors.New("session send buffer full")
)

// Session is one live connection: the unit of identity for a participant.
// Its ID doubles as the player id while the connection lasts; a reconnect
// produces a brand new session and therefore a new player.
type Session struct {
	ID         string
	Conn       network.Connection
	CreatedAt  time.Time
	LastActive time.Time

	roomID    string
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	mutex     sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	s := &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
		send:       make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
	}
	go s.writePump()
	return s
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) SetRoomID(roomID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.roomID = roomID
}

func (s *Session) GetRoomID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.roomID
}

// Send encodes the event immediately (so the payload is captured while the
// caller still holds whatever lock made it consistent) and queues the frame.
// It never blocks: a full buffer or a closed session drops the frame with an
// error the caller is free to ignore.
func (s *Session) Send(event string, payload interface{}) error {
	data, err := network.EncodeEnvelope(event, payload)
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (s *Session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			if err := s.Conn.WriteMessage(data); err != nil {
				logger.Log.Debugf("session %s write failed: %v", s.ID, err)
				return
			}
			s.mutex.Lock()
			s.LastActive = time.Now()
			s.mutex.Unlock()
		}
	}
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.Conn.Close()
}

// Manager tracks every live session, by id and by the room it is attached
// to. It is the broadcast gateway's source of truth for audiences.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) GetByRoomID(roomID string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if session.GetRoomID() == roomID {
			result = append(result, session)
		}
	}
	return result
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every live session. Closing the underlying connections
// unblocks their read loops, so this is the shutdown path for connection
// goroutines parked in a read.
func (m *Manager) CloseAll() {
	m.mutex.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mutex.RUnlock()

	for _, session := range sessions {
		session.Close()
	}
}
