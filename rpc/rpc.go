package rpc

import (
	"net"
	"net/rpc"
	"time"

	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/room"
)

// Server manages the RPC listener for the admin surface.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered separately
// via net/rpc's Register before Start is called.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC listener closed")
				return
			}
			logger.Log.Errorf("RPC accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the listener.
func (s *Server) Stop() {
	s.listener.Close()
}

// RoomSummary is the admin view of one room.
type RoomSummary struct {
	ID           string
	Code         string
	Status       string
	Players      int
	CurrentRound int
	CreatedAt    time.Time
}

// AdminService exposes read-only operator queries over the registry.
type AdminService struct {
	rooms *room.Manager
}

func NewAdminService(rooms *room.Manager) *AdminService {
	return &AdminService{rooms: rooms}
}

// ListRooms returns a summary of every active room.
func (s *AdminService) ListRooms(args struct{}, reply *[]RoomSummary) error {
	views := s.rooms.ListRooms()
	summaries := make([]RoomSummary, 0, len(views))
	for _, v := range views {
		summaries = append(summaries, summarize(v))
	}
	*reply = summaries
	return nil
}

// GetRoom looks a room up by its join code.
func (s *AdminService) GetRoom(code string, reply *RoomSummary) error {
	r, ok := s.rooms.GetRoomByCode(code)
	if !ok {
		return room.ErrRoomNotFound
	}
	*reply = summarize(r.Info())
	return nil
}

func summarize(v *room.View) RoomSummary {
	return RoomSummary{
		ID:           v.ID,
		Code:         v.Code,
		Status:       v.Status,
		Players:      len(v.Players),
		CurrentRound: v.CurrentRound,
		CreatedAt:    v.CreatedAt,
	}
}
