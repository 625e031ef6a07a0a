package server

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/wfunc/quizserver/broadcast"
	"github.com/wfunc/quizserver/config"
	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/monitor"
	"github.com/wfunc/quizserver/network"
	"github.com/wfunc/quizserver/quiz"
	"github.com/wfunc/quizserver/room"
	quizserver_rpc "github.com/wfunc/quizserver/rpc"
	"github.com/wfunc/quizserver/session"
	"github.com/wfunc/quizserver/state"
	"github.com/wfunc/quizserver/timer"
)

const qrSize = 320 // mobile-friendly size

// Version is stamped at build time via -ldflags.
var Version = "devel"

// GameServer is the connection adapter: it owns the websocket endpoint,
// decodes inbound events into typed actions at the boundary, and ties each
// connection's lifecycle to player presence.
type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	timerManager   *timer.Manager
	mon            *monitor.Monitor
	rpcServer      *quizserver_rpc.Server
	httpServer     *http.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, mon *monitor.Monitor) (*GameServer, error) {
	sessionManager := session.NewManager()
	broadcaster := broadcast.NewRoomBroadcaster(sessionManager)
	timerManager := timer.NewManager()
	roomManager := room.NewManager(
		quiz.DefaultBank(),
		broadcaster,
		timerManager,
		cfg.Game.StartingLives,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	s := &GameServer{
		cfg:            cfg,
		roomManager:    roomManager,
		sessionManager: sessionManager,
		timerManager:   timerManager,
		mon:            mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	rpcServer, err := quizserver_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		return nil, err
	}
	s.rpcServer = rpcServer
	rpc.Register(quizserver_rpc.NewAdminService(roomManager))

	router := httprouter.New()
	router.GET("/ws", s.handleWebSocket)
	router.GET("/healthz", s.handleHealth)
	router.GET("/version", s.handleVersion)
	router.GET("/rooms/:code/qr", s.handleJoinQR)
	s.httpServer = &http.Server{
		Addr:    cfg.Server.HTTPAddress,
		Handler: router,
	}

	return s, nil
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listeners and closes every live session. A websocket
// connection is hijacked from the HTTP server, so closing the sessions is
// what actually unblocks the connection read loops.
func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.httpServer.Close()
	s.sessionManager.CloseAll()
	s.rpcServer.Stop()
	s.timerManager.Stop()
}

func (s *GameServer) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *GameServer) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Write([]byte(Version + "\n"))
}

// handleJoinQR serves a PNG QR code with the join link for a room, for the
// host's big screen.
func (s *GameServer) handleJoinQR(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	code := strings.ToUpper(ps.ByName("code"))
	if _, ok := s.roomManager.GetRoomByCode(code); !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	joinURL := strings.TrimRight(s.cfg.Server.PublicURL, "/") + "/?code=" + code
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "failed to encode QR", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.mon.IncPlayersOnline()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecPlayersOnline()
		// The player record survives the connection; only presence flips.
		s.roomManager.MarkDisconnected(sess.GetID())
		sess.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := wsConn.ReadEnvelope()
			if err != nil {
				return
			}
			s.mon.IncEventsReceived()
			s.handleEvent(sess, env)
		}
	}
}

// handleEvent validates an inbound envelope into exactly one typed action
// and dispatches it. Unknown events and undecodable payloads stop here.
func (s *GameServer) handleEvent(sess *session.Session, env *network.Envelope) {
	switch env.Event {
	case network.EventCreateRoom:
		var req network.CreateRoomRequest
		if !s.decode(sess, env.Data, &req) {
			return
		}
		s.handleCreateRoom(sess, req)

	case network.EventJoinRoom:
		var req network.JoinRoomRequest
		if !s.decode(sess, env.Data, &req) {
			return
		}
		s.handleJoinRoom(sess, req)

	case network.EventStartGame:
		var req network.RoomRequest
		if !s.decode(sess, env.Data, &req) {
			return
		}
		s.dispatch(sess, req.RoomID, state.StartGameAction{})

	case network.EventSubmitAnswer:
		var req network.SubmitAnswerRequest
		if !s.decode(sess, env.Data, &req) {
			return
		}
		s.mon.ObserveAnswerTime(time.Duration(req.ResponseTimeMs) * time.Millisecond)
		s.dispatch(sess, req.RoomID, state.SubmitAnswerAction{
			RoundID:      req.RoundID,
			Answer:       req.Answer,
			ResponseTime: time.Duration(req.ResponseTimeMs) * time.Millisecond,
		})

	case network.EventNextRound:
		var req network.RoomRequest
		if !s.decode(sess, env.Data, &req) {
			return
		}
		s.dispatch(sess, req.RoomID, state.NextRoundAction{})

	case network.EventEndGame:
		var req network.RoomRequest
		if !s.decode(sess, env.Data, &req) {
			return
		}
		s.dispatch(sess, req.RoomID, state.EndGameAction{})

	default:
		logger.Log.Infof("Unknown event %q from session %s", env.Event, sess.GetID())
	}
}

func (s *GameServer) handleCreateRoom(sess *session.Session, req network.CreateRoomRequest) {
	r, _ := s.roomManager.CreateRoom(sess.GetID(), req.HostName)
	sess.SetRoomID(r.ID)
	s.mon.SetRoomsActive(s.roomManager.RoomCount())

	logger.Log.Infof("Session %s created room %s (code %s)", sess.GetID(), r.ID, r.Code)

	// Encode a copied view, never the live record: the room can mutate it
	// the moment another action runs.
	player, _ := r.PlayerView(sess.GetID())
	sess.Send(network.EventRoomCreated, map[string]interface{}{
		"room":   r.Info(),
		"player": player,
	})
}

func (s *GameServer) handleJoinRoom(sess *session.Session, req network.JoinRoomRequest) {
	r, _, err := s.roomManager.JoinRoom(sess.GetID(), req.RoomCode, req.PlayerName)
	if err != nil {
		message := "Sala não encontrada"
		if errors.Is(err, room.ErrRoomNotJoinable) {
			message = "A sala já está em jogo"
		}
		sess.Send(network.EventError, network.ErrorPayload{Message: message})
		return
	}
	sess.SetRoomID(r.ID)

	player, _ := r.PlayerView(sess.GetID())
	logger.Log.Infof("Session %s joined room %s as %q", sess.GetID(), r.ID, player.Name)

	sess.Send(network.EventRoomJoined, map[string]interface{}{
		"room":   r.Info(),
		"player": player,
	})
	r.Broadcast(network.EventPlayerJoined, map[string]interface{}{
		"player": player,
	})
}

// dispatch routes an action into its room's serialized action stream. The
// room id must match the session's own room: cross-room actions and unknown
// rooms are dropped, not surfaced.
func (s *GameServer) dispatch(sess *session.Session, roomID string, action state.Action) {
	if roomID == "" || sess.GetRoomID() != roomID {
		return
	}
	r, ok := s.roomManager.GetRoom(roomID)
	if !ok {
		return
	}
	if err := r.HandleAction(sess.GetID(), action); err != nil {
		logger.Log.Debugf("action %T in room %s: %v", action, roomID, err)
	}
}

func (s *GameServer) decode(sess *session.Session, data json.RawMessage, v interface{}) bool {
	if len(data) == 0 {
		sess.Send(network.EventError, network.ErrorPayload{Message: "Pedido inválido"})
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Log.Debugf("bad payload from session %s: %v", sess.GetID(), err)
		sess.Send(network.EventError, network.ErrorPayload{Message: "Pedido inválido"})
		return false
	}
	return true
}
