package state

import (
	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/network"
)

// LobbyState is where a room waits for players. Joining is handled by the
// registry (it only needs the status, not the machine); the lobby's one job
// is the host's start trigger.
type LobbyState struct {
	RoomStateBase
}

func NewLobbyState(room RoomContext) *LobbyState {
	return &LobbyState{
		RoomStateBase: RoomStateBase{
			ID:   StatusLobby,
			Room: room,
		},
	}
}

func (s *LobbyState) OnEnter() {
	s.Room.SetStatus(StatusLobby)
}

func (s *LobbyState) HandleAction(player Player, action Action) error {
	switch action.(type) {
	case StartGameAction:
		return s.handleStart(player)
	default:
		// Answers, round advances and everything else are out of place in
		// the lobby and deliberately ignored.
		return nil
	}
}

func (s *LobbyState) handleStart(player Player) error {
	if player == nil || !player.IsHost() {
		return nil
	}

	rounds, err := s.Room.GenerateRounds()
	if err != nil {
		// The room stays in the lobby; only the host hears about it.
		logger.Log.Errorf("房间 %s round generation failed: %v", s.Room.GetID(), err)
		s.Room.SendToPlayer(player.GetID(), network.EventError, network.ErrorPayload{
			Message: "Não foi possível iniciar o jogo",
		})
		return err
	}

	s.Room.SetRounds(rounds)
	return s.Room.ChangeState(NewPlayingState(s.Room))
}
