package state

import (
	"sort"

	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/network"
)

// EndedState is terminal. Scores freeze, the final ranking goes out, and
// every further trigger is ignored.
type EndedState struct {
	RoomStateBase
}

func NewEndedState(room RoomContext) *EndedState {
	return &EndedState{
		RoomStateBase: RoomStateBase{
			ID:   StatusEnded,
			Room: room,
		},
	}
}

func (s *EndedState) OnEnter() {
	s.Room.SetStatus(StatusEnded)

	// Score descending; ties keep join order. Disconnected players stay in
	// the ranking with the score they earned.
	players := s.Room.GetPlayers()
	ranking := make([]Player, len(players))
	copy(ranking, players)
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].GetScore() > ranking[j].GetScore()
	})

	logger.Log.Infof("房间 %s 游戏结束, %d players ranked", s.Room.GetID(), len(ranking))

	s.Room.Broadcast(network.EventGameEnded, map[string]interface{}{
		"room":    s.Room.Snapshot(),
		"ranking": ranking,
	})
}
