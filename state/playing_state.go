package state

import (
	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/network"
	"github.com/wfunc/quizserver/quiz"
)

// PlayingState 游戏进行状态: drives the round cursor, applies scoring, and
// owns the per-round deadline timer. A player is "pending" for the current
// round while connected, with lives left, and not yet answered; the round
// resolves as soon as nobody is pending.
type PlayingState struct {
	RoomStateBase
	answered map[string]bool // player id -> answered current round
	timerID  int64
}

func NewPlayingState(room RoomContext) *PlayingState {
	return &PlayingState{
		RoomStateBase: RoomStateBase{
			ID:   StatusPlaying,
			Room: room,
		},
		answered: make(map[string]bool),
	}
}

// OnEnter 进入游戏状态: cursor moves 0 -> 1 and the first round goes out.
func (s *PlayingState) OnEnter() {
	s.Room.SetStatus(StatusPlaying)
	s.Room.SetCurrentRound(1)

	round := s.currentRound()
	logger.Log.Infof("房间 %s started with %d rounds", s.Room.GetID(), len(s.Room.GetRounds()))

	s.Room.Broadcast(network.EventGameStarted, map[string]interface{}{
		"room":         s.Room.Snapshot(),
		"currentRound": round,
	})
	s.armTimer(round.ID)
}

func (s *PlayingState) OnExit() {
	s.disarmTimer()
}

func (s *PlayingState) HandleAction(player Player, action Action) error {
	switch a := action.(type) {
	case SubmitAnswerAction:
		s.handleAnswer(player, a)
	case NextRoundAction:
		if player != nil && player.IsHost() {
			s.advance()
		}
	case EndGameAction:
		if player != nil && player.IsHost() {
			return s.Room.ChangeState(NewEndedState(s.Room))
		}
	case DisconnectAction:
		s.resolveRound()
	case RoundTimeoutAction:
		s.handleTimeout(a.RoundID)
	}
	return nil
}

func (s *PlayingState) currentRound() quiz.Round {
	return s.Room.GetRounds()[s.Room.GetCurrentRound()-1]
}

func (s *PlayingState) handleAnswer(player Player, a SubmitAnswerAction) {
	if player == nil {
		return
	}

	round := s.currentRound()
	if a.RoundID != round.ID {
		// Stale round id: the answer raced a round advance. Ignore.
		return
	}
	if s.answered[player.GetID()] || player.GetLives() <= 0 {
		return
	}
	s.answered[player.GetID()] = true

	// An empty (timed out) answer never matches a connector.
	correct := a.Answer == round.CorrectConnector
	s.applyOutcome(player, quiz.Score(correct, a.ResponseTime.Milliseconds(), player.GetStreak(), player.GetLives()))
	s.resolveRound()
}

// handleTimeout marks everyone still pending as timed out, then resolves.
func (s *PlayingState) handleTimeout(roundID string) {
	if s.Room.GetStatus() != StatusPlaying {
		return
	}
	if roundID != s.currentRound().ID {
		// 定时器触发太晚: a newer round is already running.
		return
	}

	logger.Log.Debugf("房间 %s round %d timed out", s.Room.GetID(), s.Room.GetCurrentRound())

	for _, p := range s.Room.GetPlayers() {
		if !p.IsConnected() || p.GetLives() <= 0 || s.answered[p.GetID()] {
			continue
		}
		s.answered[p.GetID()] = true
		s.applyOutcome(p, quiz.Score(false, quiz.RoundTimeMillis, p.GetStreak(), p.GetLives()))
	}
	s.resolveRound()
}

// applyOutcome mutates the player and fans out the results: the answer
// verdict privately, the updated record to the whole room (the live
// leaderboard), and a private game over the moment lives run out.
func (s *PlayingState) applyOutcome(player Player, outcome quiz.Outcome) {
	livesBefore := player.GetLives()
	player.ApplyOutcome(outcome)

	s.Room.SendToPlayer(player.GetID(), network.EventAnswerResult, map[string]interface{}{
		"correct": outcome.Correct,
		"points":  outcome.Points,
		"streak":  outcome.Streak,
		"lives":   outcome.Lives,
	})
	s.Room.Broadcast(network.EventPlayerUpdated, map[string]interface{}{
		"player": player,
	})

	if outcome.Lives == 0 && livesBefore > 0 {
		s.Room.SendToPlayer(player.GetID(), network.EventGameOver, map[string]interface{}{
			"finalScore": player.GetScore(),
		})
	}
}

// resolveRound ends the whole game if nobody has lives left, otherwise
// advances once no player is pending.
func (s *PlayingState) resolveRound() {
	if !s.livesRemain() {
		s.Room.ChangeState(NewEndedState(s.Room))
		return
	}
	if s.pendingCount() == 0 {
		s.advance()
	}
}

func (s *PlayingState) pendingCount() int {
	count := 0
	for _, p := range s.Room.GetPlayers() {
		if p.IsConnected() && p.GetLives() > 0 && !s.answered[p.GetID()] {
			count++
		}
	}
	return count
}

func (s *PlayingState) livesRemain() bool {
	for _, p := range s.Room.GetPlayers() {
		if p.GetLives() > 0 {
			return true
		}
	}
	return false
}

// advance moves the cursor forward, or ends the game past the last round.
func (s *PlayingState) advance() {
	s.disarmTimer()

	next := s.Room.GetCurrentRound() + 1
	if next > len(s.Room.GetRounds()) {
		s.Room.ChangeState(NewEndedState(s.Room))
		return
	}

	s.Room.SetCurrentRound(next)
	s.answered = make(map[string]bool)

	round := s.currentRound()
	s.Room.Broadcast(network.EventNextRound, map[string]interface{}{
		"currentRound": round,
		"roundNumber":  next,
	})
	s.armTimer(round.ID)
}

func (s *PlayingState) armTimer(roundID string) {
	s.timerID = s.Room.ScheduleTimer(quiz.RoundTime, func() {
		// Runs serialized with the room's other actions; the round id and
		// status checks make a late firing harmless.
		s.HandleAction(nil, RoundTimeoutAction{RoundID: roundID})
	})
}

func (s *PlayingState) disarmTimer() {
	if s.timerID != 0 {
		s.Room.CancelTimer(s.timerID)
		s.timerID = 0
	}
}
