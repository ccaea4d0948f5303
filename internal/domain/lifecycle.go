package domain

// EvaluateGameStatus derives the game status from the full participation
// list. Transitions:
//
//	finished            -> finished (never reopened)
//	all quit            -> finished
//	all active bet > 0  -> playing
//	otherwise           -> ready
//
// A table with no participations stays ready: it has nobody who quit and
// must keep accepting joiners. A naive all() over the empty list would
// finish the game immediately, which is not what a freshly created table
// should do.
func EvaluateGameStatus(game *Game, participations []Participation) GameStatus {
	if game.Status == GameFinished {
		return GameFinished
	}

	if len(participations) == 0 {
		return GameReady
	}

	allQuit := true
	for _, p := range participations {
		if p.Status != ParticipationQuit {
			allQuit = false
			break
		}
	}
	if allQuit {
		return GameFinished
	}

	var active int
	allBet := true
	for _, p := range participations {
		if !p.IsActive() {
			continue
		}
		active++
		if p.Bet <= 0 {
			allBet = false
		}
	}
	if active > 0 && allBet {
		return GamePlaying
	}

	return GameReady
}
