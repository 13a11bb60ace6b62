package poller

import "github.com/ogs-notify/ogs-notify/internal/models"

// State is what the loop knows after a cycle. It is replaced, never mutated.
type State struct {
	User     models.User
	Awaiting []models.Game
}

// NewState keeps the games from active where it is user's turn.
func NewState(user models.User, active []models.Game) State {
	return State{User: user, Awaiting: models.AwaitingMove(active, user)}
}

// Next builds the state for the following cycle from a fresh fetch.
func (s State) Next(active []models.Game) State {
	return NewState(s.User, active)
}

// NewlyAwaiting returns the games in next whose ID is not awaiting in s.
func (s State) NewlyAwaiting(next State) []models.Game {
	seen := make(map[int64]struct{}, len(s.Awaiting))
	for _, g := range s.Awaiting {
		seen[g.ID] = struct{}{}
	}

	var fresh []models.Game
	for _, g := range next.Awaiting {
		if _, ok := seen[g.ID]; !ok {
			fresh = append(fresh, g)
		}
	}
	return fresh
}
