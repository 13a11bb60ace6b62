// Package models contains shared data structures used across the application.
package models

// User identifies an OGS account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GameClock is the part of a game's clock state ogs-notify cares about.
type GameClock struct {
	CurrentPlayer int64 `json:"current_player"`
}

// GameJSON mirrors the nested "json" object of an overview entry.
type GameJSON struct {
	Clock GameClock `json:"clock"`
}

// Game is one in-progress match as returned by the overview endpoint.
type Game struct {
	ID    int64    `json:"id"`
	Black User     `json:"black"`
	White User     `json:"white"`
	JSON  GameJSON `json:"json"`
}

// CurrentPlayerID returns the ID of the player whose turn it is.
func (g Game) CurrentPlayerID() int64 {
	return g.JSON.Clock.CurrentPlayer
}

// OtherUser returns the opponent of me in this game.
func (g Game) OtherUser(me User) User {
	if me.ID == g.Black.ID {
		return g.White
	}
	return g.Black
}

// AwaitingMove returns the games where it is user's turn, in their original order.
func AwaitingMove(games []Game, user User) []Game {
	awaiting := make([]Game, 0, len(games))
	for _, g := range games {
		if g.CurrentPlayerID() == user.ID {
			awaiting = append(awaiting, g)
		}
	}
	return awaiting
}
