package models

import (
	"testing"
	"time"
)

func game(id, black, white, current int64) Game {
	return Game{
		ID:    id,
		Black: User{ID: black, Username: "b"},
		White: User{ID: white, Username: "w"},
		JSON:  GameJSON{Clock: GameClock{CurrentPlayer: current}},
	}
}

func TestAwaitingMove(t *testing.T) {
	me := User{ID: 7, Username: "me"}

	tests := []struct {
		name  string
		games []Game
		want  []int64
	}{
		{"no games", nil, []int64{}},
		{"my turn as black", []Game{game(1, 7, 9, 7)}, []int64{1}},
		{"my turn as white", []Game{game(2, 9, 7, 7)}, []int64{2}},
		{"opponent's turn", []Game{game(3, 7, 9, 9)}, []int64{}},
		{
			"mixed keeps order",
			[]Game{game(5, 7, 9, 7), game(4, 7, 8, 8), game(6, 8, 7, 7)},
			[]int64{5, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AwaitingMove(tt.games, me)
			if len(got) != len(tt.want) {
				t.Fatalf("AwaitingMove() returned %d games, want %d", len(got), len(tt.want))
			}
			for i, g := range got {
				if g.ID != tt.want[i] {
					t.Errorf("AwaitingMove()[%d].ID = %d, want %d", i, g.ID, tt.want[i])
				}
				if g.CurrentPlayerID() != me.ID {
					t.Errorf("game %d has current player %d, want %d", g.ID, g.CurrentPlayerID(), me.ID)
				}
			}
		})
	}
}

func TestOtherUser(t *testing.T) {
	g := Game{
		ID:    1,
		Black: User{ID: 1, Username: "alice"},
		White: User{ID: 2, Username: "bob"},
	}

	if got := g.OtherUser(User{ID: 1}); got.Username != "bob" {
		t.Errorf("OtherUser(black) = %q, want bob", got.Username)
	}
	if got := g.OtherUser(User{ID: 2}); got.Username != "alice" {
		t.Errorf("OtherUser(white) = %q, want alice", got.Username)
	}
}

func TestSettingsInterval(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"empty uses default", "", DefaultPollInterval, false},
		{"explicit", "90s", 90 * time.Second, false},
		{"minutes", "2m", 2 * time.Minute, false},
		{"below minimum", "1s", 0, true},
		{"garbage", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			s.PollInterval = tt.value
			got, err := s.Interval()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Interval() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	s := NewSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.AbortOnNotifyFailure() {
		t.Errorf("default policy aborts, want log-and-continue")
	}

	s.Notifications.OnFailure = OnFailureAbort
	if !s.AbortOnNotifyFailure() {
		t.Errorf("AbortOnNotifyFailure() = false with on_failure=abort")
	}

	s.Notifications.OnFailure = "explode"
	if err := s.Validate(); err == nil {
		t.Errorf("Validate() accepted on_failure=explode")
	}
}
