package roster

import (
	"errors"
	"testing"

	"github.com/openfantasy/rooms/internal/domain/player"
)

func catalogLookup() PlayerLookup {
	players := map[string]player.Player{
		"gk1": {ID: "gk1", Position: player.PositionGoalkeeper},
		"gk2": {ID: "gk2", Position: player.PositionGoalkeeper},
		"d1":  {ID: "d1", Position: player.PositionDefender},
		"d2":  {ID: "d2", Position: player.PositionDefender},
		"d3":  {ID: "d3", Position: player.PositionDefender},
		"d4":  {ID: "d4", Position: player.PositionDefender},
		"d5":  {ID: "d5", Position: player.PositionDefender},
		"m1":  {ID: "m1", Position: player.PositionMidfielder},
		"m2":  {ID: "m2", Position: player.PositionMidfielder},
		"m3":  {ID: "m3", Position: player.PositionMidfielder},
		"m4":  {ID: "m4", Position: player.PositionMidfielder},
		"m5":  {ID: "m5", Position: player.PositionMidfielder},
		"f1":  {ID: "f1", Position: player.PositionForward},
		"f2":  {ID: "f2", Position: player.PositionForward},
		"f3":  {ID: "f3", Position: player.PositionForward},
	}
	return func(playerID string) (player.Player, bool) {
		p, ok := players[playerID]
		return p, ok
	}
}

type selection struct {
	formation Formation
	starters  StartingXI
	bench     Bench
	captain   string
	vice      string
}

func validSelection() selection {
	return selection{
		formation: "4-4-2",
		starters: StartingXI{
			GoalkeeperID:  "gk1",
			DefenderIDs:   []string{"d1", "d2", "d3", "d4"},
			MidfielderIDs: []string{"m1", "m2", "m3", "m4"},
			ForwardIDs:    []string{"f1", "f2"},
		},
		bench: Bench{
			GoalkeeperID: "gk2",
			DefenderID:   "d5",
			MidfielderID: "m5",
			ForwardID:    "f3",
		},
		captain: "f1",
		vice:    "m1",
	}
}

func TestValidateSelection(t *testing.T) {
	lookup := catalogLookup()

	tests := []struct {
		name      string
		mutate    func(*selection)
		targetErr error
	}{
		{
			name:      "valid selection",
			mutate:    func(_ *selection) {},
			targetErr: nil,
		},
		{
			name: "unknown formation",
			mutate: func(s *selection) {
				s.formation = "2-2-6"
			},
			targetErr: ErrInvalidFormation,
		},
		{
			name: "formation mismatch",
			mutate: func(s *selection) {
				s.formation = "4-3-3"
			},
			targetErr: ErrFormationMismatch,
		},
		{
			name: "midfielder in defender slot",
			mutate: func(s *selection) {
				s.starters.DefenderIDs = []string{"d1", "d2", "d3", "m5"}
			},
			targetErr: ErrWrongPosition,
		},
		{
			name: "wrong position on bench",
			mutate: func(s *selection) {
				s.bench.GoalkeeperID = "d5"
				s.bench.DefenderID = "gk2"
			},
			targetErr: ErrWrongPosition,
		},
		{
			name: "unknown player",
			mutate: func(s *selection) {
				s.starters.ForwardIDs = []string{"f1", "missing"}
			},
			targetErr: ErrUnknownPlayer,
		},
		{
			name: "duplicate between bench and starters",
			mutate: func(s *selection) {
				s.bench.ForwardID = "f1"
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "captain on bench",
			mutate: func(s *selection) {
				s.captain = "gk2"
			},
			targetErr: ErrCaptainNotInStartingXI,
		},
		{
			name: "vice-captain not selected",
			mutate: func(s *selection) {
				s.vice = "f3"
			},
			targetErr: ErrViceCaptainNotInStartingXI,
		},
		{
			name: "captain equals vice-captain",
			mutate: func(s *selection) {
				s.vice = s.captain
			},
			targetErr: ErrCaptainEqualsViceCaptain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelection()
			tt.mutate(&sel)

			err := ValidateSelection(sel.formation, sel.starters, sel.bench, sel.captain, sel.vice, lookup)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidateSelection_AllFormations(t *testing.T) {
	players := map[string]player.Player{}
	pool := func(prefix string, position player.Position, count int) []string {
		ids := make([]string, count)
		for i := range ids {
			ids[i] = prefix + string(rune('1'+i))
			players[ids[i]] = player.Player{ID: ids[i], Position: position}
		}
		return ids
	}
	goalkeepers := pool("gk", player.PositionGoalkeeper, 2)
	defenders := pool("d", player.PositionDefender, 6)
	midfielders := pool("m", player.PositionMidfielder, 6)
	forwards := pool("f", player.PositionForward, 4)
	lookup := func(playerID string) (player.Player, bool) {
		p, ok := players[playerID]
		return p, ok
	}

	for formation, shape := range Formations {
		t.Run(string(formation), func(t *testing.T) {
			starters := StartingXI{
				GoalkeeperID:  goalkeepers[0],
				DefenderIDs:   defenders[:shape.Defenders],
				MidfielderIDs: midfielders[:shape.Midfielders],
				ForwardIDs:    forwards[:shape.Forwards],
			}
			bench := Bench{
				GoalkeeperID: goalkeepers[1],
				DefenderID:   defenders[shape.Defenders],
				MidfielderID: midfielders[shape.Midfielders],
				ForwardID:    forwards[shape.Forwards],
			}

			captain := starters.ForwardIDs[0]
			vice := starters.MidfielderIDs[0]
			if err := ValidateSelection(formation, starters, bench, captain, vice, lookup); err != nil {
				t.Fatalf("expected %s to validate, got %v", formation, err)
			}
		})
	}
}

func TestValidateSubstitution(t *testing.T) {
	team := Team{
		Formation: "4-4-2",
		Starters: StartingXI{
			GoalkeeperID:  "gk1",
			DefenderIDs:   []string{"d1", "d2", "d3", "d4"},
			MidfielderIDs: []string{"m1", "m2", "m3", "m4"},
			ForwardIDs:    []string{"f1", "f2"},
		},
		Bench: Bench{
			GoalkeeperID: "gk2",
			DefenderID:   "d5",
			MidfielderID: "m5",
			ForwardID:    "f3",
		},
	}

	out := player.Player{ID: "f1", Position: player.PositionForward}
	in := player.Player{ID: "f9", Position: player.PositionForward}

	t.Run("valid swap", func(t *testing.T) {
		if err := ValidateSubstitution(team, out, in); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("tokens exhausted", func(t *testing.T) {
		spent := team
		spent.SubstitutionTokensUsed = SubstitutionTokenCap
		err := ValidateSubstitution(spent, out, in)
		if !errors.Is(err, ErrNoTokensRemaining) {
			t.Fatalf("expected ErrNoTokensRemaining, got %v", err)
		}
	})

	t.Run("outgoing player not in roster", func(t *testing.T) {
		err := ValidateSubstitution(team, player.Player{ID: "f9", Position: player.PositionForward}, in)
		if !errors.Is(err, ErrUnknownPlayer) {
			t.Fatalf("expected ErrUnknownPlayer, got %v", err)
		}
	})

	t.Run("incoming player already in roster", func(t *testing.T) {
		err := ValidateSubstitution(team, out, player.Player{ID: "f2", Position: player.PositionForward})
		if !errors.Is(err, ErrDuplicatePlayer) {
			t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
		}
	})

	t.Run("position mismatch", func(t *testing.T) {
		err := ValidateSubstitution(team, out, player.Player{ID: "m9", Position: player.PositionMidfielder})
		if !errors.Is(err, ErrWrongPosition) {
			t.Fatalf("expected ErrWrongPosition, got %v", err)
		}
	})
}
