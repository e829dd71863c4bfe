package roster

import (
	"errors"
	"fmt"

	"github.com/openfantasy/rooms/internal/domain/player"
)

var (
	ErrInvalidFormation           = errors.New("invalid formation")
	ErrFormationMismatch          = errors.New("starting lineup does not match formation")
	ErrWrongPosition              = errors.New("player position does not match slot")
	ErrDuplicatePlayer            = errors.New("duplicate player in roster")
	ErrUnknownPlayer              = errors.New("unknown player")
	ErrCaptainNotInStartingXI     = errors.New("captain must be in the starting XI")
	ErrViceCaptainNotInStartingXI = errors.New("vice-captain must be in the starting XI")
	ErrCaptainEqualsViceCaptain   = errors.New("captain and vice-captain must be different players")
	ErrDeadlinePassed             = errors.New("gameweek deadline has passed")
	ErrNoTokensRemaining          = errors.New("no substitution tokens remaining")
	ErrTeamNotFound               = errors.New("team not found")
)

// Formation is a named starting-XI shape, e.g. "4-4-2".
type Formation string

// Shape is the exact defender/midfielder/forward count triple a
// formation requires; the goalkeeper slot is always exactly one.
type Shape struct {
	Defenders   int
	Midfielders int
	Forwards    int
}

// Formations enumerates every accepted formation. Anything else is a
// hard failure; there are no partial formations.
var Formations = map[Formation]Shape{
	"4-3-3": {Defenders: 4, Midfielders: 3, Forwards: 3},
	"4-4-2": {Defenders: 4, Midfielders: 4, Forwards: 2},
	"3-5-2": {Defenders: 3, Midfielders: 5, Forwards: 2},
	"4-5-1": {Defenders: 4, Midfielders: 5, Forwards: 1},
	"3-4-3": {Defenders: 3, Midfielders: 4, Forwards: 3},
	"5-3-2": {Defenders: 5, Midfielders: 3, Forwards: 2},
	"5-4-1": {Defenders: 5, Midfielders: 4, Forwards: 1},
}

// SubstitutionTokenCap is the number of post-submission roster edits a
// team may make per gameweek.
const SubstitutionTokenCap = 2

// PlayerLookup resolves catalog players by id during validation.
type PlayerLookup func(playerID string) (player.Player, bool)

// ValidateSelection enforces the structural roster rules, in order:
// formation shape, positional correctness of every slot (bench
// included), uniqueness across the full fifteen, then captaincy. The
// deadline gate is a separate, last check owned by the caller because
// it reads the live clock.
func ValidateSelection(formation Formation, starters StartingXI, bench Bench, captainID, viceCaptainID string, lookup PlayerLookup) error {
	shape, ok := Formations[formation]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidFormation, formation)
	}

	if len(starters.DefenderIDs) != shape.Defenders ||
		len(starters.MidfielderIDs) != shape.Midfielders ||
		len(starters.ForwardIDs) != shape.Forwards {
		return fmt.Errorf("%w: formation %s requires DEF=%d MID=%d FWD=%d, got DEF=%d MID=%d FWD=%d",
			ErrFormationMismatch, formation,
			shape.Defenders, shape.Midfielders, shape.Forwards,
			len(starters.DefenderIDs), len(starters.MidfielderIDs), len(starters.ForwardIDs))
	}

	if err := validateSlotPositions(lookup, []string{starters.GoalkeeperID}, player.PositionGoalkeeper); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, starters.DefenderIDs, player.PositionDefender); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, starters.MidfielderIDs, player.PositionMidfielder); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, starters.ForwardIDs, player.PositionForward); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, []string{bench.GoalkeeperID}, player.PositionGoalkeeper); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, []string{bench.DefenderID}, player.PositionDefender); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, []string{bench.MidfielderID}, player.PositionMidfielder); err != nil {
		return err
	}
	if err := validateSlotPositions(lookup, []string{bench.ForwardID}, player.PositionForward); err != nil {
		return err
	}

	allIDs := append(starters.PlayerIDs(), bench.PlayerIDs()...)
	seen := make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		if _, exists := seen[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}

	return ValidateCaptaincy(starters, captainID, viceCaptainID)
}

// ValidateCaptaincy checks that captain and vice-captain are distinct
// members of the starting XI. Bench players may never captain.
func ValidateCaptaincy(starters StartingXI, captainID, viceCaptainID string) error {
	starterSet := make(map[string]struct{}, 11)
	for _, id := range starters.PlayerIDs() {
		starterSet[id] = struct{}{}
	}

	if _, ok := starterSet[captainID]; !ok {
		return fmt.Errorf("%w: %s", ErrCaptainNotInStartingXI, captainID)
	}
	if _, ok := starterSet[viceCaptainID]; !ok {
		return fmt.Errorf("%w: %s", ErrViceCaptainNotInStartingXI, viceCaptainID)
	}
	if captainID == viceCaptainID {
		return ErrCaptainEqualsViceCaptain
	}

	return nil
}

// ValidateSubstitution checks token budget and swap eligibility: the
// outgoing player must be in the current fifteen, the incoming player
// must not be, and both must share a catalog position.
func ValidateSubstitution(team Team, playerOut, playerIn player.Player) error {
	if team.SubstitutionTokensUsed >= SubstitutionTokenCap {
		return fmt.Errorf("%w: used %d of %d", ErrNoTokensRemaining, team.SubstitutionTokensUsed, SubstitutionTokenCap)
	}
	if !team.HasPlayer(playerOut.ID) {
		return fmt.Errorf("%w: player %s is not in the roster", ErrUnknownPlayer, playerOut.ID)
	}
	if team.HasPlayer(playerIn.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, playerIn.ID)
	}
	if playerOut.Position != playerIn.Position {
		return fmt.Errorf("%w: player %s must have position %s", ErrWrongPosition, playerIn.ID, playerOut.Position)
	}

	return nil
}

func validateSlotPositions(lookup PlayerLookup, ids []string, expected player.Position) error {
	for _, id := range ids {
		p, ok := lookup(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		if p.Position != expected {
			return fmt.Errorf("%w: player %s is not a %s", ErrWrongPosition, id, expected)
		}
	}

	return nil
}
