package usecase

import (
	"fmt"

	"github.com/openfantasy/rooms/internal/domain/roster"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/memory"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

func newMemoryRepos() (*memory.RoomRepository, *memory.TeamRepository, *memory.StandingRepository) {
	teams := memory.NewTeamRepository()
	standings := memory.NewStandingRepository()
	rooms := memory.NewRoomRepository(teams, standings)
	return rooms, teams, standings
}

func rosterTeamFixture(userID, gameweekID, roomID string, starters roster.StartingXI, bench roster.Bench) roster.Team {
	return roster.Team{
		ID:            "team-" + userID,
		UserID:        userID,
		GameweekID:    gameweekID,
		RoomID:        roomID,
		Formation:     "4-4-2",
		Starters:      starters,
		Bench:         bench,
		CaptainID:     starters.MidfielderIDs[0],
		ViceCaptainID: starters.ForwardIDs[0],
	}
}

// valid442Roster selects fifteen distinct seed players in a 4-4-2.
func valid442Roster() (roster.StartingXI, roster.Bench) {
	starters := roster.StartingXI{
		GoalkeeperID:  "idn-gk-01",
		DefenderIDs:   []string{"idn-def-01", "idn-def-02", "idn-def-03", "idn-def-04"},
		MidfielderIDs: []string{"idn-mid-01", "idn-mid-02", "idn-mid-03", "idn-mid-04"},
		ForwardIDs:    []string{"idn-fwd-01", "idn-fwd-02"},
	}
	bench := roster.Bench{
		GoalkeeperID: "idn-gk-02",
		DefenderID:   "idn-def-05",
		MidfielderID: "idn-mid-05",
		ForwardID:    "idn-fwd-03",
	}
	return starters, bench
}
