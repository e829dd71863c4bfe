package memory

import (
	"time"

	"github.com/openfantasy/rooms/internal/domain/club"
	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/domain/league"
	"github.com/openfantasy/rooms/internal/domain/player"
)

const (
	LeagueIDLiga1Indonesia = "idn-liga-1-2025"
	LeagueIDPremierLeague  = "eng-premier-league-2025"

	GameweekIDLiga1Week1 = "gw-idn-2025-01"
	GameweekIDLiga1Week2 = "gw-idn-2025-02"
	GameweekIDLiga1Week3 = "gw-idn-2025-03"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDLiga1Indonesia,
			Name:        "Liga 1 Indonesia",
			CountryCode: "ID",
			Season:      "2025/2026",
			IsDefault:   true,
		},
		{
			ID:          LeagueIDPremierLeague,
			Name:        "Premier League",
			CountryCode: "GB",
			Season:      "2025/2026",
			IsDefault:   false,
		},
	}
}

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: "idn-persija", LeagueID: LeagueIDLiga1Indonesia, Name: "Persija Jakarta", ShortName: "PSJ"},
		{ID: "idn-persib", LeagueID: LeagueIDLiga1Indonesia, Name: "Persib Bandung", ShortName: "PSB"},
		{ID: "idn-persebaya", LeagueID: LeagueIDLiga1Indonesia, Name: "Persebaya Surabaya", ShortName: "PRB"},
		{ID: "idn-baliutd", LeagueID: LeagueIDLiga1Indonesia, Name: "Bali United", ShortName: "BU"},
		{ID: "eng-ars", LeagueID: LeagueIDPremierLeague, Name: "Arsenal", ShortName: "ARS"},
		{ID: "eng-liv", LeagueID: LeagueIDPremierLeague, Name: "Liverpool", ShortName: "LIV"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "idn-gk-01", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persija", Name: "Andritany Ardhiyasa", Position: player.PositionGoalkeeper},
		{ID: "idn-gk-02", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persib", Name: "Teja Paku Alam", Position: player.PositionGoalkeeper},
		{ID: "idn-def-01", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persija", Name: "Hansamu Yama", Position: player.PositionDefender},
		{ID: "idn-def-02", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persib", Name: "Nick Kuipers", Position: player.PositionDefender},
		{ID: "idn-def-03", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persebaya", Name: "Dusan Stevanovic", Position: player.PositionDefender},
		{ID: "idn-def-04", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-baliutd", Name: "Ricky Fajrin", Position: player.PositionDefender},
		{ID: "idn-def-05", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persebaya", Name: "Arief Catur", Position: player.PositionDefender},
		{ID: "idn-def-06", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persija", Name: "Rizky Ridho", Position: player.PositionDefender},
		{ID: "idn-mid-01", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persija", Name: "Maciej Gajos", Position: player.PositionMidfielder},
		{ID: "idn-mid-02", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persib", Name: "Marc Klok", Position: player.PositionMidfielder},
		{ID: "idn-mid-03", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persebaya", Name: "Bruno Moreira", Position: player.PositionMidfielder},
		{ID: "idn-mid-04", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-baliutd", Name: "Eber Bessa", Position: player.PositionMidfielder},
		{ID: "idn-mid-05", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-baliutd", Name: "Mitsuru Maruoka", Position: player.PositionMidfielder},
		{ID: "idn-mid-06", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persib", Name: "Dedi Kusnandar", Position: player.PositionMidfielder},
		{ID: "idn-fwd-01", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persija", Name: "Gustavo Almeida", Position: player.PositionForward},
		{ID: "idn-fwd-02", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persib", Name: "David da Silva", Position: player.PositionForward},
		{ID: "idn-fwd-03", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-persebaya", Name: "Paulo Henrique", Position: player.PositionForward},
		{ID: "idn-fwd-04", LeagueID: LeagueIDLiga1Indonesia, ClubID: "idn-baliutd", Name: "Ilija Spasojevic", Position: player.PositionForward},
		{ID: "eng-gk-01", LeagueID: LeagueIDPremierLeague, ClubID: "eng-ars", Name: "David Raya", Position: player.PositionGoalkeeper},
		{ID: "eng-def-01", LeagueID: LeagueIDPremierLeague, ClubID: "eng-ars", Name: "William Saliba", Position: player.PositionDefender},
		{ID: "eng-mid-01", LeagueID: LeagueIDPremierLeague, ClubID: "eng-liv", Name: "Dominik Szoboszlai", Position: player.PositionMidfielder},
		{ID: "eng-fwd-01", LeagueID: LeagueIDPremierLeague, ClubID: "eng-liv", Name: "Darwin Nunez", Position: player.PositionForward},
	}
}

func SeedGameweeks() []gameweek.Gameweek {
	return []gameweek.Gameweek{
		{
			ID:       GameweekIDLiga1Week1,
			LeagueID: LeagueIDLiga1Indonesia,
			Number:   1,
			Season:   "2025/2026",
			Deadline: time.Date(2026, 2, 14, 17, 0, 0, 0, time.UTC),
			Status:   gameweek.StatusActive,
			IsActive: true,
		},
		{
			ID:       GameweekIDLiga1Week2,
			LeagueID: LeagueIDLiga1Indonesia,
			Number:   2,
			Season:   "2025/2026",
			Deadline: time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC),
			Status:   gameweek.StatusUpcoming,
		},
		{
			ID:       GameweekIDLiga1Week3,
			LeagueID: LeagueIDLiga1Indonesia,
			Number:   3,
			Season:   "2025/2026",
			Deadline: time.Date(2026, 2, 28, 10, 30, 0, 0, time.UTC),
			Status:   gameweek.StatusUpcoming,
		},
	}
}
