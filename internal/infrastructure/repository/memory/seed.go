package memory

import (
	"time"

	"github.com/totohockey/totohockey/internal/domain/match"
	"github.com/totohockey/totohockey/internal/domain/round"
	"github.com/totohockey/totohockey/internal/domain/team"
	"github.com/totohockey/totohockey/internal/domain/user"
)

// Dev-mode fixtures so the API is usable without a database.

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "ned", Name: "Netherlands", ShortName: "NED", Country: "NL"},
		{ID: "bel", Name: "Belgium", ShortName: "BEL", Country: "BE"},
		{ID: "ger", Name: "Germany", ShortName: "GER", Country: "DE"},
		{ID: "eng", Name: "England", ShortName: "ENG", Country: "GB"},
		{ID: "aus", Name: "Australia", ShortName: "AUS", Country: "AU"},
		{ID: "ind", Name: "India", ShortName: "IND", Country: "IN"},
		{ID: "arg", Name: "Argentina", ShortName: "ARG", Country: "AR"},
		{ID: "esp", Name: "Spain", ShortName: "ESP", Country: "ES"},
	}
}

func SeedRounds() []round.Round {
	return []round.Round{
		{
			ID:         "round-1",
			Label:      "Pool Stage Day 1",
			DeadlineAt: time.Date(2026, 6, 12, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:         "round-2",
			Label:      "Pool Stage Day 2",
			DeadlineAt: time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          "match-001",
			RoundID:     "round-1",
			HomeTeamID:  "ned",
			AwayTeamID:  "bel",
			Competition: "World Cup 2026",
			StartsAt:    time.Date(2026, 6, 12, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:          "match-002",
			RoundID:     "round-1",
			HomeTeamID:  "ger",
			AwayTeamID:  "eng",
			Competition: "World Cup 2026",
			StartsAt:    time.Date(2026, 6, 12, 16, 0, 0, 0, time.UTC),
		},
		{
			ID:          "match-003",
			RoundID:     "round-2",
			HomeTeamID:  "aus",
			AwayTeamID:  "ind",
			Competition: "World Cup 2026",
			StartsAt:    time.Date(2026, 6, 14, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:          "match-004",
			RoundID:     "round-2",
			HomeTeamID:  "arg",
			AwayTeamID:  "esp",
			Competition: "World Cup 2026",
			StartsAt:    time.Date(2026, 6, 14, 16, 0, 0, 0, time.UTC),
		},
	}
}

func SeedProfiles() []user.Profile {
	return []user.Profile{
		{UserID: "user-demo-1", DisplayName: "Sanne"},
		{UserID: "user-demo-2", DisplayName: "Wouter"},
		{UserID: "user-demo-3", DisplayName: "Femke"},
	}
}
