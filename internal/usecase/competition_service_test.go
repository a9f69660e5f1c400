package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/memory"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
	"github.com/totohockey/totohockey/internal/platform/logging"
)

func newCompetitionFixture() (*CompetitionService, *memory.PredictionRepository) {
	predictionRepo := memory.NewPredictionRepository(nil)
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())

	scoring := NewScoringService(predictionRepo, matchRepo, nil, logging.NewNop(), 2)
	svc := NewCompetitionService(
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewRoundRepository(memory.SeedRounds()),
		matchRepo,
		scoring,
		idgen.NewRandomGenerator(),
	)

	return svc, predictionRepo
}

func TestCompetitionService_CreateMatch_Validation(t *testing.T) {
	svc, _ := newCompetitionFixture()
	ctx := context.Background()
	startsAt := time.Date(2026, 6, 16, 14, 0, 0, 0, time.UTC)

	_, err := svc.CreateMatch(ctx, CreateMatchInput{RoundID: "round-1", HomeTeamID: "ned", AwayTeamID: "ned", StartsAt: startsAt})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("team vs itself: expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.CreateMatch(ctx, CreateMatchInput{RoundID: "round-1", HomeTeamID: "ned", AwayTeamID: "no-such-team", StartsAt: startsAt})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown team: expected ErrNotFound, got %v", err)
	}

	_, err = svc.CreateMatch(ctx, CreateMatchInput{RoundID: "no-such-round", HomeTeamID: "ned", AwayTeamID: "bel", StartsAt: startsAt})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown round: expected ErrNotFound, got %v", err)
	}

	created, err := svc.CreateMatch(ctx, CreateMatchInput{
		RoundID: "round-1", HomeTeamID: "ned", AwayTeamID: "esp",
		Competition: "World Cup 2026", StartsAt: startsAt,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if created.ID == "" || created.HasResult() {
		t.Fatalf("new match must have an id and no result")
	}
}

func TestCompetitionService_DeleteRound_RefusesWhileMatchesExist(t *testing.T) {
	svc, _ := newCompetitionFixture()
	ctx := context.Background()

	err := svc.DeleteRound(ctx, "round-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("round with matches: expected ErrInvalidInput, got %v", err)
	}

	empty, err := svc.CreateRound(ctx, CreateRoundInput{
		Label:      "Finals",
		DeadlineAt: time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if err := svc.DeleteRound(ctx, empty.ID); err != nil {
		t.Fatalf("delete empty round: %v", err)
	}
}

func TestCompetitionService_RecordResult_ScoresPredictions(t *testing.T) {
	svc, predictionRepo := newCompetitionFixture()
	ctx := context.Background()

	seed := []struct {
		id, userID string
		home, away int
	}{
		{"p1", "user-demo-1", 2, 1},
		{"p2", "user-demo-2", 3, 0},
		{"p3", "user-demo-3", 0, 2},
	}
	for _, s := range seed {
		err := predictionRepo.Upsert(ctx, prediction.Prediction{
			ID: s.id, UserID: s.userID, MatchID: "match-001", HomeGoals: s.home, AwayGoals: s.away,
		})
		if err != nil {
			t.Fatalf("seed prediction: %v", err)
		}
	}

	result, err := svc.RecordResult(ctx, RecordResultInput{MatchID: "match-001", HomeScore: 2, AwayScore: 1})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if result.Matches != 1 || result.Predictions != 3 || len(result.Failed) != 0 {
		t.Fatalf("unexpected batch result: %+v", result)
	}

	wantPoints := map[string]int{"user-demo-1": 3, "user-demo-2": 1, "user-demo-3": 0}
	items, err := predictionRepo.ListByMatch(ctx, "match-001")
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	for _, p := range items {
		if p.Points == nil {
			t.Fatalf("prediction of %s is not scored", p.UserID)
		}
		if *p.Points != wantPoints[p.UserID] {
			t.Fatalf("unexpected points for %s: got=%d want=%d", p.UserID, *p.Points, wantPoints[p.UserID])
		}
	}

	_, err = svc.RecordResult(ctx, RecordResultInput{MatchID: "match-001", HomeScore: -1, AwayScore: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative score: expected ErrInvalidInput, got %v", err)
	}
}
