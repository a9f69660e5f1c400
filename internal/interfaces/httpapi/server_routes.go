package httpapi

import "net/http"

func registerRoutes(mux *http.ServeMux, cfg RouterConfig) {
	h := cfg.Handler
	verifier := cfg.TokenVerifier

	authorized := func(handler http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, handler)
	}
	admin := func(handler http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(handler))
	}

	mux.HandleFunc("GET /healthz", h.Healthz)

	// Public catalogue and the global board.
	mux.HandleFunc("GET /v1/teams", h.ListTeams)
	mux.HandleFunc("GET /v1/rounds", h.ListRounds)
	mux.HandleFunc("GET /v1/rounds/{roundID}/matches", h.ListRoundMatches)
	mux.HandleFunc("GET /v1/leaderboard", h.GlobalLeaderboard)

	// Forecasts of the signed-in user.
	mux.Handle("PUT /v1/predictions/{matchID}", authorized(h.SavePrediction))
	mux.Handle("GET /v1/predictions", authorized(h.ListMyPredictions))
	mux.Handle("GET /v1/predictions/{matchID}", authorized(h.GetMyPrediction))

	// Leagues and the invite lifecycle.
	mux.Handle("POST /v1/leagues", authorized(h.CreateLeague))
	mux.Handle("GET /v1/leagues", authorized(h.ListMyLeagues))
	mux.Handle("POST /v1/leagues/join", authorized(h.JoinLeague))
	mux.Handle("GET /v1/leagues/{leagueID}", authorized(h.GetLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/invite", authorized(h.LeagueInvite))
	mux.Handle("POST /v1/leagues/{leagueID}/invite", authorized(h.RegenerateLeagueInvite))
	mux.Handle("GET /v1/leagues/{leagueID}/leaderboard", authorized(h.LeagueLeaderboard))
	mux.Handle("POST /v1/leagues/{leagueID}/recalculate", authorized(h.RecalculateLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/matches/{matchID}/predictions", authorized(h.LeagueMatchPredictions))

	// Fixture management and result entry.
	mux.Handle("POST /v1/admin/teams", admin(h.CreateTeam))
	mux.Handle("PUT /v1/admin/teams/{teamID}", admin(h.UpdateTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", admin(h.DeleteTeam))
	mux.Handle("POST /v1/admin/rounds", admin(h.CreateRound))
	mux.Handle("PUT /v1/admin/rounds/{roundID}", admin(h.UpdateRound))
	mux.Handle("DELETE /v1/admin/rounds/{roundID}", admin(h.DeleteRound))
	mux.Handle("POST /v1/admin/matches", admin(h.CreateMatch))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", admin(h.DeleteMatch))
	mux.Handle("POST /v1/admin/matches/{matchID}/result", admin(h.RecordResult))
	mux.Handle("POST /v1/admin/recalculate", admin(h.RecalculateAll))

	// Scheduler-triggered full recompute, guarded by a shared token.
	mux.Handle("POST /v1/internal/jobs/recalculate",
		RequireInternalJobToken(cfg.InternalJobToken, http.HandlerFunc(h.RecalculateAll)))
}
