package httpapi

import (
	"fmt"
	"net/http"

	"github.com/totohockey/totohockey/internal/usecase"
)

func (h *Handler) GlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalLeaderboard")
	defer span.End()

	entries, err := h.leaderboards.Global(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) LeagueLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeagueLeaderboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	entries, err := h.leaderboards.ForLeague(ctx, principal.UserID, r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, entries)
}
