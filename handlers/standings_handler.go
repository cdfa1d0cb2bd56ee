package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetStandings godoc
// @Summary      Current standings
// @Description  Ranked by wins; equal wins keep registration order.
// @Tags         standings
// @Produce      json
// @Success      200  {object}  map[string][]models.StandingEntry
// @Failure      503  {object}  errorBody
// @Router       /standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPairings godoc
// @Summary      Next round pairings
// @Description  Pairs adjacent players in the standings. Pairs that already met are listed under rematches.
// @Tags         standings
// @Produce      json
// @Success      200  {object}  models.RoundPlan
// @Failure      409  {object}  errorBody  "odd number of players"
// @Failure      503  {object}  errorBody
// @Router       /pairings [get]
func (h *StandingsHandler) GetPairings(w http.ResponseWriter, r *http.Request) {
	plan, err := h.standingsService.NextRound(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, plan, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
