package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type MatchHandler struct {
	matchService      services.MatchService
	tournamentService services.TournamentService
}

func NewMatchHandler(ms services.MatchService, ts services.TournamentService) *MatchHandler {
	return &MatchHandler{
		matchService:      ms,
		tournamentService: ts,
	}
}

type ReportMatchInput struct {
	Winner *int `json:"winner" example:"1"`
	Loser  *int `json:"loser" example:"2"`
}

// ReportMatch godoc
// @Summary      Record a match result
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      ReportMatchInput  true  "Winner and loser ids"
// @Success      201    {object}  models.Match
// @Failure      400    {object}  errorBody
// @Failure      503    {object}  errorBody
// @Router       /matches [post]
func (h *MatchHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	var input ReportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Winner == nil || input.Loser == nil {
		badRequestResponse(w, r, errors.New("winner and loser are required"))
		return
	}

	match, err := h.matchService.ReportMatch(r.Context(), *input.Winner, *input.Loser)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches godoc
// @Summary      List recorded matches
// @Tags         matches
// @Produce      json
// @Success      200  {object}  map[string][]models.Match
// @Failure      503  {object}  errorBody
// @Router       /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatches godoc
// @Summary      Delete every recorded match
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.ResetResult
// @Failure      503  {object}  errorBody
// @Router       /matches [delete]
func (h *MatchHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	res, err := h.tournamentService.DeleteMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
