package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type PlayerHandler struct {
	playerService     services.PlayerService
	tournamentService services.TournamentService
}

func NewPlayerHandler(ps services.PlayerService, ts services.TournamentService) *PlayerHandler {
	return &PlayerHandler{
		playerService:     ps,
		tournamentService: ts,
	}
}

type RegisterPlayerInput struct {
	Name string `json:"name" example:"Bruno Walton"`
}

// RegisterPlayer godoc
// @Summary      Register a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      RegisterPlayerInput  true  "Player"
// @Success      201    {object}  models.Player
// @Failure      400    {object}  errorBody
// @Failure      503    {object}  errorBody
// @Router       /players [post]
func (h *PlayerHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input RegisterPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Register(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, player, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPlayers godoc
// @Summary      List players in registration order
// @Tags         players
// @Produce      json
// @Success      200  {object}  map[string][]models.Player
// @Failure      503  {object}  errorBody
// @Router       /players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CountPlayers godoc
// @Summary      Count registered players
// @Tags         players
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      503  {object}  errorBody
// @Router       /players/count [get]
func (h *PlayerHandler) CountPlayers(w http.ResponseWriter, r *http.Request) {
	n, err := h.playerService.Count(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": n}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayers godoc
// @Summary      Delete every player
// @Description  Fails with 409 while matches are recorded.
// @Tags         players
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.ResetResult
// @Failure      409  {object}  errorBody
// @Failure      503  {object}  errorBody
// @Router       /players [delete]
func (h *PlayerHandler) DeletePlayers(w http.ResponseWriter, r *http.Request) {
	res, err := h.tournamentService.DeletePlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
