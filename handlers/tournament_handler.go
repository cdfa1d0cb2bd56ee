package handlers

import (
	"net/http"
	"strings"

	"github.com/Dosada05/swiss-tournament/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	exportService     services.ExportService
}

func NewTournamentHandler(ts services.TournamentService, es services.ExportService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		exportService:     es,
	}
}

// ResetTournament godoc
// @Summary      Clear all matches and players
// @Tags         tournament
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.ResetResult
// @Failure      503  {object}  errorBody
// @Router       /tournament/reset [post]
func (h *TournamentHandler) ResetTournament(w http.ResponseWriter, r *http.Request) {
	res, err := h.tournamentService.Reset(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type CreateExportInput struct {
	Formats []string `json:"formats" example:"json,xlsx"`
}

// CreateExport godoc
// @Summary      Export standings
// @Description  Renders standings in every requested format and uploads the files.
// @Tags         tournament
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      CreateExportInput  true  "Formats: json, csv, yaml, xlsx"
// @Success      201    {object}  map[string][]services.ExportArtifact
// @Failure      400    {object}  errorBody
// @Failure      503    {object}  errorBody
// @Router       /exports [post]
func (h *TournamentHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	var input CreateExportInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	formats, err := services.ParseExportFormats(strings.Join(input.Formats, ","))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	artifacts, err := h.exportService.Export(r.Context(), formats)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"artifacts": artifacts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
