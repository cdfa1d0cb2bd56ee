package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/swiss-tournament/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginInput struct {
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login godoc
// @Summary      Organizer login
// @Description  Exchanges the organizer password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      LoginInput  true  "Organizer password"
// @Success      200    {object}  LoginResponse
// @Failure      400    {object}  errorBody
// @Failure      401    {object}  errorBody
// @Failure      403    {object}  errorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	token, expiresAt, err := h.authService.Login(r.Context(), input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
