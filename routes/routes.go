package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // псевдоним, чтобы не путать с нашим middleware
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/swiss-tournament/docs" // регистрирует swagger-документ
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/services"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Players    *handlers.PlayerHandler
	Matches    *handlers.MatchHandler
	Standings  *handlers.StandingsHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

type Options struct {
	Verifier           middleware.TokenVerifier
	Metrics            *metrics.Recorder
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(opts.Metrics.Middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Healthz)
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Вебсокет живёт дольше любого таймаута запроса, поэтому вне группы с Timeout.
	router.Get("/ws/standings", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		r.Post("/auth/login", h.Auth.Login)

		r.Get("/players", h.Players.ListPlayers)
		r.Get("/players/count", h.Players.CountPlayers)
		r.Get("/matches", h.Matches.ListMatches)
		r.Get("/standings", h.Standings.GetStandings)
		r.Get("/pairings", h.Standings.GetPairings)

		// Изменения турнира доступны только организатору
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.Verifier))
			r.Use(middleware.Authorize(services.RoleOrganizer))

			r.Post("/players", h.Players.RegisterPlayer)
			r.Delete("/players", h.Players.DeletePlayers)
			r.Post("/matches", h.Matches.ReportMatch)
			r.Delete("/matches", h.Matches.DeleteMatches)
			r.Post("/tournament/reset", h.Tournament.ResetTournament)
			r.Post("/exports", h.Tournament.CreateExport)
		})
	})
}
