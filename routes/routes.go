package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-api/docs"
	"github.com/Dosada05/tournament-api/handlers"
	"github.com/Dosada05/tournament-api/middleware"
)

// Deps - всё, что нужно для сборки маршрутизатора.
type Deps struct {
	Logger         *slog.Logger
	JWTSecret      []byte
	Tokens         middleware.TokenChecker // отзыв токенов через /logout
	AllowedOrigins []string
	// LocalStorageDir, если задан, раздаётся по /storage/*.
	LocalStorageDir string

	Auth       *handlers.AuthHandler
	Profile    *handlers.ProfileHandler
	Tournament *handlers.TournamentHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, d Deps) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(d.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if d.LocalStorageDir != "" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(d.LocalStorageDir)))
		router.Get("/storage/*", fs.ServeHTTP)
	}

	router.With(middleware.AuthenticateWebSocket(d.JWTSecret, d.Tokens)).
		Get("/ws/tournaments/{tournamentID}", d.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(d.JWTSecret, d.Tokens))

			r.Post("/logout", d.Auth.Logout)
			r.Get("/user", d.Auth.CurrentUser)

			r.Get("/profile", d.Profile.Show)
			r.Post("/profile", d.Profile.Update)
			r.Get("/profile/stats", d.Profile.Stats)

			r.Get("/my-tournaments", d.Tournament.MyTournaments)
			r.Get("/tournaments", d.Tournament.List)
			r.Get("/tournaments/{tournamentID}", d.Tournament.GetByID)
			r.Get("/tournaments/{tournamentID}/leaderboard", d.Tournament.Leaderboard)
			r.Post("/tournaments", d.Tournament.Create)
			r.Put("/tournaments/{tournamentID}", d.Tournament.Update)
			r.Delete("/tournaments/{tournamentID}", d.Tournament.Delete)

			r.Get("/tournaments/{tournamentID}/players", d.Player.List)
			r.Get("/tournaments/{tournamentID}/players/{playerID}", d.Player.GetByID)
			r.Get("/tournaments/{tournamentID}/players/{playerID}/stats", d.Player.Stats)
			r.Post("/tournaments/{tournamentID}/players", d.Player.Register)
			r.Put("/tournaments/{tournamentID}/players/{playerID}", d.Player.Update)
			r.Delete("/tournaments/{tournamentID}/players/{playerID}", d.Player.Delete)

			r.Get("/tournaments/{tournamentID}/matches", d.Match.List)
			r.Get("/tournaments/{tournamentID}/matches/{matchID}", d.Match.GetByID)
			r.Post("/tournaments/{tournamentID}/matches", d.Match.Create)
			r.Post("/tournaments/{tournamentID}/matches/round-robin", d.Match.GenerateRoundRobin)
			r.Put("/tournaments/{tournamentID}/matches/{matchID}", d.Match.Update)
			r.Delete("/tournaments/{tournamentID}/matches/{matchID}", d.Match.Delete)
			r.Put("/tournaments/{tournamentID}/matches/{matchID}/scores", d.Match.UpdateScores)
		})
	})
}
