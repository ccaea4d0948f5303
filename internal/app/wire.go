package app

import (
	"log/slog"
	"math/rand"

	"github.com/cardroom/platform/internal/auth"
	"github.com/cardroom/platform/internal/blackjack"
	"github.com/cardroom/platform/internal/handler"
	"github.com/cardroom/platform/internal/repository"
	"github.com/cardroom/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger
	// Rand seeds the shuffle engine; nil uses a time-seeded source.
	Rand *rand.Rand
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	userRepo := repository.NewUserRepository()
	gameRepo := repository.NewGameRepository()
	participationRepo := repository.NewParticipationRepository()
	physicalCardRepo := repository.NewPhysicalCardRepository()
	gameCardRepo := repository.NewGameCardRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Deck state machine
	engine := blackjack.NewEngine(gameRepo, participationRepo, physicalCardRepo, gameCardRepo, outboxRepo, deps.Rand, logger)

	// Services
	authSvc := service.NewAuthService(pool, userRepo, outboxRepo, jwtMgr)
	gameSvc := service.NewGameService(pool, gameRepo, outboxRepo, engine, logger)
	participationSvc := service.NewParticipationService(
		pool, gameRepo, participationRepo, userRepo, gameCardRepo, outboxRepo, engine, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userRepo, pool)
	gameHandler := handler.NewGameHandler(gameSvc)
	participationHandler := handler.NewParticipationHandler(participationSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", userHandler.GetMe)
			r.Post("/charge", userHandler.Charge)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.ListGames)
			r.Post("/", gameHandler.CreateGame)
			r.Get("/{id}", gameHandler.GetGame)
		})

		r.Route("/participations", func(r chi.Router) {
			r.Get("/", participationHandler.ListMine)
			r.Post("/", participationHandler.Join)
			r.Get("/{id}", participationHandler.Get)
			r.Delete("/{id}", participationHandler.Quit)
			r.Post("/{id}/bet", participationHandler.Bet)
			r.Get("/{id}/hand", participationHandler.GetHand)
		})
	})

	return r
}
