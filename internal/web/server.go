package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/tickermatch/internal/ai"
	"github.com/tickermatch/internal/config"
	"github.com/tickermatch/internal/db"
	"github.com/tickermatch/internal/etl"
	"github.com/tickermatch/internal/matcher"
	"github.com/tickermatch/internal/web/handlers"
	"github.com/tickermatch/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	conn       *db.Connection
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance, wiring the database, the
// listing source, the matcher and the optional OpenAI fallback.
func NewServer(cfg *Config) (*Server, error) {
	conn, err := db.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := db.NewTickerStore(conn)
	if err := store.EnsureSchema(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	matcherCfg := config.MatcherConfig()
	fallback := ai.NewClient(os.Getenv("OPENAI_API_KEY"), matcherCfg)
	listings := etl.NewListingClient(os.Getenv("ALPHA_VANTAGE_API_KEY"),
		config.GetEnv("ALPHA_VANTAGE_BASE_URL", ""))

	server := &Server{
		config: cfg,
		conn:   conn,
	}
	server.setupRoutes(&handlers.API{
		Store:   store,
		Updater: etl.NewUpdater(listings, store, matcherCfg),
		Matcher: matcher.New(matcherCfg, fallback),
		Cfg:     matcherCfg,
	})

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(api *handlers.API) {
	s.router = mux.NewRouter()

	s.router.HandleFunc("/health", api.Health).Methods("GET")

	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/match", api.MatchCompany).Methods("POST")
	apiRouter.HandleFunc("/update", api.UpdateTickers).Methods("POST")
	apiRouter.HandleFunc("/latest", api.LatestTickers).Methods("GET")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
}

// Start starts the web server
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		fmt.Printf("Database close error: %v\n", err)
	}

	fmt.Println("Server stopped")
	return nil
}
