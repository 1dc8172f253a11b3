package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"gameshow-service/internal/config"
	"gameshow-service/internal/domain"
	"gameshow-service/internal/game"
	"gameshow-service/internal/infra/memory"
	pgstore "gameshow-service/internal/infra/postgres"
	redisstore "gameshow-service/internal/infra/redis"
	transport "gameshow-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var items game.ItemSource
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		items = pgstore.NewItemStore(pool)
	} else {
		items = memory.NewItemStore(sampleQuestions(), sampleWords())
	}

	var scores game.ScoreKeeper = memory.NewScoreboard()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		scores = redisstore.NewScoreboard(client)
	}

	timings := game.DefaultTimings()
	timings.HintDelay = config.Duration(cfg.Game.HintDelay, timings.HintDelay)
	timings.HintInterval = config.Duration(cfg.Game.HintInterval, timings.HintInterval)
	timings.FinalWait = config.Duration(cfg.Game.FinalWait, timings.FinalWait)
	timings.GraceWindow = config.Duration(cfg.Game.GraceWindow, timings.GraceWindow)
	timings.TransitionDelay = config.Duration(cfg.Game.TransitionDelay, timings.TransitionDelay)

	hub := transport.NewHub()
	service := game.New(game.Config{
		Items:   items,
		Scores:  scores,
		Posts:   hub,
		Timings: timings,
	})
	gateway := transport.NewGatewayHandler(service, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", gateway.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Minute,
		WriteTimeout: 15 * time.Minute,
	}

	go func() {
		log.Printf("starting game service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions seeds a redis/postgres-less run; production pools load via
// the migrate command and external loaders.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "What is the capital of France?", Answers: []string{"Paris"}},
		{ID: 2, Text: "How many planets orbit the Sun?", Answers: []string{"8", "eight"}},
		{ID: 3, Text: "Which element has the symbol O?", Answers: []string{"Oxygen"}},
		{ID: 4, Text: "Who wrote '1984'?", Answers: []string{"George Orwell", "Orwell"}},
		{ID: 5, Text: "What year did the Berlin Wall fall?", Answers: []string{"1989"}},
	}
}

func sampleWords() []domain.Word {
	return []domain.Word{
		{ID: 1, Text: "keyboard"},
		{ID: 2, Text: "penguin"},
		{ID: 3, Text: "lantern"},
		{ID: 4, Text: "whisper"},
		{ID: 5, Text: "granite"},
	}
}
