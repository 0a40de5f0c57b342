package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"holdem-arena/arena/agent"
	"holdem-arena/arena/store"
)

func main() {
	_ = godotenv.Load()

	boot := zerolog.New(os.Stderr)
	cfg, err := loadConfig()
	if err != nil {
		boot.Fatal().Err(err).Msg("bad configuration")
	}
	log, closeLog, err := initLogging(cfg)
	if err != nil {
		boot.Fatal().Err(err).Msg("logging init failed")
	}
	defer closeLog()

	var migrate, serve bool
	for _, a := range os.Args[1:] {
		switch a {
		case "--migrate":
			migrate = true
		case "--serve":
			serve = true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignals(cancel)

	var db *store.DB
	if cfg.DatabaseURL != "" {
		db, err = store.Open(cfg.DatabaseURL)
		if err != nil {
			if migrate || serve {
				log.Fatal().Err(err).Msg("db open failed")
			}
			log.Warn().Err(err).Msg("db disabled (open failed)")
			db = nil
		} else {
			defer db.Close(context.Background())
		}
	}
	if db != nil && (migrate || cfg.AutoMigrate) {
		if err := store.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
		log.Info().Msg("migrated")
		if migrate {
			return
		}
	}

	if serve {
		if db == nil {
			log.Fatal().Msg("--serve needs DATABASE_URL")
		}
		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      newRouter(db, log),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info().Str("port", cfg.Port).Msg("serving results API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	reg := buildRegistry(cfg, log)
	res, err := NewTournament(cfg, reg, log).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}
	if db != nil {
		if err := persistResults(ctx, db, cfg, res); err != nil {
			log.Error().Err(err).Msg("persisting results failed")
		}
	}
}

func watchSignals(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	cancel()
}

// buildRegistry wires every strategy that can run in this process. The
// LLM agent only registers when credentials are configured.
func buildRegistry(cfg Config, log zerolog.Logger) *agent.Registry {
	reg := agent.NewRegistry()
	reg.Register("caller", agent.NewCallBot)
	reg.Register("maniac", agent.NewAggroBot)
	reg.Register("randy", agent.NewRandomBot)
	reg.Register("randy2", agent.NewRandomBot)
	reg.Register("equity", agent.NewEquityBot)
	if cfg.OpenAIKey != "" && cfg.OpenAIModel != "" {
		reg.Register("llm", agent.NewLLMBot(agent.LLMConfig{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}, log))
	}
	return reg
}

// persistResults upserts every agent, folds tournament deltas into career
// ratings, and records the tournament itself.
func persistResults(ctx context.Context, db *store.DB, cfg Config, res *TournamentResult) error {
	tid, err := db.CreateTournament(ctx, res.ID,
		cfg.SmallBlind, cfg.BigBlind, cfg.StartStack,
		len(res.Sims), cfg.SubsetSize, cfg.MaxHands)
	if err != nil {
		return err
	}

	rows := make([]store.TournamentResultRow, 0, len(cfg.Agents))
	for _, name := range cfg.Agents {
		botID, err := db.UpsertBot(ctx, name, "builtin")
		if err != nil {
			return err
		}
		gl := res.Glicko[name]
		st := res.Stats[name]
		elo := res.Elo.Rating(name)
		if _, _, _, _, _, _, err := db.GetOrInitRatings(ctx, botID); err != nil {
			return err
		}
		if err := db.UpdateBotRatings(ctx, botID, elo, gl.Rating, gl.RD, gl.Volatility,
			st.Sims, st.Wins, st.HandsPlayed, st.NetChips); err != nil {
			return err
		}
		rows = append(rows, store.TournamentResultRow{
			BotID:    botID,
			Name:     name,
			Sims:     st.Sims,
			Wins:     st.Wins,
			Hands:    st.HandsPlayed,
			NetChips: st.NetChips,
			Elo:      elo,
			GRating:  gl.Rating,
			GRD:      gl.RD,
			GSigma:   gl.Volatility,
		})
	}
	if err := db.InsertTournamentResults(ctx, tid, rows); err != nil {
		return err
	}
	return db.CompleteTournament(ctx, tid)
}
