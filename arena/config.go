package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the whole runtime surface, loaded from the environment
// (optionally via .env).
type Config struct {
	SmallBlind int `env:"SMALL_BLIND" envDefault:"10"`
	BigBlind   int `env:"BIG_BLIND" envDefault:"20"`
	StartStack int `env:"START_STACK" envDefault:"2000"`

	// Simulations=0 derives the count from the roster size.
	Simulations int `env:"SIMULATIONS" envDefault:"0"`
	SubsetSize  int `env:"SUBSET_SIZE" envDefault:"10"`
	MaxHands    int `env:"MAX_HANDS" envDefault:"100"`
	Parallelism int `env:"PARALLELISM" envDefault:"4"`

	ActionTimeout time.Duration `env:"ACTION_TIMEOUT" envDefault:"3s"`
	AgentMemLimit uint64        `env:"AGENT_MEM_LIMIT" envDefault:"1073741824"`

	Agents   []string `env:"AGENTS" envDefault:"caller,maniac,randy,randy2,equity" envSeparator:","`
	DeckSeed int64    `env:"DECK_SEED"`

	HistoryFile string `env:"HISTORY_FILE" envDefault:"history.log"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"AUTO_MIGRATE"`
	Port        string `env:"PORT" envDefault:"8080"`

	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= 0 || cfg.BigBlind < cfg.SmallBlind {
		return Config{}, fmt.Errorf("bad blinds: sb=%d bb=%d", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.StartStack < cfg.BigBlind {
		return Config{}, fmt.Errorf("start stack %d below big blind %d", cfg.StartStack, cfg.BigBlind)
	}
	if len(cfg.Agents) < 2 {
		return Config{}, fmt.Errorf("need at least two agents, got %d", len(cfg.Agents))
	}
	if cfg.SubsetSize < 2 {
		cfg.SubsetSize = 2
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return cfg, nil
}
