package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Store type constants
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port            int
	DatabaseURL     string
	StoreType       string
	OperatorKeySalt string
	ChiefKeySalt    string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("compareround", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.StoreType, "t", "", "Session store type (postgres or memory)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OperatorKeySalt, "operator-salt", "", "Operator key salt (prefer env)")
	fs.StringVar(&cfg.ChiefKeySalt, "chief-salt", "", "Chief key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3419 // default
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StorePostgres
		}
	}
	if cfg.StoreType != StorePostgres && cfg.StoreType != StoreMemory {
		return Config{}, errors.New("store type must be postgres or memory")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.StoreType == StorePostgres {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.OperatorKeySalt == "" {
		cfg.OperatorKeySalt = os.Getenv("OPERATOR_KEY_SALT")
	}
	if cfg.OperatorKeySalt == "" {
		return Config{}, errors.New("OPERATOR_KEY_SALT required")
	}

	if cfg.ChiefKeySalt == "" {
		cfg.ChiefKeySalt = os.Getenv("CHIEF_KEY_SALT")
	}
	if cfg.ChiefKeySalt == "" {
		return Config{}, errors.New("CHIEF_KEY_SALT required")
	}

	return cfg, nil
}
