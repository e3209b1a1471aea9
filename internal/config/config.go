// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment
// variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable with -store.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address"`

	// Store selects the slot backend.
	Store string `json:"store"`

	// DataFile is the path of the file backend.
	DataFile string `json:"data_file"`

	// DatabaseDSN holds the database connection string for the postgres backend.
	DatabaseDSN string `json:"database_dsn"`

	RedisAddr   string `json:"redis_addr"`
	RedisPrefix string `json:"redis_prefix"`

	// NATSURL enables domain events when set.
	NATSURL string `json:"nats_url"`

	// LatencyScale multiplies the simulated operation delays; 0 disables them.
	LatencyScale float64 `json:"latency_scale"`

	// StrictUpdates makes updates of unknown hotels or cars fail with 404.
	StrictUpdates bool `json:"strict_updates"`

	LogLevel string `json:"log_level"`

	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string `json:"cors_origins"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Parse loads .env, then parses the command-line flags, the config file and
// environment variables, in that order. It exits the process on invalid
// input.
func Parse() *Options {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}

	options, err := parse(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return options
}

func parse(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}

	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.Store, "store", StoreFile, "slot backend: memory, file, postgres or redis")
	fs.StringVar(&options.DataFile, "data", "tripwise.json", "path of the file backend")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.RedisAddr, "redis", "localhost:6379", "redis address")
	fs.StringVar(&options.RedisPrefix, "redis-prefix", "tripwise:", "redis key prefix")
	fs.StringVar(&options.NATSURL, "nats", "", "NATS url, empty disables events")
	fs.Float64Var(&options.LatencyScale, "latency", 1, "multiplier on simulated delays, 0 disables them")
	fs.BoolVar(&options.StrictUpdates, "strict-updates", false, "reject updates of unknown hotels or cars")
	fs.StringVar(&options.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&options.CORSOrigins, "cors", "*", "comma-separated allowed origins")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := applyEnv(options, getenv); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func applyEnv(o *Options, getenv func(string) string) error {
	strs := map[string]*string{
		"SERVER_ADDRESS": &o.Port,
		"STORE":          &o.Store,
		"DATA_FILE":      &o.DataFile,
		"DATABASE_DSN":   &o.DatabaseDSN,
		"REDIS_ADDR":     &o.RedisAddr,
		"REDIS_PREFIX":   &o.RedisPrefix,
		"NATS_URL":       &o.NATSURL,
		"LOG_LEVEL":      &o.LogLevel,
		"CORS_ORIGINS":   &o.CORSOrigins,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	if v := getenv("LATENCY_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LATENCY_SCALE: %w", err)
		}
		o.LatencyScale = f
	}
	if v := getenv("STRICT_UPDATES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STRICT_UPDATES: %w", err)
		}
		o.StrictUpdates = b
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (o *Options) Validate() error {
	switch o.Store {
	case StoreMemory, StoreFile, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q", o.Store)
	}
	if o.Store == StoreFile && o.DataFile == "" {
		return errors.New("file store needs a data file path")
	}
	if o.Store == StorePostgres && o.DatabaseDSN == "" {
		return errors.New("postgres store needs a database DSN")
	}
	if o.Store == StoreRedis && o.RedisAddr == "" {
		return errors.New("redis store needs an address")
	}
	if math.IsNaN(o.LatencyScale) || math.IsInf(o.LatencyScale, 0) {
		return fmt.Errorf("latency scale must be a finite number, got %v", o.LatencyScale)
	}
	if o.LatencyScale < 0 {
		return fmt.Errorf("latency scale must not be negative, got %v", o.LatencyScale)
	}
	return nil
}

// AllowedOrigins splits CORSOrigins into a list, dropping empty entries.
func (o *Options) AllowedOrigins() []string {
	var out []string
	for _, origin := range strings.Split(o.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
