package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/devops-poll/models"
)

type Config struct {
	Port int

	StoreType            string
	DataFile             string
	DatabaseURL          string
	RedisURL             string
	RedisKey             string
	FirestoreProject     string
	FirestoreCredentials string
	PollID               string
	SeedOptions          []string
	SerializeWrites      bool

	RabbitMQURL   string
	RabbitMQQueue string
	IPHashSalt    string

	LogLevel  string
	LogFormat string
}

// LoadEnvFile reads KEY=value pairs from path into the environment.
// Variables already set win, and a missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var seed, serialize string

	flags := flag.NewFlagSet("devops-poll", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")

	// Storage
	flags.StringVar(&cfg.StoreType, "store", "", "Store backend (file, sqlite, postgres, redis, firestore)")
	flags.StringVar(&cfg.DataFile, "f", "", "Tally JSON file (file backend)")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite, postgres)")
	flags.StringVar(&cfg.RedisURL, "redis", "", "Redis address or redis:// URL")
	flags.StringVar(&cfg.RedisKey, "redis-key", "", "Redis key prefix")
	flags.StringVar(&cfg.FirestoreProject, "firestore-project", "", "Firestore project ID")
	flags.StringVar(&cfg.FirestoreCredentials, "firestore-credentials", "", "Service account JSON file")
	flags.StringVar(&cfg.PollID, "poll-id", "", "Poll document ID (firestore)")
	flags.StringVar(&seed, "seed", "", "Comma-separated option labels to register at startup")
	flags.StringVar(&serialize, "serialize", "", "Serialize file store writes (true/false)")

	// Vote events
	flags.StringVar(&cfg.RabbitMQURL, "amqp", "", "RabbitMQ URL (empty disables vote events)")
	flags.StringVar(&cfg.RabbitMQQueue, "queue", "", "RabbitMQ queue for vote events")
	flags.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for voter IP hashes (prefer env)")

	// Logging
	flags.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text, json)")

	if err := flags.Parse(args); err != nil {
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
			cfg.Port = 3000 // default
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	cfg.StoreType = strings.ToLower(fallback(cfg.StoreType, "STORE_BACKEND", models.BackendFile))
	cfg.DataFile = fallback(cfg.DataFile, "DATA_FILE", "data.json")
	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	cfg.RedisURL = fallback(cfg.RedisURL, "REDIS_URL", "localhost:6379")
	cfg.RedisKey = fallback(cfg.RedisKey, "REDIS_KEY", "poll")
	cfg.FirestoreProject = fallback(cfg.FirestoreProject, "FIRESTORE_PROJECT", "")
	cfg.FirestoreCredentials = fallback(cfg.FirestoreCredentials, "GOOGLE_CREDENTIALS_FILE", "")
	cfg.PollID = fallback(cfg.PollID, "POLL_ID", "devops")
	cfg.SeedOptions = splitLabels(fallback(seed, "SEED_OPTIONS", ""))

	cfg.RabbitMQURL = fallback(cfg.RabbitMQURL, "RABBITMQ_URL", "")
	cfg.RabbitMQQueue = fallback(cfg.RabbitMQQueue, "RABBITMQ_QUEUE", "votes")
	cfg.IPHashSalt = fallback(cfg.IPHashSalt, "IP_HASH_SALT", "")

	cfg.LogLevel = strings.ToLower(fallback(cfg.LogLevel, "LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(fallback(cfg.LogFormat, "LOG_FORMAT", "text"))

	if s := fallback(serialize, "SERIALIZE_WRITES", "false"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid serialize value %q", s)
		}
		cfg.SerializeWrites = b
	}

	// Backend-specific requirements
	switch cfg.StoreType {
	case models.BackendFile:
		if cfg.DataFile == "" {
			return Config{}, errors.New("data file required (use -f or DATA_FILE env)")
		}
	case models.BackendSQLite, models.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case models.BackendRedis:
	case models.BackendFirestore:
		if cfg.FirestoreProject == "" {
			return Config{}, errors.New("FIRESTORE_PROJECT required for firestore backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreType)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

// fallback returns value, else the env variable, else def
func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func splitLabels(s string) []string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
