package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultEnvironment = "production"
const defaultLogLevel = "warn"
const defaultKafkaTopic = "ledger.balance_changed"
const defaultPublishTimeout = 5 * time.Second

type Config struct {
	Environment    string
	LogLevel       string
	KafkaBrokers   []string
	KafkaTopic     string
	PublishTimeout time.Duration
}

// PublishingEnabled reports whether balance changes should be sent to Kafka.
func (c Config) PublishingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads the environment after applying envFile, if it exists.
// Variables already set in the process environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	environment := strings.ToLower(strings.TrimSpace(os.Getenv("LEDGER_ENV")))
	if environment == "" {
		environment = defaultEnvironment
	}

	logLevel := strings.TrimSpace(os.Getenv("LEDGER_LOG_LEVEL"))
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	topic := strings.TrimSpace(os.Getenv("LEDGER_KAFKA_TOPIC"))
	if topic == "" {
		topic = defaultKafkaTopic
	}

	timeout := defaultPublishTimeout
	if raw := strings.TrimSpace(os.Getenv("LEDGER_PUBLISH_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse LEDGER_PUBLISH_TIMEOUT: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("LEDGER_PUBLISH_TIMEOUT must be positive, got %s", raw)
		}
		timeout = parsed
	}

	return Config{
		Environment:    environment,
		LogLevel:       logLevel,
		KafkaBrokers:   splitList(os.Getenv("LEDGER_KAFKA_BROKERS")),
		KafkaTopic:     topic,
		PublishTimeout: timeout,
	}, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
