// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Vector backend identifiers.
const (
	BackendSQLite   = "sqlite"
	BackendPinecone = "pinecone"
)

// Embedder identifiers.
const (
	EmbedderLocal  = "local"
	EmbedderOpenAI = "openai"
)

// FeedSource names an RSS/Atom feed.
type FeedSource struct {
	Name string
	URL  string
}

// DefaultFeeds lists the configured feeds in fetch order.
var DefaultFeeds = []FeedSource{
	{Name: "bbc", URL: "https://feeds.bbci.co.uk/news/uk/rss.xml"},
	{Name: "guardian", URL: "https://www.theguardian.com/uk-news/rss"},
	{Name: "gov_uk", URL: "https://www.gov.uk/government/publications.atom"},
}

// DefaultTopicSources are the sources sampled for topic extraction.
var DefaultTopicSources = []string{"bbc", "guardian"}

// Config holds all application configuration.
type Config struct {
	// Answer generation (NVIDIA NIM, OpenAI-compatible API)
	NIMAPIKey  string
	NIMBaseURL string
	ChatModel  string

	// Vector backend selection
	VectorBackend string

	// SQLite backend
	SQLitePath string

	// Pinecone backend
	PineconeAPIKey    string
	PineconeIndexHost string

	// Embedder
	Embedder            string
	LocalEmbeddingURL   string
	LocalEmbeddingModel string
	OpenAIAPIKey        string

	// Feed fetching
	Feeds        []FeedSource
	TopicSources []string
	FetchTimeout  time.Duration
	FetchDelayMin time.Duration
	FetchDelayMax time.Duration

	// Server
	ServerAddr string

	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		NIMAPIKey:  os.Getenv("NVIDIA_NIM_API_KEY"),
		NIMBaseURL: getEnv("NVIDIA_NIM_BASE_URL", "https://integrate.api.nvidia.com/v1"),
		ChatModel:  getEnv("CHAT_MODEL", "google/gemma-3-27b-it"),

		VectorBackend: getEnv("VECTOR_BACKEND", BackendSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", defaultSQLitePath()),

		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeIndexHost: os.Getenv("PINECONE_INDEX_HOST"),

		Embedder:            getEnv("EMBEDDER", EmbedderLocal),
		LocalEmbeddingURL:   getEnv("LOCAL_EMBEDDING_URL", "http://localhost:11434/api/embed"),
		LocalEmbeddingModel: getEnv("LOCAL_EMBEDDING_MODEL", "nomic-embed-text"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),

		Feeds:         DefaultFeeds,
		TopicSources:  splitList(getEnv("TOPIC_SOURCES", strings.Join(DefaultTopicSources, ","))),
		FetchTimeout:  getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchDelayMin: getEnvAsDuration("FETCH_DELAY_MIN", 1*time.Second),
		FetchDelayMax: getEnvAsDuration("FETCH_DELAY_MAX", 3*time.Second),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present for the
// selected backends. Missing credentials are fatal at startup.
func (c *Config) Validate() error {
	var missing []string

	if c.NIMAPIKey == "" {
		missing = append(missing, "NVIDIA_NIM_API_KEY")
	}

	switch c.VectorBackend {
	case BackendSQLite:
	case BackendPinecone:
		if c.PineconeAPIKey == "" {
			missing = append(missing, "PINECONE_API_KEY")
		}
		if c.PineconeIndexHost == "" {
			missing = append(missing, "PINECONE_INDEX_HOST")
		}
	default:
		return fmt.Errorf("unknown vector backend %q (want %q or %q)", c.VectorBackend, BackendSQLite, BackendPinecone)
	}

	switch c.Embedder {
	case EmbedderLocal:
	case EmbedderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown embedder %q (want %q or %q)", c.Embedder, EmbedderLocal, EmbedderOpenAI)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ragnews/articles.db"
	}
	return home + "/.ragnews/articles.db"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
