package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		NIMAPIKey:     "nvapi-test",
		NIMBaseURL:    "https://integrate.api.nvidia.com/v1",
		ChatModel:     "google/gemma-3-27b-it",
		VectorBackend: BackendSQLite,
		SQLitePath:    "/tmp/test.db",
		Embedder:      EmbedderLocal,
		Feeds:         DefaultFeeds,
		TopicSources:  DefaultTopicSources,
		FetchTimeout:  10 * time.Second,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_MissingNIMKey(t *testing.T) {
	cfg := validConfig()
	cfg.NIMAPIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing NIM API key")
	}
	if !strings.Contains(err.Error(), "NVIDIA_NIM_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestValidate_PineconeRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.VectorBackend = BackendPinecone

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing Pinecone credentials")
	}
	for _, want := range []string{"PINECONE_API_KEY", "PINECONE_INDEX_HOST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %s: %v", want, err)
		}
	}

	cfg.PineconeAPIKey = "key"
	cfg.PineconeIndexHost = "https://index.example.pinecone.io"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with credentials: %v", err)
	}
}

func TestValidate_SQLiteNeedsNoPineconeCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.PineconeAPIKey = ""
	cfg.PineconeIndexHost = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("sqlite backend should not require Pinecone credentials: %v", err)
	}
}

func TestValidate_OpenAIEmbedderRequiresKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedder = EmbedderOpenAI

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected OPENAI_API_KEY in error, got %v", err)
	}

	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with key: %v", err)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.VectorBackend = "qdrant"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestValidate_UnknownEmbedder(t *testing.T) {
	cfg := validConfig()
	cfg.Embedder = "voyage"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown embedder")
	}
}

func TestValidate_CollectsAllMissing(t *testing.T) {
	cfg := validConfig()
	cfg.NIMAPIKey = ""
	cfg.VectorBackend = BackendPinecone

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	// All missing variables reported at once, not one per run.
	for _, want := range []string{"NVIDIA_NIM_API_KEY", "PINECONE_API_KEY", "PINECONE_INDEX_HOST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %s: %v", want, err)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("bbc, guardian , ,gov_uk")
	want := []string{"bbc", "guardian", "gov_uk"}
	if len(got) != len(want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultFeedsOrder(t *testing.T) {
	names := []string{"bbc", "guardian", "gov_uk"}
	if len(DefaultFeeds) != len(names) {
		t.Fatalf("expected %d default feeds, got %d", len(names), len(DefaultFeeds))
	}
	for i, want := range names {
		if DefaultFeeds[i].Name != want {
			t.Errorf("feed %d = %q, want %q", i, DefaultFeeds[i].Name, want)
		}
	}
}
