package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string          `yaml:"addr"`
	Env           string          `yaml:"env"`
	JWTSecret     string          `yaml:"jwt_secret"`
	APITimeout    time.Duration   `yaml:"timeout"`
	DatabasePath  string          `yaml:"database_path"`
	TokenDuration time.Duration   `yaml:"token_duration"`
	Workers       int             `yaml:"workers"`
	Scorer        ScorerConfig    `yaml:"scorer"`
	Assistant     AssistantConfig `yaml:"assistant"`
}

// ScorerConfig points at the external match-scoring service.
type ScorerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AssistantConfig configures the chat assistant relay.
type AssistantConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Model        string        `yaml:"model"`
	SystemPrompt string        `yaml:"system_prompt"`
	Timeout      time.Duration `yaml:"timeout"`
	RatePerSec   float64       `yaml:"rate_per_sec"`
	RateBurst    int           `yaml:"rate_burst"`
}

const insecureDefaultSecret = "supersecretkey"

// DefaultSystemPrompt is the fixed business prompt for the chat assistant.
const DefaultSystemPrompt = `Kamu adalah Chatbot Citra Overseas Assistant milik PT Citra Insan Mandiri.
Jawablah dengan sopan, ramah, dan ringkas dalam Bahasa Indonesia.

Informasi yang bisa kamu berikan:
- Program kerja luar negeri tersedia di berbagai negara (Jepang, Korea, Taiwan, Singapura, dll)
- Proses seleksi: Pendaftaran, Seleksi Berkas, Interview, Medical Check-up, Training, Berangkat
- Biaya administrasi bervariasi tergantung negara tujuan (hubungi kantor untuk detail)
- Dokumen yang diperlukan: KTP, KK, Ijazah, Paspor, Foto
- Gaji disesuaikan dengan negara dan posisi
- Kontrak kerja biasanya 2-3 tahun

Jika ada pertanyaan yang tidak bisa kamu jawab, arahkan pengguna untuk menghubungi kantor langsung.`

// LoadConfig builds configuration from defaults, environment variables, and
// an optional YAML file. A .env file in the working directory is honored.
func LoadConfig(path string) (*Config, error) {
	// best effort; a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("PLACEMENT_ADDR", ":8080"),
		Env:           getEnv("PLACEMENT_ENV", "development"),
		JWTSecret:     getEnv("PLACEMENT_JWT_SECRET", insecureDefaultSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("PLACEMENT_DATABASE_PATH", "placement.db"),
		TokenDuration: 24 * time.Hour,
		Workers:       2,
		Scorer: ScorerConfig{
			BaseURL: getEnv("PLACEMENT_SCORER_URL", "http://localhost:9090"),
			Timeout: 10 * time.Second,
		},
		Assistant: AssistantConfig{
			BaseURL:      getEnv("PLACEMENT_ASSISTANT_URL", "http://localhost:11434"),
			Model:        getEnv("PLACEMENT_ASSISTANT_MODEL", "llama3.2"),
			SystemPrompt: DefaultSystemPrompt,
			Timeout:      30 * time.Second,
			RatePerSec:   1,
			RateBurst:    5,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach production.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.JWTSecret == "" || (c.JWTSecret == insecureDefaultSecret && c.Env != "development") {
		return fmt.Errorf("jwt_secret must be set to a non-default value outside development")
	}
	if c.Assistant.Model == "" {
		return fmt.Errorf("assistant model is required")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
