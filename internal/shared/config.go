package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	OpsAddr        string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	OpenAIKey      string
	OpenAIBase     string
	Model          string
	ProviderRPS    int
	Workers        int
	ExtractTimeout time.Duration
	CacheTTL       time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		OpsAddr:        env("OPS_ADDR", ":8080"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/intake?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		OpenAIKey:      env("OPENAI_API_KEY", ""),
		OpenAIBase:     env("OPENAI_BASE_URL", ""),
		Model:          env("EXTRACTION_MODEL", "gpt-4o"),
		ProviderRPS:    atoi("PROVIDER_RPS", 3),
		Workers:        atoi("INTAKE_WORKERS", 4),
		ExtractTimeout: time.Duration(atoi("EXTRACT_TIMEOUT_SECONDS", 60)) * time.Second,
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 86400)) * time.Second,
	}
	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
