package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	OpsAddr      string
	DatabaseURL  string
	MaxOpenConns int
	MaxIdleConns int
}

// FromEnv builds a Config from environment variables, loading a local .env
// file first when present.
func FromEnv() Config {
	_ = godotenv.Load()

	addr := os.Getenv("GEODOCS_OPS_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	return Config{
		OpsAddr:      addr,
		DatabaseURL:  databaseURL(),
		MaxOpenConns: envInt("PG_MAX_OPEN_CONNS", 50),
		MaxIdleConns: envInt("PG_MAX_IDLE_CONNS", 25),
	}
}

// databaseURL prefers an explicit DATABASE_URL and otherwise assembles a DSN
// from PG_* variables with development defaults.
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := envDefault("PG_HOST", "localhost")
	port := envDefault("PG_PORT", "5432")
	user := envDefault("PG_USER", "postgres")
	pass := os.Getenv("PG_PASSWORD")
	db := envDefault("PG_DB", "geodocs")
	ssl := envDefault("PG_SSLMODE", "disable")

	dsn := "postgres://" + user
	if pass != "" {
		dsn += ":" + pass
	}
	return dsn + "@" + host + ":" + port + "/" + db + "?sslmode=" + ssl
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
