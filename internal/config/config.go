package config

import (
	"os"
	"strings"
)

type Config struct {
	Env      string // "development" or "production"; selects logger flavor
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string

	// DatasetKey is the blob-store key of the quiz dataset produced by the
	// extractor.
	DatasetKey   string
	BlobBasePath string

	// AuthSecret signs the anonymous session tokens.
	AuthSecret string

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		Env:          envOr("APP_ENV", "development"),
		HTTPAddr:     envOr("HTTP_ADDR", ":8080"),
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		DatasetKey:   envOr("DATASET_KEY", "questions.json"),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),
		AuthSecret:   envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:    envOr("ADMIN_USER", "admin"),
		// dev-only default; override in any real deployment
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
