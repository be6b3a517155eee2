package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load applies the first env file found among names, searched upwards from
// the working directory, and then reads the process environment. Variables
// already set in the environment win over the file.
func Load(names ...string) (*App, error) {
	if len(names) == 0 {
		names = []string{".env"}
	}
	if path := loadEnvFile(names); path == "" {
		slog.Default().Info("No environment file found, using process environment")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.logSummary(slog.Default())
	return &cfg, nil
}

func loadEnvFile(names []string) string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range names {
		path, err := FindUp(wd, name)
		if err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Default().Error("Failed to load environment file", "path", path, "error", err)
			continue
		}
		slog.Default().Info("Loaded environment file", "path", path)
		return path
	}
	return ""
}

func (a *App) logSummary(logger *slog.Logger) {
	logger.Info("App config loaded",
		"env", a.Env,
		"address", a.Server.Host,
		"port", a.Server.Port,
		"db", mask(a.DB.Url),
		"jwt_expiry", a.Jwt.Expiry,
		"code_ttl", a.Code.TTL,
		"smtp_host", a.Smtp.Host,
		"smtp_user", mask(a.Smtp.User),
		"rate_limit", a.RateLimit.MaxRequests,
		"rate_limit_window", a.RateLimit.Window,
		"redis", a.Redis.URL != "",
	)
}

// mask keeps the first two and last four characters of a secret.
func mask(s string) string {
	if len(s) <= 6 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-4:]
}
