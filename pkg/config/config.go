package config

import (
	"time"
	_ "time/tzdata"
)

type DB struct {
	Url             string        `envconfig:"URL" required:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
}

type Code struct {
	TTL time.Duration `envconfig:"TTL" default:"30m"`
}

type Smtp struct {
	Host string `envconfig:"HOST"`
	Port int    `envconfig:"PORT" default:"465"`
	User string `envconfig:"USER"`
	Pass string `envconfig:"PASS"`
	From string `envconfig:"FROM" default:"no-reply@unas.org.br"`
	SSL  bool   `envconfig:"SSL" default:"true"`
}

// Admin holds the credentials used to seed the first manager account.
type Admin struct {
	Email    string `envconfig:"USER_EMAIL" default:"admin@unas.org.br"`
	Password string `envconfig:"USER_PASSWORD" default:"123456"`
	Username string `envconfig:"USERNAME" default:"adminunas"`
}

type Redis struct {
	URL         string        `envconfig:"URL"`
	KeyPrefix   string        `envconfig:"KEY_PREFIX" default:"unas:ratelimit:"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`

	// Failed security code submissions allowed per client and window.
	CodeAttempts int           `envconfig:"CODE_ATTEMPTS" default:"5"`
	CodeWindow   time.Duration `envconfig:"CODE_WINDOW" default:"15m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[unas]"`
}

type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`

	// IPs or CIDRs of reverse proxies whose X-Forwarded-For is believed.
	// Empty means the peer address is the client.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Name      string     `envconfig:"APP_NAME" default:"UNAS"`
	URL       string     `envconfig:"APP_URL" default:"http://localhost:3000"`
	Timezone  string     `envconfig:"APP_TIMEZONE" default:"America/Sao_Paulo"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	Code      *Code      `envconfig:"CODE"`
	Smtp      *Smtp      `envconfig:"SMTP"`
	Admin     *Admin     `envconfig:"ADMIN"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}

// IsProduction reports whether the admin bootstrap and JSON logging apply.
func (a *App) IsProduction() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Location resolves the configured timezone, falling back to UTC.
func (a *App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
