package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/postdigester/donation-backend/pkg/logger"
)

// DefaultCORSOrigins are the front-end origins allowed to call the API with credentials.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"https://post-digester-donation-frontend.vercel.app",
}

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	MinIO     MinIOConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Enabled reports whether an object store endpoint was configured.
func (m MinIOConfig) Enabled() bool { return m.Endpoint != "" }

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MONGODB_DATABASE", "post-digester-donation")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("EXPIRES_IN", "1d")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MINIO_BUCKET", "donation-images")
	v.SetDefault("LOG_LEVEL", "info")

	uri := v.GetString("MONGODB_URL")
	if uri == "" {
		return nil, fmt.Errorf("environment variable MONGODB_URL is required")
	}

	ttl, err := ParseExpiresIn(v.GetString("EXPIRES_IN"))
	if err != nil {
		return nil, fmt.Errorf("EXPIRES_IN: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      uri,
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			ExpiresIn: ttl,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), DefaultCORSOrigins...)
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

var expiresInPattern = regexp.MustCompile(`^(-?(?:\d+)?\.?\d+) *([a-z]+)?$`)

// expiresInUnits maps every unit spelling jsonwebtoken deployments use onto
// the short units go-str2duration understands. Years are handled separately.
var expiresInUnits = map[string]string{
	"milliseconds": "ms", "millisecond": "ms", "msecs": "ms", "msec": "ms", "ms": "ms",
	"seconds": "s", "second": "s", "secs": "s", "sec": "s", "s": "s",
	"minutes": "m", "minute": "m", "mins": "m", "min": "m", "m": "m",
	"hours": "h", "hour": "h", "hrs": "h", "hr": "h", "h": "h",
	"days": "d", "day": "d", "d": "d",
	"weeks": "w", "week": "w", "w": "w",
	"years": "y", "year": "y", "yrs": "y", "yr": "y", "y": "y",
}

const year = time.Duration(365.25 * float64(24*time.Hour))

// ParseExpiresIn reads a token lifetime in the format jsonwebtoken accepts:
// a number followed by an optional space and a unit (ms, s, m, h, d, w, y or
// their long and plural names), e.g. "90m", "7d", "2 days", "1.5h", "1y".
// A bare number is read as seconds, not milliseconds.
func ParseExpiresIn(s string) (time.Duration, error) {
	m := expiresInPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}
	num, unit := m[1], m[2]
	if unit == "" {
		unit = "s"
	}
	short, ok := expiresInUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in duration %q", unit, s)
	}

	var d time.Duration
	if short == "y" {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %q", s)
		}
		d = time.Duration(n * float64(year))
	} else {
		var err error
		d, err = str2duration.ParseDuration(num + short)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", s)
	}
	return d, nil
}
