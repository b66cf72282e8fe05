package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - backend-specific connection settings are checked by Validate for the selected STORE_BACKEND
// -----------------------------------------------------------------------------

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	Backend             string        `envconfig:"STORE_BACKEND" default:"postgres"`
	TxMaxAttempts       int           `envconfig:"STORE_TX_MAX_ATTEMPTS" default:"3"`
	TxBaseDelay         time.Duration `envconfig:"STORE_TX_BASE_DELAY" default:"50ms"`
	BreakerMaxRequests  uint32        `envconfig:"STORE_BREAKER_MAX_REQUESTS" default:"3"`
	BreakerInterval     time.Duration `envconfig:"STORE_BREAKER_INTERVAL" default:"15s"`
	BreakerTimeout      time.Duration `envconfig:"STORE_BREAKER_TIMEOUT" default:"30s"`
	BreakerMinRequests  uint32        `envconfig:"STORE_BREAKER_MIN_REQUESTS" default:"5"`
	BreakerFailureRatio float64       `envconfig:"STORE_BREAKER_FAILURE_RATIO" default:"0.6"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Bucharest"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type MongoConfig struct {
	URI      string        `envconfig:"MONGO_URI"`
	Database string        `envconfig:"MONGO_DATABASE" default:"commerce"`
	Timeout  time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

// Without a URL idempotency keys are kept in process memory.
type RedisConfig struct {
	URL            string        `envconfig:"REDIS_URL"`
	IdempotencyTTL time.Duration `envconfig:"REDIS_IDEMPOTENCY_TTL" default:"24h"`
}

// Without brokers notifications are only logged.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"notifications"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Bucharest"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"7200"` // 2*60*60
}

type JWTConfig struct {
	Secret              string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"1h"`
}

type RateLimitConfig struct {
	PerMinute int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	Burst     int           `envconfig:"RATE_LIMIT_BURST" default:"30"`
	IdleTTL   time.Duration `envconfig:"RATE_LIMIT_IDLE_TTL" default:"10m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case BackendPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for the %s backend", BackendPostgres)
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s backend", BackendMongo)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Store.TxMaxAttempts < 1 {
		return fmt.Errorf("STORE_TX_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func LoadConfig() (Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Backend:             BackendMemory,
			TxMaxAttempts:       3,
			TxBaseDelay:         time.Millisecond,
			BreakerMaxRequests:  3,
			BreakerInterval:     15 * time.Second,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.6,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Bucharest",
			MaxConns: 10,
		},
		Redis: RedisConfig{
			IdempotencyTTL: time.Hour,
		},
		Kafka: KafkaConfig{
			Topic: "notifications",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Bucharest",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 7200,
		},
		JWT: JWTConfig{
			Secret:              "test-secret-key-for-jwt-signing",
			AccessTokenDuration: "1h",
		},
		RateLimit: RateLimitConfig{
			PerMinute: 6000,
			Burst:     1000,
		},
	}
}
