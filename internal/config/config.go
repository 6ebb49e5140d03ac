package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	BucketAvatars string
	PublicURL     string
	UseSSL        bool
	Region        string
	MaxAvatarSize int64
}

// SessionConfig controls where browser sessions are kept.
// Medium is "memory", "redis" or "none".
type SessionConfig struct {
	Medium       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
	IdleTimeout  time.Duration
	SweepSpec    string
}

// DelayConfig holds the artificial latency of each mock backend call.
type DelayConfig struct {
	Login          time.Duration
	Register       time.Duration
	Logout         time.Duration
	Refresh        time.Duration
	UpdateProfile  time.Duration
	ForgotPassword time.Duration
	ResetPassword  time.Duration
	ChangePassword time.Duration
}

type MockConfig struct {
	Delays        DelayConfig
	AvatarBaseURL string
}

// RepositoryConfig selects the user list backend: "memory" or "postgres".
type RepositoryConfig struct {
	Driver string
	Seed   bool
}

type QueueConfig struct {
	Enabled       bool
	Stream        string
	Group         string
	Consumer      string
	ClaimInterval time.Duration
	// ResetURL is the page password reset mails link to.
	ResetURL      string
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Session          SessionConfig
	Mock             MockConfig
	Repository       RepositoryConfig
	Queue            QueueConfig
	Logging          LoggingConfig
	AllowCORSOrigins []string
}

// NeedsRedis reports whether any enabled component talks to redis.
func (c *AppConfig) NeedsRedis() bool {
	return c.Session.Medium == "redis" || c.Queue.Enabled
}

var envKeyReplacer = strings.NewReplacer(".", "_")

func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("DOCCONNECT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Session.Medium {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("session.medium: unknown medium %q", c.Session.Medium)
	}
	switch c.Repository.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("repository.driver: unknown driver %q", c.Repository.Driver)
	}
	if c.Repository.Driver == "postgres" && c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required for the postgres repository")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 10)
	v.SetDefault("postgres.maxidle", 2)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucketavatars", "docconnect-avatars")
	v.SetDefault("storage.publicurl", "")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.maxavatarsize", 2<<20)

	v.SetDefault("session.medium", "memory")
	v.SetDefault("session.ttl", "720h") // 30 days
	v.SetDefault("session.cookiename", "doct_browser")
	v.SetDefault("session.cookiesecure", false)
	v.SetDefault("session.idletimeout", "30m")
	v.SetDefault("session.sweepspec", "0 * * * * *")

	v.SetDefault("mock.delays.login", "1s")
	v.SetDefault("mock.delays.register", "1500ms")
	v.SetDefault("mock.delays.logout", "500ms")
	v.SetDefault("mock.delays.refresh", "500ms")
	v.SetDefault("mock.delays.updateprofile", "1s")
	v.SetDefault("mock.delays.forgotpassword", "1s")
	v.SetDefault("mock.delays.resetpassword", "1s")
	v.SetDefault("mock.delays.changepassword", "1s")
	v.SetDefault("mock.avatarbaseurl", "https://placehold.co/150x150")

	v.SetDefault("repository.driver", "memory")
	v.SetDefault("repository.seed", true)

	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.stream", "doct:mail")
	v.SetDefault("queue.group", "mail-workers")
	v.SetDefault("queue.consumer", "worker-1")
	v.SetDefault("queue.claiminterval", "30s")
	v.SetDefault("queue.reseturl", "http://localhost:8080/auth/reset-password")

	v.SetDefault("logging.level", "")

	v.SetDefault("allowcorsorigins", []string{})
}
