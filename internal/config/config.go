package config

import (
	"fmt"
	"strings"
	"time"

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

// SessionConfig describes how the admin session cookie is named.
// SecureCookies mirrors a deployment that terminates TLS itself; in that
// mode the host-locked name is expected first.
type SessionConfig struct {
	CookieName       string
	SecureCookieName string
	SecureCookies    bool
}

type UploadsConfig struct {
	Dir          string
	PublicPrefix string
}

// StorageConfig selects where uploaded files physically live. Driver "fs"
// reads from Uploads.Dir, "s3" reads from Bucket on an S3 compatible endpoint.
type StorageConfig struct {
	Driver    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type QueueConfig struct {
	Stream        string
	Group         string
	Consumer      string
	ClaimInterval time.Duration
}

type JobsConfig struct {
	FileAuditSchedule string
}

type TelemetryConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Session          SessionConfig
	Uploads          UploadsConfig
	Storage          StorageConfig
	Queue            QueueConfig
	Jobs             JobsConfig
	Telemetry        TelemetryConfig
	Logging          LoggingConfig
	AllowCORSOrigins []string
}

var envKeyReplacer = strings.NewReplacer(".", "_")

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvPrefix("SOLICITUDES")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	// Deployment flags shared with the public intake service.
	_ = v.BindEnv("session.securecookies", "SOLICITUDES_SESSION_SECURECOOKIES", "USE_HTTPS")
	_ = v.BindEnv("uploads.dir", "SOLICITUDES_UPLOADS_DIR", "UPLOADS_DIR")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

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
	switch c.Storage.Driver {
	case "fs":
		if c.Uploads.Dir == "" {
			return fmt.Errorf("uploads.dir is required for the fs storage driver")
		}
	case "s3":
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
			return fmt.Errorf("storage.endpoint and storage.bucket are required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Session.CookieName == "" || c.Session.SecureCookieName == "" {
		return fmt.Errorf("session cookie names must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("allowcorsorigins", "")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3001)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "0s") // 0 disables; file streams can be long
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 20)
	v.SetDefault("postgres.maxidle", 5)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.cookiename", "sid")
	v.SetDefault("session.securecookiename", "__Host-sid")
	v.SetDefault("session.securecookies", false)

	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.publicprefix", "/uploads")

	v.SetDefault("storage.driver", "fs")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucket", "solicitudes-uploads")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("queue.stream", "solicitudes:tasks")
	v.SetDefault("queue.group", "solicitudes-workers")
	v.SetDefault("queue.consumer", "worker-1")
	v.SetDefault("queue.claiminterval", "30s")

	v.SetDefault("jobs.fileauditschedule", "0 0 3 * * *")

	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.servicename", "solicitudes-admin-api")

	v.SetDefault("logging.level", "")
}
