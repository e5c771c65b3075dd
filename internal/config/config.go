package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig contains token signing and demo-identity settings.
type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret"`
	AccessTTLMinutes  int    `mapstructure:"access_ttl_minutes"`
	DemoAdminEmail    string `mapstructure:"demo_admin_email"`
	DemoAdminPassword string `mapstructure:"demo_admin_password"`
	DemoAdminName     string `mapstructure:"demo_admin_name"`
}

// StorageConfig selects the slot backend holding persisted collections.
// Driver 为 file 时数据落在 Dir 下的单个 JSON 文件；redis 时为单个 Key。
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// UploadConfig bounds the submission endpoint.
type UploadConfig struct {
	MaxBytes  int64  `mapstructure:"max_bytes"`
	ClamdAddr string `mapstructure:"clamd_addr"`
}

// ArchiveConfig contains connection options for the optional MinIO archive of raw uploads.
type ArchiveConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// SeedConfig toggles demo-data seeding at startup.
type SeedConfig struct {
	Demo bool `mapstructure:"demo"`
}

// Addr builds the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("auth.jwt_secret", "vectorhire-demo-secret")
	v.SetDefault("auth.access_ttl_minutes", 60)
	v.SetDefault("auth.demo_admin_email", "admin@demo.com")
	v.SetDefault("auth.demo_admin_password", "Admin@123")
	v.SetDefault("auth.demo_admin_name", "Hashim")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("upload.max_bytes", 10*1024*1024)
	v.SetDefault("upload.clamd_addr", "")
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.endpoint", "localhost:9000")
	v.SetDefault("archive.use_ssl", false)
	v.SetDefault("archive.bucket", "applications")
	v.SetDefault("seed.demo", true)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                  "API_PORT",
		"auth.jwt_secret":           "JWT_SECRET",
		"auth.access_ttl_minutes":   "ACCESS_TTL_MINUTES",
		"auth.demo_admin_email":     "DEMO_ADMIN_EMAIL",
		"auth.demo_admin_password":  "DEMO_ADMIN_PASSWORD",
		"auth.demo_admin_name":      "DEMO_ADMIN_NAME",
		"storage.driver":            "STORAGE_DRIVER",
		"storage.dir":               "STORAGE_DIR",
		"redis.host":                "REDIS_HOST",
		"redis.port":                "REDIS_PORT",
		"upload.max_bytes":          "UPLOAD_MAX_BYTES",
		"upload.clamd_addr":         "CLAMD_ADDR",
		"archive.enabled":           "ARCHIVE_ENABLED",
		"archive.endpoint":          "MINIO_ENDPOINT",
		"archive.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"archive.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"archive.use_ssl":           "MINIO_USE_SSL",
		"archive.bucket":            "MINIO_BUCKET",
		"seed.demo":                 "SEED_DEMO",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if cfg.Auth.AccessTTLMinutes <= 0 {
		return errors.New("access token ttl must be positive")
	}
	if cfg.Auth.DemoAdminEmail == "" {
		return errors.New("demo admin email is required")
	}
	if cfg.Auth.DemoAdminPassword == "" {
		return errors.New("demo admin password is required")
	}
	switch cfg.Storage.Driver {
	case "file":
		if cfg.Storage.Dir == "" {
			return errors.New("storage dir is required for the file driver")
		}
	case "redis":
		if cfg.Redis.Host == "" {
			return errors.New("redis host is required")
		}
		if cfg.Redis.Port <= 0 {
			return errors.New("redis port must be positive")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Upload.MaxBytes <= 0 {
		return errors.New("upload max bytes must be positive")
	}
	if cfg.Archive.Enabled {
		if cfg.Archive.Endpoint == "" {
			return errors.New("minio endpoint is required")
		}
		if cfg.Archive.AccessKeyID == "" {
			return errors.New("minio access key id is required")
		}
		if cfg.Archive.SecretAccessKey == "" {
			return errors.New("minio secret access key is required")
		}
		if cfg.Archive.Bucket == "" {
			return errors.New("minio bucket is required")
		}
	}
	return nil
}
