package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Storage struct {
		Backend          string `mapstructure:"backend"`
		DataPath         string `mapstructure:"data_path"`
		UploadDir        string `mapstructure:"upload_dir"`
		SerializeUpserts bool   `mapstructure:"serialize_upserts"`
	} `mapstructure:"storage"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Log struct {
		Path  string `mapstructure:"path"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"log"`
	Session struct {
		Name   string `mapstructure:"name"`
		Secret string `mapstructure:"secret"`
		Dir    string `mapstructure:"dir"`
		MaxAge int    `mapstructure:"max_age"`
		Secure bool   `mapstructure:"secure"`
	} `mapstructure:"session"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// Load reads config.yaml (from file, or searched in . and ..) and applies
// environment overrides. A missing config file is not an error.
func Load(file string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", "0.0.0.0:5009")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.data_path", "photos.json")
	v.SetDefault("storage.upload_dir", "static/uploads")
	v.SetDefault("storage.serialize_upserts", true)
	v.SetDefault("log.path", "photoportal.log")
	v.SetDefault("log.debug", false)
	v.SetDefault("session.name", "photoportal")
	v.SetDefault("session.secret", "dev-secret-change-me")
	v.SetDefault("session.max_age", 86400)
	v.SetDefault("session.secure", false)
	v.SetDefault("cors.allowed_origins", []string{})

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config error: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config error: %w", err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// explicit bindings
	_ = v.BindEnv("server.addr", "SERVER_ADDR")
	_ = v.BindEnv("storage.backend", "STORAGE_BACKEND")
	_ = v.BindEnv("storage.data_path", "DATA_PATH")
	_ = v.BindEnv("storage.upload_dir", "UPLOAD_DIR")
	_ = v.BindEnv("storage.serialize_upserts", "SERIALIZE_UPSERTS")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("log.path", "LOG_PATH")
	_ = v.BindEnv("log.debug", "LOG_DEBUG")
	_ = v.BindEnv("session.name", "SESSION_NAME")
	_ = v.BindEnv("session.secret", "SESSION_SECRET")
	_ = v.BindEnv("session.dir", "SESSION_DIR")
	_ = v.BindEnv("session.max_age", "SESSION_MAX_AGE")
	_ = v.BindEnv("session.secure", "SESSION_SECURE")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if port := v.GetString("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case "file", "":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("config error: database.url/DATABASE_URL required for postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Storage.UploadDir == "" {
		return errors.New("config error: storage.upload_dir required")
	}
	return nil
}
