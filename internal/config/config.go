package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type JWTCfg struct {
	Secret string `yaml:"secret"`
}

type AppCfg struct {
	Env        string `yaml:"env"`
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	JWT        JWTCfg `yaml:"jwt"`
}

type MongoCfg struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type SecurityCfg struct {
	// OTPCode is the fixed system-wide code accepted until a real OTP
	// provider is integrated.
	OTPCode string `yaml:"otp_code"`
}

type Config struct {
	App      AppCfg      `yaml:"app"`
	Mongo    MongoCfg    `yaml:"mongo"`
	Security SecurityCfg `yaml:"security"`
}

// Load reads the optional yaml file, applies environment overrides and
// validates the result. MONGO_URI and JWT_SECRET are required.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	override("PORT", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	})
	override("CORS_ORIGIN", func(v string) { cfg.App.CORSOrigin = v })
	override("JWT_SECRET", func(v string) { cfg.App.JWT.Secret = v })
	override("MONGO_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("OTP_CODE", func(v string) { cfg.Security.OTPCode = v })

	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.CORSOrigin == "" {
		cfg.App.CORSOrigin = "http://localhost:5173"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "onboarding"
	}
	if cfg.Security.OTPCode == "" {
		cfg.Security.OTPCode = "123456"
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.App.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}
