package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campusview/internal/session"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.4.0"

const defaultAPIURL = "http://34.219.195.123"

type lookupFunc func(key string) (string, bool)

// loadConfig reads the environment, falling back to defaults for anything
// unset or malformed.
func loadConfig(lookup lookupFunc) config {
	get := func(key, def string) string {
		if val, ok := lookup(key); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
		return def
	}

	var timeout time.Duration
	if val, ok := lookup("CAMPUSVIEW_HTTP_TIMEOUT"); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			timeout = d
		} else {
			fmt.Fprintln(os.Stderr, "Invalid CAMPUSVIEW_HTTP_TIMEOUT, requests will not time out")
		}
	}

	return config{
		apiURL:      get("CAMPUSVIEW_API_URL", defaultAPIURL),
		storagePath: get("CAMPUSVIEW_STORAGE_PATH", defaultStoragePath(lookup)),
		httpTimeout: timeout,
		emailDomain: get("CAMPUSVIEW_EMAIL_DOMAIN", session.DefaultEmailDomain),
		env:         get("ENV", "production"),
		logLevel:    get("LOG_LEVEL", "info"),
		push: pushConfig{
			deviceToken: get("EXPO_PUSH_TOKEN", ""),
		},
		media: mediaConfig{
			cloudinaryURL: get("CLOUDINARY_URL", ""),
		},
		handleSalt: get("CAMPUSVIEW_HANDLE_SALT", "campusview"),
	}
}

func defaultStoragePath(lookup lookupFunc) string {
	dir, ok := lookup("XDG_CONFIG_HOME")
	if !ok || dir == "" {
		home, _ := lookup("HOME")
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "campusview", "storage.json")
}

// NewLogger creates a zap logger writing to stderr so stdout stays clean
// for command output. Colour is only used in development.
func NewLogger(env, level string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if env == "development" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		lvl,
	)
	return zap.New(core).Sugar(), nil
}

func main() {
	// a .env file is optional for a client
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error loading .env file:", err)
	}

	cfg := loadConfig(os.LookupEnv)

	logger, err := NewLogger(cfg.env, cfg.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := newApplication(cfg, logger, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		logger.Fatal(err)
	}

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
