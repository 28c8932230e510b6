package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/expertcalc/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "data/experts.yaml")
				convey.So(cfg.MaxOwnedPerRequest, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EXPERTCALC_ADDR", ":8080")
			_ = os.Setenv("EXPERTCALC_DATASET_PATH", "/srv/experts.json")
			_ = os.Setenv("EXPERTCALC_LOG_LEVEL", "debug")
			_ = os.Setenv("EXPERTCALC_RATE_LIMIT_REQUESTS", "10")
			_ = os.Setenv("EXPERTCALC_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/srv/experts.json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.RateLimitRequests, convey.ShouldEqual, 10)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
dataset_path: "fixtures/experts.json"
log_format: json
max_owned_per_request: 50
cors_allowed_origins:
  - https://calc.example
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EXPERTCALC_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "fixtures/experts.json")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxOwnedPerRequest, convey.ShouldEqual, 50)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://calc.example"})
				convey.So(cfg.RateLimitRequests, convey.ShouldEqual, 600) // From defaults
			})
		})

		convey.Convey("When loading an explicit file path", func() {
			tmpFile := createTempConfigFile(`addr: ":7070"`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then the file layer applies without the env var", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "data/experts.yaml")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
dataset_path: "fixtures/experts.json"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EXPERTCALC_CONFIG", tmpFile)
			_ = os.Setenv("EXPERTCALC_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")                           // Overridden by env
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "fixtures/experts.json") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EXPERTCALC_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("EXPERTCALC_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("EXPERTCALC_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty dataset path", func() {
			_ = os.Setenv("EXPERTCALC_DATASET_PATH", " ")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "dataset_path must not be empty")
			})
		})

		convey.Convey("When rate limiting is on without a window", func() {
			_ = os.Setenv("EXPERTCALC_RATE_LIMIT_WINDOW_SECONDS", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("EXPERTCALC_MAX_OWNED_PER_REQUEST", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"EXPERTCALC_CONFIG",
		"EXPERTCALC_ADDR",
		"EXPERTCALC_DATASET_PATH",
		"EXPERTCALC_LOG_LEVEL",
		"EXPERTCALC_LOG_FORMAT",
		"EXPERTCALC_RATE_LIMIT_REQUESTS",
		"EXPERTCALC_RATE_LIMIT_WINDOW_SECONDS",
		"EXPERTCALC_CORS_ALLOWED_ORIGINS",
		"EXPERTCALC_MAX_OWNED_PER_REQUEST",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "expertcalc-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
