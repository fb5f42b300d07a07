package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/benchboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"BENCHBOARD_CONFIG",
	"BENCHBOARD_ADDR",
	"BENCHBOARD_LOG_LEVEL",
	"BENCHBOARD_MAX_LIMIT",
	"BENCHBOARD_STORAGE__ADAPTER",
	"BENCHBOARD_STORAGE__TABLE",
	"BENCHBOARD_STORAGE__REDIS__ADDR",
	"BENCHBOARD_STORAGE__REDIS__DB",
	"BENCHBOARD_STORAGE__SQLITE__PATH",
	"BENCHBOARD_IDENTITY__LOOKUP",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Storage.Adapter, convey.ShouldEqual, config.AdapterMemory)
				convey.So(cfg.Storage.Redis.Addr, convey.ShouldEqual, "127.0.0.1:6379")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("BENCHBOARD_ADDR", ":8080")
			_ = os.Setenv("BENCHBOARD_MAX_LIMIT", "25")
			_ = os.Setenv("BENCHBOARD_STORAGE__ADAPTER", "redis")
			_ = os.Setenv("BENCHBOARD_STORAGE__REDIS__ADDR", "cache:6380")
			_ = os.Setenv("BENCHBOARD_STORAGE__REDIS__DB", "3")
			_ = os.Setenv("BENCHBOARD_IDENTITY__LOOKUP", "none")

			cfg, err := config.Load(ctx)

			convey.Convey("Then nested keys override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 25)
				convey.So(cfg.Storage.Adapter, convey.ShouldEqual, config.AdapterRedis)
				convey.So(cfg.Storage.Redis.Addr, convey.ShouldEqual, "cache:6380")
				convey.So(cfg.Storage.Redis.DB, convey.ShouldEqual, 3)
				convey.So(cfg.Storage.Redis.Prefix, convey.ShouldEqual, "benchboard")
				convey.So(cfg.Identity.Lookup, convey.ShouldEqual, config.LookupNone)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
log_level: debug
storage:
  adapter: sqlite
  table: runs
  sqlite:
    path: /tmp/bench.db
identity:
  lookup: static
  names:
    alice: Alice Liddell
`)
			_ = os.Setenv("BENCHBOARD_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Storage.Adapter, convey.ShouldEqual, config.AdapterSQLite)
				convey.So(cfg.Storage.Table, convey.ShouldEqual, "runs")
				convey.So(cfg.Storage.SQLite.Path, convey.ShouldEqual, "/tmp/bench.db")
				convey.So(cfg.Identity.Lookup, convey.ShouldEqual, config.LookupStatic)
				convey.So(cfg.Identity.Names["alice"], convey.ShouldEqual, "Alice Liddell")
			})

			convey.Convey("Then env still wins over the file", func() {
				_ = os.Setenv("BENCHBOARD_STORAGE__TABLE", "override")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Storage.Table, convey.ShouldEqual, "override")
			})
		})

		convey.Convey("When the path is passed explicitly", func() {
			path := writeConfigFile(t, "max_limit: 25\n")

			cfg, err := config.LoadFrom(ctx, path)

			convey.Convey("Then the file is read without BENCHBOARD_CONFIG", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When a caller changes the defaults", func() {
			toSQLite := config.WithDefaults(func(c *config.Config) { c.Storage.Adapter = config.AdapterSQLite })

			convey.Convey("Then the changed default applies", func() {
				cfg, err := config.Load(ctx, toSQLite)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Storage.Adapter, convey.ShouldEqual, config.AdapterSQLite)
			})

			convey.Convey("Then env still overrides it", func() {
				_ = os.Setenv("BENCHBOARD_STORAGE__ADAPTER", "memory")
				cfg, err := config.Load(ctx, toSQLite)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Storage.Adapter, convey.ShouldEqual, config.AdapterMemory)
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("BENCHBOARD_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("BENCHBOARD_STORAGE__ADAPTER", "mongo")

			_, err := config.Load(ctx)

			convey.Convey("Then an invalid config error is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
