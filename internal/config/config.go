// Package config loads the module's tunables from a config file, .env file,
// and environment variables, layering viper and godotenv: defaults, then
// config file, then environment, highest precedence last.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds every tunable pinned to a concrete value (§4.H, §5,
// §6): the Parquet row cap and batching thresholds, the worker-offload
// memory ceiling, the engine/dynamic-library timeouts, and the CSV
// delimiter candidates tried during auto-detection.
type Config struct {
	Parquet  ParquetConfig  `mapstructure:"parquet"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
	CSV      CSVConfig      `mapstructure:"csv"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ParquetConfig mirrors spec §4.H steps 3 and 6.
type ParquetConfig struct {
	MaxRows                    int   `mapstructure:"max_rows"`
	SmallRowCap                int   `mapstructure:"small_row_cap"`
	MediumRowCap               int   `mapstructure:"medium_row_cap"`
	WorkerMemoryThresholdBytes int64 `mapstructure:"worker_memory_threshold_bytes"`
}

// TimeoutsConfig mirrors spec §5 ("Cancellation": "Timeouts apply only to
// engine bootstrap (15s) and dynamic library loads (10s)").
type TimeoutsConfig struct {
	EngineBootstrap  string `mapstructure:"engine_bootstrap"`
	DynamicLibraries string `mapstructure:"dynamic_libraries"`
}

// CSVConfig mirrors the delimiter auto-detection order in package ingest.
type CSVConfig struct {
	DelimiterCandidates []string `mapstructure:"delimiter_candidates"`
}

// CacheConfig mirrors spec §6's `cache` feed option and package transport's
// Redis-backed CacheFetcher.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	TTL     string `mapstructure:"ttl"`
}

// Load reads configuration from defaults, an optional config file (one of a
// fixed set of candidate paths), and the environment (into which an optional
// .env file is loaded first) — in that order of increasing precedence.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables and defaults")
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("IXDATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configPaths := []string{
		"./ixdata.yaml",
		"./ixdata.yml",
		"./config/ixdata.yaml",
		"/etc/ixdata/ixdata.yaml",
	}
	var configLoaded bool
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("config file found but could not be parsed, using environment variables and defaults")
			} else {
				log.Info().Str("file", path).Msg("config file loaded")
				configLoaded = true
			}
			break
		}
	}
	if !configLoaded {
		log.Info().Msg("no config file found, using environment variables and defaults")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	locations := []string{".env", ".env.local"}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			if err := godotenv.Load(location); err != nil {
				return fmt.Errorf("config: loading %s: %w", location, err)
			}
			log.Info().Str("file", location).Msg(".env file loaded")
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

func setDefaults() {
	viper.SetDefault("parquet.max_rows", 10_000_000)
	viper.SetDefault("parquet.small_row_cap", 50_000)
	viper.SetDefault("parquet.medium_row_cap", 100_000)
	viper.SetDefault("parquet.worker_memory_threshold_bytes", 500*1024*1024)

	viper.SetDefault("timeouts.engine_bootstrap", "15s")
	viper.SetDefault("timeouts.dynamic_libraries", "10s")

	viper.SetDefault("csv.delimiter_candidates", []string{",", ";"})

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.ttl", "15m")
}
