// Package config loads the application configuration from an optional JSON
// config file, environment variables and command-line flags, in increasing
// order of priority, and validates the result.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings of the service.
type Config struct {
	RunAddr             string        `env:"SERVER_ADDRESS" json:"server_address" validate:"hostname_port"`
	LogLevel            string        `env:"LOG_LEVEL" json:"log_level" validate:"loglevel"`
	DBFileName          string        `env:"FILE_STORAGE_PATH" json:"file_storage_path" validate:"filepath"`
	DatabaseDSN         string        `env:"DATABASE_DSN" json:"database_dsn"`
	DBConnectionTimeout time.Duration `env:"DB_CONNECTION_TIMEOUT" json:"db_connection_timeout"`
	MigrationsDir       string        `env:"MIGRATIONS_DIR" json:"migrations_dir"`
	AssetsDir           string        `env:"ASSETS_DIR" json:"assets_dir" validate:"filepath"`
	CatalogAPIBase      string        `env:"CATALOG_API_BASE" json:"catalog_api_base" validate:"url"`
	CatalogSearchLimit  int           `env:"CATALOG_SEARCH_LIMIT" json:"catalog_search_limit"`
	CatalogTimeout      time.Duration `env:"CATALOG_TIMEOUT" json:"catalog_timeout"`
}

var defaultConfig = Config{
	RunAddr:             ":3000",
	LogLevel:            "info",
	DBFileName:          "",
	DatabaseDSN:         "",
	DBConnectionTimeout: 10 * time.Second,
	MigrationsDir:       "cmd/songhub/migrations",
	AssetsDir:           "public",
	CatalogAPIBase:      "https://itunes.apple.com",
	CatalogSearchLimit:  3,
	CatalogTimeout:      10 * time.Second,
}

func applyDefaults(values *Config, defaults Config) {
	*values = defaults
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (values *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(values)
}

func (values *Config) applyJSONFile(fileName string) error {
	if fileName == "" {
		return nil
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, values)
}

func (values *Config) applyEnv() error {
	var valuesFromEnv Config
	if err := env.Parse(&valuesFromEnv); err != nil {
		return err
	}

	if valuesFromEnv.RunAddr != "" {
		values.RunAddr = valuesFromEnv.RunAddr
	}
	if valuesFromEnv.LogLevel != "" {
		values.LogLevel = valuesFromEnv.LogLevel
	}
	if valuesFromEnv.DBFileName != "" {
		values.DBFileName = valuesFromEnv.DBFileName
	}
	if valuesFromEnv.DatabaseDSN != "" {
		values.DatabaseDSN = valuesFromEnv.DatabaseDSN
	}
	if valuesFromEnv.DBConnectionTimeout != 0 {
		values.DBConnectionTimeout = valuesFromEnv.DBConnectionTimeout
	}
	if valuesFromEnv.MigrationsDir != "" {
		values.MigrationsDir = valuesFromEnv.MigrationsDir
	}
	if valuesFromEnv.AssetsDir != "" {
		values.AssetsDir = valuesFromEnv.AssetsDir
	}
	if valuesFromEnv.CatalogAPIBase != "" {
		values.CatalogAPIBase = valuesFromEnv.CatalogAPIBase
	}
	if valuesFromEnv.CatalogSearchLimit != 0 {
		values.CatalogSearchLimit = valuesFromEnv.CatalogSearchLimit
	}
	if valuesFromEnv.CatalogTimeout != 0 {
		values.CatalogTimeout = valuesFromEnv.CatalogTimeout
	}

	return nil
}

func (values *Config) applyFlags(args []string) error {
	flags := flag.NewFlagSet("songhub", flag.ContinueOnError)

	flags.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
	flags.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
	flags.StringVar(&values.DBFileName, "f", values.DBFileName, "JSON file name with database")
	flags.StringVar(&values.DatabaseDSN, "d", values.DatabaseDSN, "a string with the database connection details")
	flags.StringVar(&values.MigrationsDir, "m", values.MigrationsDir, "directory with goose migrations")
	flags.StringVar(&values.AssetsDir, "s", values.AssetsDir, "directory with static assets and templates")
	flags.StringVar(&values.CatalogAPIBase, "catalog", values.CatalogAPIBase, "base URL of the music catalog API")
	flags.String("c", "", "path to a JSON config file (also CONFIG env)")

	return flags.Parse(args)
}

func configFileName(args []string, disableFlagsParsing bool) string {
	fileName := os.Getenv("CONFIG")

	if disableFlagsParsing {
		return fileName
	}

	// The config file flag has to be known before the rest of the flags
	// are applied over its contents.
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-c" {
			fileName = args[i+1]
		}
	}

	return fileName
}

// InitOption configures the behavior of New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing disables command-line flag parsing,
// which is mainly useful in tests.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// New builds the configuration. Priority, lowest to highest:
// defaults, JSON config file, environment variables, command-line flags.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}
	applyDefaults(values, defaultConfig)

	args := os.Args[1:]

	if err := values.applyJSONFile(configFileName(args, options.disableFlagsParsing)); err != nil {
		return nil, err
	}

	if err := values.applyEnv(); err != nil {
		return nil, err
	}

	if !options.disableFlagsParsing {
		if err := values.applyFlags(args); err != nil {
			return nil, err
		}
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
