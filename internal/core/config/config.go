package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// RedisURL is the connection URL for the Redis store.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Catalog holds the product catalog API configuration.
	Catalog CatalogConfig `mapstructure:",squash"`

	// Optimizer holds the external route optimizer configuration.
	Optimizer OptimizerConfig `mapstructure:",squash"`

	// Dispatch holds the dispatch engine tuning parameters.
	Dispatch DispatchConfig `mapstructure:",squash"`
}

// CatalogConfig holds the connection details for the product catalog service.
type CatalogConfig struct {
	// URL is the base URL of the catalog API.
	URL string `mapstructure:"CATALOG_URL" required:"true"`
	// CacheTTLMinutes is how long catalog lookups stay cached in Redis.
	CacheTTLMinutes int `mapstructure:"CATALOG_CACHE_TTL_MINUTES" default:"60"`
}

// OptimizerConfig holds the connection details for the external route optimizer.
type OptimizerConfig struct {
	// URL is the base URL of the optimization service.
	URL string `mapstructure:"OPTIMIZER_URL" required:"true"`
	// TimeoutSeconds is the per-call timeout for optimizer requests.
	TimeoutSeconds int `mapstructure:"OPTIMIZER_TIMEOUT_SECONDS" default:"60"`
	// MaxRetries is the number of additional attempts after a transport failure.
	MaxRetries int `mapstructure:"OPTIMIZER_MAX_RETRIES" default:"2"`
}

// DispatchConfig holds the tunable parameters of the dispatch engine.
type DispatchConfig struct {
	// DefaultCity is the fallback delivery city when address resolution finds no match.
	DefaultCity string `mapstructure:"DEFAULT_CITY" default:"Bogotá"`
	// CriticalRatio is the probability that an order without an explicit
	// priority is marked critical.
	CriticalRatio float64 `mapstructure:"CRITICAL_RATIO" default:"0.10"`
	// BufferMinutes is the fixed dispatch buffer applied before the first
	// pending stop when ETAs are recomputed.
	BufferMinutes int `mapstructure:"DISPATCH_BUFFER_MINUTES" default:"30"`
	// ServiceTimeMinutes is the average per-stop service time used for ETAs.
	ServiceTimeMinutes int `mapstructure:"SERVICE_TIME_MINUTES" default:"45"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
