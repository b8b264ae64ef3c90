package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

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

	// RedisURL is the connection URL of the order store.
	RedisURL string `mapstructure:"REDIS_URL" required:"true"`

	// Orders holds the order code generator settings.
	Orders OrdersConfig `mapstructure:",squash"`

	// Tracking holds the tracking view settings.
	Tracking TrackingConfig `mapstructure:",squash"`

	// LockerBridgeURL is the pickup-locker bridge endpoint. Empty disables
	// the bridge and unlocks are only logged.
	LockerBridgeURL string `mapstructure:"LOCKER_BRIDGE_URL"`
}

// OrdersConfig holds the order code generator settings.
type OrdersConfig struct {
	// CodeLength is the width of the numeric order code.
	CodeLength int `mapstructure:"ORDER_CODE_LENGTH" default:"4"`
	// CodeMaxAttempts bounds the collision retries when drawing a code.
	CodeMaxAttempts int `mapstructure:"ORDER_CODE_MAX_ATTEMPTS" default:"10"`
}

// TrackingConfig holds the tracking view settings. The simulation windows
// are presentation pacing, not kitchen SLAs, which is why they live in
// configuration.
type TrackingConfig struct {
	// PrepWindowSeconds is how long the simulated progress stays in PREPARING.
	PrepWindowSeconds int `mapstructure:"TRACKING_PREP_WINDOW_SECONDS" default:"20"`
	// ReadyWindowSeconds is when the simulated progress reaches DELIVERED.
	ReadyWindowSeconds int `mapstructure:"TRACKING_READY_WINDOW_SECONDS" default:"60"`
	// PollSeconds is the snapshot refresh interval of the tracking watcher.
	PollSeconds int `mapstructure:"TRACKING_POLL_SECONDS" default:"4"`
}

// PrepWindow returns the PREPARING simulation window as a duration.
func (c TrackingConfig) PrepWindow() time.Duration {
	return time.Duration(c.PrepWindowSeconds) * time.Second
}

// ReadyWindow returns the DELIVERED simulation threshold as a duration.
func (c TrackingConfig) ReadyWindow() time.Duration {
	return time.Duration(c.ReadyWindowSeconds) * time.Second
}

// PollInterval returns the watcher poll interval as a duration.
func (c TrackingConfig) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
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
