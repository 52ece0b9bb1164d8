package config

import (
	"reflect"
	"strings"

	"p13n-sync/core/database"
	"p13n-sync/core/logger"
	"p13n-sync/core/recommend"
	"p13n-sync/core/server"
	"p13n-sync/core/storage"
	"p13n-sync/feature/content/cms"
	"p13n-sync/feature/content/thron"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is constructed once per invocation and passed explicitly to whichever
// component needs it; there is no implicit global cache.
type Config struct {
	// Server holds configuration for the admin HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the staging object store.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the content/profile database.
	Database database.Config `mapstructure:"database"`
	// CMS holds configuration for the news CMS source.
	CMS cms.Config `mapstructure:"cms"`
	// Thron holds configuration for the video platform source.
	Thron thron.Config `mapstructure:"thron"`
	// Recommend holds configuration for the recommendation dataset service.
	Recommend recommend.Config `mapstructure:"recommend"`
}

// Load loads configuration from environment variables and a .env file.
func Load(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CMS_ENDPOINT -> cms.endpoint)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
