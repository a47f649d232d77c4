package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig. read ./data/config.yaml, every key can be overridden by an environment variable with the same name.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaultConfig()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// env + defaults only
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetDefaultConfig() {
	viper.SetDefault("GEOMETRY_SOURCE", "./data/indoor.geojson")
	viper.SetDefault("FLOOR_LEVEL", "")
	viper.SetDefault("COORDINATE_PRECISION", -1) // -1: exact coordinate identity
	viper.SetDefault("DISTANCE_METRIC", "euclidean")
	viper.SetDefault("ROUTE_CACHE_SIZE", 1<<14)
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("WAYPOINT_SEARCH_RADIUS", 0.05) // km
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("ALLOW_SOURCE_OVERRIDE", false)
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("PROXY_PORT", 6767)
}
