package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/AnuraagTripathy/coding-assessment/internal/flagx"
	"github.com/AnuraagTripathy/coding-assessment/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "30m" and integer
// nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AllowedOrigin               string         `json:"allowed_origin"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. When neither flag is set, no file is
// loaded and config is left untouched. An unreadable or invalid file
// panics: a config file that was asked for but cannot be used is a
// startup error.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.AllowedOrigin = c.AllowedOrigin
}
