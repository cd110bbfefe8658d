package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/itemgallery/backend/internal/flagx"
	"github.com/itemgallery/backend/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which parses both string
// values such as "15m" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr   string         `json:"endpoint_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	TokenFormat    string         `json:"token_format"`
	SingleSession  *bool          `json:"single_session"`
	PasswordScheme string         `json:"password_scheme"`
	PresignExpiry  timex.Duration `json:"presign_expiry"`
	S3RootUser     string         `json:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. Absent keys keep their
// current (default) values. An unreadable or invalid file panics, since
// running with half-applied configuration is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.TokenFormat != "" {
		config.TokenFormat = c.TokenFormat
	}
	if c.SingleSession != nil {
		config.SingleSession = *c.SingleSession
	}
	if c.PasswordScheme != "" {
		config.PasswordScheme = c.PasswordScheme
	}
	if c.PresignExpiry.Duration != 0 {
		config.PresignExpiry = time.Duration(c.PresignExpiry.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
