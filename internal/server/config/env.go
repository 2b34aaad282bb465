package config

import "os"

// parseEnv overlays Config fields from environment variables. Only
// variables that are actually set override the current values, so the
// JSON overlay and defaults survive an empty environment.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("INKPAD_ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("INKPAD_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("INKPAD_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("INKPAD_S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("INKPAD_S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("INKPAD_S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("INKPAD_S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("INKPAD_S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}
