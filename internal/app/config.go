package app

import (
	"github.com/aquademy/coachcore-backend/internal/platform/envutil"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
)

type Config struct {
	ServerAddr string
	// PayBandConfigPath points at the operator-maintained pay policy file.
	// The table is validated at boot; the server refuses to start on an
	// incomplete or malformed policy.
	PayBandConfigPath string
	Environment       string
	Version           string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		ServerAddr:        envutil.GetEnv("SERVER_ADDR", ":8080", log),
		PayBandConfigPath: envutil.GetEnv("PAYBAND_CONFIG_PATH", "config/paybands.yaml", log),
		Environment:       envutil.GetEnv("APP_ENV", "development", log),
		Version:           envutil.GetEnv("APP_VERSION", "dev", log),
	}
}
