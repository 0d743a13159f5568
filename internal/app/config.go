package app

import (
	"time"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	ServiceName    string
	Environment    string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 300, log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLMinutes) * time.Minute,
		ServiceName:    utils.GetEnv("SERVICE_NAME", "cerebra-backend", log),
		Environment:    utils.GetEnv("ENVIRONMENT", "development", log),
	}
}
