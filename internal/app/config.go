package app

import (
	"time"

	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/utils"
)

type Config struct {
	JWTSecretKey     string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BusDriver        string
	RulesPath        string
	SeedPath         string
	RolloverInterval time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	busDriver := utils.GetEnv("BUS_DRIVER", "memory", log)
	rulesPath := utils.GetEnv("RULES_PATH", "", log)
	seedPath := utils.GetEnv("SEED_PATH", "", log)
	rolloverSeconds := utils.GetEnvAsInt("ROLLOVER_INTERVAL_SECONDS", 300, log)
	return Config{
		JWTSecretKey:     jwtSecretKey,
		AccessTokenTTL:   time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:  time.Duration(refreshTokenTTLSeconds) * time.Second,
		BusDriver:        busDriver,
		RulesPath:        rulesPath,
		SeedPath:         seedPath,
		RolloverInterval: time.Duration(rolloverSeconds) * time.Second,
	}
}
