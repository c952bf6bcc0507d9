package app

import (
	"strings"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/utils"
)

type Config struct {
	Env          string
	Port         string
	ServiceName  string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	env := utils.GetEnv("APP_ENV", "development", log)
	port := utils.GetEnv("PORT", "8080", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "linguabridge", log)

	var origins []string
	if raw := strings.TrimSpace(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Env:          env,
		Port:         port,
		ServiceName:  serviceName,
		AllowOrigins: origins,
	}
}
