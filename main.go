package main

import (
	"log"
	"time"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/auth"
	"gaon/backend/internal/commands"
	"gaon/backend/internal/pkg/config"
	"gaon/backend/internal/pkg/repository/postgresql"
	"gaon/backend/internal/router"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalln("config:", err)
	}

	postgresDB := postgresql.NewDatabase(
		cfg.DBUsername,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DisableTLS,
	)
	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	authenticator, err := auth.NewAuth(cfg.JWTKeyPath)
	if err != nil {
		log.Fatalln("auth:", err)
	}

	location, err := time.LoadLocation(cfg.FacilityTimezone)
	if err != nil {
		log.Fatalln("facility timezone:", err)
	}

	r := router.NewRouter(
		web.NewApp(),
		postgresDB,
		redisDB,
		cfg.ServerPort,
		authenticator,
		location,
		cfg.SweepTime,
	)

	if err = r.Init(); err != nil {
		log.Fatalln("server:", err)
	}
}
