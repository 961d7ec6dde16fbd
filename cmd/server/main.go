package main

import (
	"log"

	"anoa.com/bookloop/internal/config"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/server"
	"anoa.com/bookloop/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting and live notifications disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Book{},
		&model.Rating{},
		&model.Favorite{},
		&model.BookStatus{},
		&model.Review{},
		&model.PointsAccount{},
		&model.PointsHistory{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.ReadingStreak{},
		&model.Readlist{},
		&model.ReadlistItem{},
		&model.ReadingChallenge{},
		&model.UserChallenge{},
		&model.Notification{},
	)
}
