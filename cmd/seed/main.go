package main

import (
	"context"

	"github.com/rafvai/DietShopper/internal/app/dsn"
	"github.com/rafvai/DietShopper/internal/app/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	repo, err := repository.New(dsn.Dialector(), false)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		log.Fatalf("cant migrate db: %v", err)
	}

	res, err := repo.Seed(context.Background())
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.WithFields(log.Fields{
		"days":        res.Days,
		"meal_types":  res.MealTypes,
		"foods":       res.Foods,
		"substitutes": res.Substitutes,
	}).Info("seed complete")
}
