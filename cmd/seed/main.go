package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/database"
	"taskhub/internal/domain"
	"taskhub/internal/repository"
)

// Seeds a demo user with a few tasks for local development.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db, &domain.User{}, &domain.RefreshToken{}, &domain.Task{}); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	if exists, err := userRepo.ExistsByUsername(ctx, "demo"); err != nil {
		log.Fatalf("seed check failed: %v", err)
	} else if exists {
		log.Println("demo user already present, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	demo := &domain.User{
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		FirstName:    "Demo",
		LastName:     "User",
		Gender:       domain.GenderOther,
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		log.Fatalf("create demo user: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	seedTasks := []domain.Task{
		{UserID: demo.ID, Title: "Buy groceries", Description: "Milk, eggs, bread", Type: "errand"},
		{UserID: demo.ID, Title: "Write weekly report", Description: "Summarize sprint progress", Type: "work"},
		{UserID: demo.ID, Title: "Book dentist appointment", Type: "personal", IsCompleted: true},
	}
	for i := range seedTasks {
		if err := taskRepo.Create(ctx, &seedTasks[i]); err != nil {
			log.Fatalf("create task %q: %v", seedTasks[i].Title, err)
		}
	}

	log.Printf("seeded demo user (username=demo password=demo1234) with %d tasks", len(seedTasks))
}
