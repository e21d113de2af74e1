package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kangmariz/barangay-complaint-corner/internal/auth"
	"github.com/kangmariz/barangay-complaint-corner/internal/config"
	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Complaint{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	store := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: seed-admin, purge-resolved, stats")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin seed-admin <full name> <username> <password>")
			os.Exit(1)
		}
		if err := seedAdmin(store, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error seeding admin: %v", err)
		}
		fmt.Printf("Admin account %q created.\n", os.Args[3])
	case "purge-resolved":
		count, err := store.DeleteResolvedComplaints()
		if err != nil {
			log.Fatalf("Error purging resolved complaints: %v", err)
		}
		if count == 0 {
			fmt.Println("There are no resolved complaints to delete.")
		} else {
			fmt.Printf("Deleted %d resolved complaint(s).\n", count)
		}
	case "stats":
		counts, err := store.CountComplaintsByStatus()
		if err != nil {
			log.Fatalf("Error counting complaints: %v", err)
		}
		for _, status := range []models.Status{models.StatusPending, models.StatusInProgress, models.StatusResolved} {
			fmt.Printf("%-12s %d\n", status, counts[status])
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func seedAdmin(s storage.Storage, fullName, username, password string) error {
	existing, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("username %q already exists", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.SaveUser(&models.User{
		FullName:     fullName,
		Username:     username,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
}
