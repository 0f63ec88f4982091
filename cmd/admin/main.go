// Package main provides admin management utilities for IT Info.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"itinfo/internal/cache"
	"itinfo/internal/config"
	"itinfo/internal/database"
	"itinfo/internal/models"
	"itinfo/internal/repository"
	"itinfo/internal/store"

	"gorm.io/gorm"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin promote <user_id>   - Promote user to admin")
	fmt.Println("  go run ./cmd/admin demote <user_id>    - Demote user from admin")
	fmt.Println("  go run ./cmd/admin list-admins         - List all admins")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(store.New(db, store.DefaultTables()...))
	// Admin checks read users through the cache, so changes must evict it.
	c := cache.New(cache.InitRedis(cfg.RedisURL))

	switch os.Args[1] {
	case "promote", "demote":
		if len(os.Args) < 3 {
			usage()
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil || id == 0 {
			log.Fatalf("Invalid user ID %q", os.Args[2])
		}
		setAdmin(ctx, users, c, uint(id), os.Args[1] == "promote")
	case "list-admins":
		listAdmins(db)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func setAdmin(ctx context.Context, users repository.UserRepository, c *cache.Cache, id uint, admin bool) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			fmt.Printf("User with ID %d not found\n", id)
			os.Exit(1)
		}
		log.Fatalf("Database error: %v", err)
	}

	if user.IsAdmin == admin {
		fmt.Printf("User %s (ID: %d) already has is_admin=%t\n", user.Name, user.ID, admin)
		return
	}

	if err := users.SetAdmin(ctx, id, admin); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	c.Invalidate(ctx, cache.UserKey(id))

	fmt.Printf("Updated %s (ID: %d): is_admin=%t\n", user.Name, user.ID, admin)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Order("user_id").Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("Current Admins:")
	for _, admin := range admins {
		fmt.Printf("ID: %d | Name: %s | Email: %s\n", admin.ID, admin.Name, admin.Email)
	}
}
