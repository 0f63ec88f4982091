// Command main runs the database seeder for IT Info.
package main

import (
	"flag"
	"log"

	"itinfo/internal/bootstrap"
	"itinfo/internal/config"
	"itinfo/internal/database"
	"itinfo/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of community posts to create")
	numReviews := flag.Int("reviews", 80, "Number of product reviews to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, %d reviews, clean=%v", *numUsers, *numPosts, *numReviews, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	// Recreate the admin before seeding so notices are authored by it.
	if err := bootstrap.EnsureAdmin(cfg, db); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}

	res, err := seed.Seed(db, seed.Options{
		NumUsers:   *numUsers,
		NumPosts:   *numPosts,
		NumReviews: *numReviews,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d notices, %d posts, %d comments, %d products, %d reviews",
		res.Users, res.Notices, res.Posts, res.Comments, res.Products, res.Reviews)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
