package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/myhuemungusD/skatehubbamvp/config"
	"github.com/myhuemungusD/skatehubbamvp/db"
)

// Grants the mod or admin role to an existing user so they can reach the
// submission review endpoints. The user signs up through the API first;
// this only flips their roles.
func main() {
	email := flag.String("email", "", "User email (required)")
	role := flag.String("role", "mod", "Role to grant: 'mod' or 'admin'")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" {
		fmt.Println("Error: email is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if !validRole(*role) {
		fmt.Println("Error: role must be 'mod' or 'admin'")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Disconnect(context.Background())

	filter, update := grantRole(*email, *role)
	res, err := store.Collection("users").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Fatalf("Failed to grant role: %v", err)
	}
	if res.MatchedCount == 0 {
		log.Fatalf("No user with email %s; they need to sign up first", *email)
	}

	fmt.Printf("Granted role %q to %s\n", *role, *email)
}

func validRole(role string) bool {
	return role == "mod" || role == "admin"
}

// grantRole builds the update that adds the role to the user's roles array
// without duplicating it.
func grantRole(email, role string) (bson.M, bson.M) {
	return bson.M{"email": email}, bson.M{
		"$addToSet": bson.M{"roles": role},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
}
