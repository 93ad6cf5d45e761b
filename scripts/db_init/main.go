package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/Sagari-07/Capstone-Job-Portel/db"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/config"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/db"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/repository/sqlite"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// db_init runs the migrations and optionally seeds one user. There is no
// registration endpoint, so this is how accounts come to exist.
func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		username   = flag.String("username", "", "Seed user login name")
		email      = flag.String("email", "", "Seed user email")
		password   = flag.String("password", "", "Seed user password")
		role       = flag.String("role", models.RoleUser, "Seed user role (user or admin)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")

	if *username == "" {
		return
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Seeding a user requires -username, -email and -password")
		os.Exit(1)
	}
	if *role != models.RoleUser && *role != models.RoleAdmin {
		fmt.Fprintf(os.Stderr, "Unknown role %q\n", *role)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Password hash error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)
	id, err := repo.CreateUser(ctx, &models.User{
		Username:     *username,
		Email:        *email,
		Role:         *role,
		PasswordHash: string(hash),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed user error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %s user %q (id %d).\n", *role, *username, id)
}
