package main

import (
	"flag"
	"log/slog"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 8, "number of demo reader accounts to create")
	numPosts := flag.Int("posts", 6, "number of demo posts to create")
	clean := flag.Bool("clean", false, "remove existing demo content before seeding")
	adminOnly := flag.Bool("admin-only", false, "only ensure the admin account exists")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Env == "production" && !*adminOnly {
		slog.Error("refusing to seed demo content in production, use -admin-only")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	admin, err := seed.EnsureAdmin(db, cfg)
	if err != nil {
		slog.Error("failed to ensure admin account", "error", err)
		os.Exit(1)
	}
	slog.Info("admin account ready", "email", admin.Email, "id", admin.ID)

	if *adminOnly {
		return
	}

	if err := seed.Run(db, admin, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *clean,
	}); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seeding complete", "users", *numUsers, "posts", *numPosts)
}
