package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/libris/libris/internal/auth"
	"github.com/libris/libris/internal/model"
	"github.com/libris/libris/internal/repository"
)

type output struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "admin", "Username for the seeded account")
		password    = flag.String("password", "", "Password for the seeded account")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     strings.TrimSpace(*username),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			fmt.Fprintln(os.Stderr, "username already exists:", user.Username)
		} else {
			fmt.Fprintln(os.Stderr, "create user:", err)
		}
		os.Exit(1)
	}

	out := output{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
