package main

import (
	"bufio"
	"context"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/codesprint-backend/internal/config"
	"github.com/stemsi/codesprint-backend/internal/database"
	"github.com/stemsi/codesprint-backend/internal/logger"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/repository"
	"github.com/stemsi/codesprint-backend/internal/service"
	"golang.org/x/term"
)

const minPasswordLen = 8

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	adminRepo := repository.NewAdminRepository(pool)
	authService := service.NewAuthService(cfg, adminRepo, nil)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create or Reset Admin ===")

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		fmt.Println("Error: a valid email is required")
		os.Exit(1)
	}

	// Password, twice, without echo.
	password, err := readPassword("Enter Password: ")
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	if len(password) < minPasswordLen {
		fmt.Printf("Error: Password must be at least %d characters\n", minPasswordLen)
		os.Exit(1)
	}
	confirm, err := readPassword("Confirm Password: ")
	if err != nil || confirm != password {
		fmt.Println("Error: passwords do not match")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.Admin{Email: email, PasswordHash: hash}
	if err := adminRepo.Upsert(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to save admin")
	}

	fmt.Printf("\nSuccess! Admin %s saved with ID: %d\n", admin.Email, admin.ID)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}
