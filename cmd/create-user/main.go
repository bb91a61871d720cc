// CLI tool to create an account with a bcrypt-hashed password and a random
// auth token. The account can then save snapshots and use /api/me/chat.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// newUser is what the prompts collect.
type newUser struct {
	Username string
	Email    string
	Password string
}

func (u newUser) validate() error {
	switch {
	case u.Username == "":
		return errors.New("username is required")
	case strings.ContainsAny(u.Username, " \t"):
		return errors.New("username must not contain spaces")
	case len(u.Password) < 8:
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func main() {
	_ = godotenv.Load()

	reader := bufio.NewReader(os.Stdin)
	u := newUser{
		Username: prompt(reader, "Username: "),
		Email:    prompt(reader, "Email: "),
		Password: prompt(reader, "Password: "),
	}
	if err := u.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid user: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}
	authToken := uuid.NewString()

	var userID int
	err = conn.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @authToken) RETURNING id`,
		pgx.NamedArgs{"username": u.Username, "email": u.Email, "password": string(hash), "authToken": authToken},
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", u.Username)
	fmt.Printf("  Auth Token: %s\n", authToken)
}
