package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/jwt"
)

// tokengen mints an access token for local development and API testing.
func main() {
	userID := flag.String("user", "", "user_id claim")
	employeeID := flag.String("employee", "", "employee_id claim (optional)")
	organizationID := flag.String("org", "", "organization_id claim")
	role := flag.String("role", "admin", "role claim")
	expiration := flag.String("exp", "", "token lifetime, e.g. 24h (defaults to JWT_ACCESS_EXPIRATION_TIME)")
	flag.Parse()

	if *userID == "" || *organizationID == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -user <id> -org <id> [-employee <id>] [-role <role>] [-exp <duration>]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY is required")
		os.Exit(1)
	}
	exp := *expiration
	if exp == "" {
		exp = os.Getenv("JWT_ACCESS_EXPIRATION_TIME")
	}
	if exp == "" {
		exp = "1h"
	}

	var emp *string
	if *employeeID != "" {
		emp = employeeID
	}

	token, expiresAt, err := jwt.NewJWTService(secret, exp).GenerateAccessToken(*userID, emp, *organizationID, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at:", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
