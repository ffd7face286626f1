package main

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/docrouter/server/internal/auth"
	"codeberg.org/docrouter/server/internal/config"
)

// prints an admin token signed with JWT_SECRET
func PrintToken(flags config.Flags) error {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	token, err := auth.GenerateJWT(secret, flags.Subject, true, flags.TTL)
	if err != nil {
		return err
	}

	fmt.Printf("Admin token for %q (valid %s):\n%s\n\n", flags.Subject, flags.TTL, token)
	fmt.Printf("Export this token for testing:\nexport ADMIN_TOKEN=\"%s\"\n", token)

	return nil
}
