package main // prints an admin token for the destructive routes

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/stagebook/stagebook/internal/logging"
	"github.com/stagebook/stagebook/internal/utils"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "admin", "token subject")
	role := flag.String("role", "ADMIN", "role claim")
	ttl := flag.Int("ttl", envTTL(), "lifetime in minutes")
	flag.Parse()

	tok, err := utils.NewAccessToken(os.Getenv("ADMIN_JWT_SECRET"), *subject, *role, *ttl)
	if err != nil {
		logging.Fatal().Err(err).Msg("ADMIN_JWT_SECRET must be set")
	}
	fmt.Println(tok.Token)
	logging.Info().Str("sub", *subject).Str("role", *role).Time("expires", tok.Exp).Msg("token issued")
}

func envTTL() int {
	n, err := strconv.Atoi(os.Getenv("ADMIN_TOKEN_TTL_MIN"))
	if err != nil || n <= 0 {
		return 60
	}
	return n
}
