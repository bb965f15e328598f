// Command token issues a bearer token for a user id, signed with the same
// key and issuer as the document server.
//
//	TOKEN_SIGN_KEY=secret token -user u1 -ttl 720h
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

type tokenEnv struct {
	SignKey string `env:"TOKEN_SIGN_KEY"`
	Issuer  string `env:"TOKEN_ISSUER" envDefault:"gig-sync"`
}

func main() {
	log := logger.NewLogger("gig-sync-token")

	var cfg tokenEnv
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("error parsing env")
	}

	userID := flag.String("user", "", "user id (token subject)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.StringVar(&cfg.SignKey, "token-sign-key", cfg.SignKey, "token signing key")
	flag.StringVar(&cfg.Issuer, "token-issuer", cfg.Issuer, "token issuer")
	flag.Parse()

	if *userID == "" || cfg.SignKey == "" {
		flag.Usage()
		os.Exit(2)
	}

	auth := service.NewAuthService(&config.ServerConfig{
		TokenSignKey: cfg.SignKey,
		TokenIssuer:  cfg.Issuer,
	}, log)

	token, err := auth.CreateToken(context.Background(), *userID, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token")
	}

	fmt.Println(token)
}
