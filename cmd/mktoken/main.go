// Command mktoken prints a bearer token for the question bank write routes.
//
//	JWT_SECRET=... mktoken -sub editor -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"questionbank/middleware"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	subject := flag.String("sub", "editor", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	if *ttl <= 0 {
		logrus.Fatal("-ttl must be positive")
	}

	token, err := middleware.NewToken(secret, *subject, *ttl)
	if err != nil {
		logrus.Fatal("Failed to sign token: ", err)
	}
	fmt.Println(token)
}
