// Command createadmin seeds an administrator account. Registration
// only ever creates regular users, so the first admin has to be minted
// out of band; run this once against the target database:
//
//	createadmin -email admin@example.com -password <secret>
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

type adminArgs struct {
	Username string
	Email    string
	Password string
}

// validate normalizes the arguments and reports the first problem.
func (a *adminArgs) validate() string {
	a.Username = strings.TrimSpace(a.Username)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	switch {
	case a.Username == "":
		return "username is required"
	case a.Email == "" || !strings.Contains(a.Email, "@"):
		return "a valid email is required"
	case a.Password == "":
		return "password is required"
	}
	return ""
}

func main() {
	var args adminArgs
	flag.StringVar(&args.Username, "username", "admin", "display name of the admin user")
	flag.StringVar(&args.Email, "email", "", "email of the admin user")
	flag.StringVar(&args.Password, "password", "", "password of the admin user")
	flag.Parse()

	if msg := args.validate(); msg != "" {
		log.Fatalf("createadmin: %s", msg)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	id, err := users.CreateAdmin(ctx, args.Username, args.Email, args.Password, cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Fatalf("createadmin: email %s is already registered", args.Email)
		}
		log.Fatalf("createadmin: %v", err)
	}
	log.Printf("admin user %s created (id=%d)", args.Email, id)
}
