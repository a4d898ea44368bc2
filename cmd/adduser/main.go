// cmd/adduser/main.go
// Creates or updates a user in the database.
//
// Usage:
//
//	go run ./cmd/adduser -login padraic -password testing -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/racebook/config"
	bundb "github.com/padraicbc/racebook/db"
	"github.com/padraicbc/racebook/models"
)

func main() {
	login := flag.String("login", "", "login (required)")
	password := flag.String("password", "", "plain-text password (required)")
	role := flag.String("role", "peasant", "role: admin or peasant")
	flag.Parse()

	if *login == "" || *password == "" {
		log.Fatal("both -login and -password are required")
	}
	parsed, ok := models.ParseRole(*role)
	if !ok {
		log.Fatalf("unknown role %q, want admin or peasant", *role)
	}

	user := &models.User{
		Login: *login,
		Role:  parsed,
	}
	if err := user.SetPassword(*password); err != nil {
		log.Fatal("bcrypt: ", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	_, err := db.NewInsert().Model(user).
		On("CONFLICT (login) DO UPDATE SET password = EXCLUDED.password, role = EXCLUDED.role").
		Exec(ctx)
	if err != nil {
		log.Fatal("insert user: ", err)
	}

	fmt.Printf("user %q saved with role %s\n", *login, parsed)
}
