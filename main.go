package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/salvadorperezm/ror-api-creation/config"
	"github.com/salvadorperezm/ror-api-creation/config/database"
	"github.com/salvadorperezm/ror-api-creation/events"
	userRepo "github.com/salvadorperezm/ror-api-creation/internal/user/repository"
	"github.com/salvadorperezm/ror-api-creation/pkg/logger"
	"github.com/salvadorperezm/ror-api-creation/router"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "posts-api",
		Short: "JSON API for posts with bearer-token auth and cached title search",
	}
	rootCmd.AddCommand(serveCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bootstrap()
			db := database.Connect(cfg)
			defer db.Close()

			hub := events.NewHub()
			go hub.Run()

			logger.Sugar.Infof("Listening on :%s", cfg.Port)
			return http.ListenAndServe(":"+cfg.Port, router.Setup(db, hub, cfg))
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Apply the schema and create demo users with fresh auth tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bootstrap()
			db := database.Connect(cfg)
			defer db.Close()

			schema, err := os.ReadFile("db/schema.sql")
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			if _, err := db.Exec(string(schema)); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}

			users := userRepo.NewUserRepository(db)
			for _, u := range []struct{ name, email string }{
				{"Ada Lovelace", "ada@example.com"},
				{"Grace Hopper", "grace@example.com"},
			} {
				token, err := generateAuthToken()
				if err != nil {
					return err
				}
				id, err := users.Create(u.name, u.email, token)
				if err != nil {
					return err
				}
				fmt.Printf("created user %d <%s> token=%s\n", id, u.email, token)
			}
			return nil
		},
	}
}

func bootstrap() *config.Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}
	logger.Init()
	return config.Load()
}

// generateAuthToken produces a random opaque credential. Hex keeps the
// token within the word characters the Authorization header parser
// accepts.
func generateAuthToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
