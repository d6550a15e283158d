// Package main runs the training MCP server over stdio for local coaching assistants.
// The same server is mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/2beens/trainingcoach/internal/config"
	"github.com/2beens/trainingcoach/internal/db"
	"github.com/2beens/trainingcoach/internal/training/checkout"
	trainingmcp "github.com/2beens/trainingcoach/internal/training/mcp"
	"github.com/2beens/trainingcoach/internal/training/readiness"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         os.Getenv("TRAINING_DB_USER"),
		DBPassword:     os.Getenv("TRAINING_DB_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	server := trainingmcp.NewServer(dbPool, readiness.NewRepo(dbPool), checkout.NewRepo(dbPool))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
