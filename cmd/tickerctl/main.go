package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tickermatch/internal/ai"
	"github.com/tickermatch/internal/config"
	"github.com/tickermatch/internal/db"
	"github.com/tickermatch/internal/etl"
	"github.com/tickermatch/internal/matcher"
)

var (
	// Global database connection
	dbConn *db.Connection
)

func main() {
	config.LoadEnv()

	var err error
	dbConn, err = db.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	rootCmd := &cobra.Command{
		Use:   "tickerctl",
		Short: "Company Ticker Matching System",
		Long:  `Match free-text company names to stock tickers against the stored listing table`,
	}

	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createUpdateCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createMatchCmd creates the match subcommand
func createMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match [company name]",
		Short: "Match a company name to its stock ticker",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := strings.Join(args, " ")
			ctx := context.Background()

			store := db.NewTickerStore(dbConn)
			entries, err := store.LoadEntries(ctx)
			if err != nil {
				log.Fatalf("Failed to load ticker data: %v", err)
			}

			matcherCfg := config.MatcherConfig()
			fallback := ai.NewClient(os.Getenv("OPENAI_API_KEY"), matcherCfg)
			corpus := matcher.Prepare(entries, matcherCfg)

			result := matcher.New(matcherCfg, fallback).Match(ctx, name, corpus)

			output, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				log.Fatalf("Failed to format result: %v", err)
			}
			fmt.Println(string(output))
		},
	}
}

// createUpdateCmd creates the update subcommand
func createUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Refresh the ticker table from Alpha Vantage",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			store := db.NewTickerStore(dbConn)
			if err := store.EnsureSchema(ctx); err != nil {
				log.Fatalf("Failed to prepare schema: %v", err)
			}

			listings := etl.NewListingClient(os.Getenv("ALPHA_VANTAGE_API_KEY"),
				config.GetEnv("ALPHA_VANTAGE_BASE_URL", ""))
			updater := etl.NewUpdater(listings, store, config.MatcherConfig())

			count, err := updater.UpdateTickers(ctx)
			if err != nil {
				log.Fatalf("Failed to update tickers: %v", err)
			}
			fmt.Printf("Successfully updated %d tickers\n", count)
		},
	}
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Database connection successful!")

			var count int
			err := dbConn.DB.QueryRow("SELECT COUNT(*) FROM tickers").Scan(&count)
			if err != nil {
				log.Printf("Error counting ticker records: %v", err)
			} else {
				fmt.Printf("Tickers loaded: %d\n", count)
			}

			store := db.NewTickerStore(dbConn)
			at, err := store.LastUpdated(context.Background())
			if err != nil {
				log.Printf("Error reading last update: %v", err)
			} else if at.IsZero() {
				fmt.Println("No ticker update recorded yet")
			} else {
				fmt.Printf("Last updated: %s\n", at.Format("2006-01-02 15:04:05 MST"))
			}
		},
	}
}
