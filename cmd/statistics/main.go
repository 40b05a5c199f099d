package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/postdigester/donation-backend/internal/config"
	"github.com/postdigester/donation-backend/internal/database"
	"github.com/postdigester/donation-backend/internal/donation/service"
	"github.com/postdigester/donation-backend/internal/donor"
	"github.com/postdigester/donation-backend/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "statistics",
	Short: "Print donation statistics",
	Long:  `Connects to MONGODB_URL and prints the per-category donation aggregate as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, cols database.Collections, pretty bool) error {
			return writeStatistics(ctx, cmd.OutOrStdout(), service.NewMongoService(cols.Donations), pretty)
		})
	},
}

var donorsCmd = &cobra.Command{
	Use:   "donors",
	Short: "Print the donor ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, cols database.Collections, pretty bool) error {
			return writeDonors(ctx, cmd.OutOrStdout(), donor.NewService(donor.NewMongoRepository(cols.Donors)), pretty)
		})
	},
}

func init() {
	rootCmd.AddCommand(donorsCmd)
	rootCmd.PersistentFlags().StringP("database", "d", "", "database name, overrides MONGODB_DATABASE")
	rootCmd.PersistentFlags().Bool("pretty", false, "indent JSON output")
}

func main() {
	logger.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withDatabase(cmd *cobra.Command, fn func(ctx context.Context, cols database.Collections, pretty bool) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.LogLevel)
	if db, _ := cmd.Flags().GetString("database"); db != "" {
		cfg.MongoDB.Database = db
	}
	pretty, _ := cmd.Flags().GetBool("pretty")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return fn(ctx, database.NewCollections(client.Database(cfg.MongoDB.Database)), pretty)
}

func writeStatistics(ctx context.Context, w io.Writer, svc service.Service, pretty bool) error {
	stats, err := svc.Statistics(ctx)
	if err != nil {
		return err
	}
	return writeJSON(w, stats, pretty)
}

func writeDonors(ctx context.Context, w io.Writer, svc *donor.Service, pretty bool) error {
	list, err := svc.List(ctx)
	if err != nil {
		return err
	}
	return writeJSON(w, list, pretty)
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
