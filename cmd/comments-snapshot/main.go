package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gogotex/gogotex/backend/go-comments/internal/archive"
	"github.com/gogotex/gogotex/backend/go-comments/internal/config"
	"github.com/gogotex/gogotex/backend/go-comments/internal/database"
	"github.com/gogotex/gogotex/backend/go-comments/internal/server"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	presign time.Duration
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "comments-snapshot",
	Short: "Upload a JSON snapshot of every comment to MinIO",
	Long: `comments-snapshot reads the whole comment collection from MongoDB and
uploads it as comments/snapshot-<timestamp>.json to the configured bucket.
It never writes to the database.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger.Init(level)
		logger.Configure(os.Stderr, "console")
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().DurationVar(&presign, "presign", 0, "also print a presigned download URL valid for this long")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
}

func run(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, closeStore, err := server.OpenStore(ctx, cfg, database.RetryPolicy{Attempts: 3, Backoff: time.Second}, false)
	if err != nil {
		return err
	}
	defer closeStore(context.Background())

	store, err := archive.NewMinIOStore(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	key, n, err := archive.WriteSnapshot(ctx, svc, store, time.Now())
	if err != nil {
		return err
	}
	logger.Infof("uploaded %d comments to %s/%s", n, cfg.MinIO.Bucket, key)
	fmt.Fprintln(cmd.OutOrStdout(), key)

	if presign > 0 {
		u, err := store.PresignedURL(ctx, key, presign)
		if err != nil {
			return fmt.Errorf("presign: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
