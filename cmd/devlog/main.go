package main

import (
	"fmt"
	"os"

	"devlog"
	"devlog/internal/content"
	"devlog/internal/output"
	"devlog/internal/seed"
	"devlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	cfg          *storage.Config
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devlog",
		Short: "Content pipeline for the devlog site - sync markdown, seed fixed data, maintain counters",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "human", "output format: json, text, human")

	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(recountCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		output.NewFormatter(output.Format(outputFormat)).Error("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	loaded, err := storage.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if loaded.Database.Path == "" {
		return fmt.Errorf("missing required configuration: database.path (or DEVLOG_DB)")
	}

	cfg = loaded
	return nil
}

func openStore() (*storage.SQLiteStore, error) {
	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

func syncCmd() *cobra.Command {
	var check bool
	var file string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync markdown content into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			syncer := content.NewSyncer(store, cfg.Content.Dir)

			if check {
				if err := syncer.CheckConnection(); err != nil {
					return fmt.Errorf("connection check failed: %w", err)
				}
				fmt.Println("Database connection OK")
				return nil
			}

			if file != "" {
				if err := syncer.SyncFile(file); err != nil {
					return err
				}
				if err := syncer.RecountArticleCounts(); err != nil {
					formatter.Warning("failed to refresh counters: %v", err)
				}
				fmt.Printf("Synced %s\n", file)
				return nil
			}

			result, err := syncer.SyncAll()
			if err != nil {
				return err
			}
			return formatter.OutputSyncResult(&devlog.SyncResult{
				Synced: result.Synced,
				Failed: result.Failed,
				Errors: result.Errors,
			})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify database connectivity and exit")
	cmd.Flags().StringVar(&file, "file", "", "sync a single markdown file")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the fixed datasets (profile, skills, projects, categories, tags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := seed.New(store).Run(); err != nil {
				return err
			}
			fmt.Println("Seed data loaded")
			return nil
		},
	}
}

func recountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recount",
		Short: "Recompute category and tag article counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			syncer := content.NewSyncer(store, cfg.Content.Dir)
			if err := syncer.RecountArticleCounts(); err != nil {
				return err
			}
			fmt.Println("Counters refreshed")
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print per-table row counts for manual verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := store.TableCounts()
			if err != nil {
				return err
			}
			return formatter.OutputTableCounts(counts)
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print headline counts across the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.GetSiteStats()
			if err != nil {
				return err
			}
			return formatter.OutputSiteStats(&devlog.SiteStats{
				PublishedArticles: stats.PublishedArticles,
				FeaturedArticles:  stats.FeaturedArticles,
				Categories:        stats.Categories,
				Tags:              stats.Tags,
				TotalViews:        stats.TotalViews,
			})
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = "./config/config.yaml"
			}
			if err := os.MkdirAll("./config", 0755); err != nil {
				return fmt.Errorf("failed to create config dir: %w", err)
			}
			if err := storage.WriteDefault(path); err != nil {
				return err
			}
			fmt.Printf("Wrote default config to %s\n", path)
			return nil
		},
	}
}
