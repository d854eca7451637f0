// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-scraper CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-scraper/internal/environ"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the scholar-scraper CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-scraper",
	Short: "Extract publication and citation listings from Google Scholar",
	Long: `scholar-scraper drives a real Chrome browser through Google Scholar and
writes what it finds to flat files. The profile command walks an author's
publication listing, expanding it until every row is visible; the citations
command walks the results citing one publication, page by page.

Scholar has no API for either listing, so extraction means browsing. Runs
are paced like a human reader, and when Scholar interposes a verification
challenge the run suspends so an operator can complete it in the browser
window before resuming.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applied, err := environ.Load(".env")
		if err != nil {
			return err
		}
		if len(applied) > 0 {
			keys := make([]string, 0, len(applied))
			for k := range applied {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded environment: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-scraper.yaml or ~/.config/scholar-scraper/config.yaml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output: auto, always, or never")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress progress lines and listing tables")

	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-scraper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-scraper"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
