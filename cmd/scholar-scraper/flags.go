package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-scraper/internal/display"
	"github.com/pdiddy/scholar-scraper/internal/export"
	"github.com/pdiddy/scholar-scraper/internal/scholar"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

const (
	defaultNavTimeout    = 30 * time.Second
	defaultRenderTimeout = 5 * time.Second
	defaultWindowWidth   = 1280
	defaultWindowHeight  = 900
	defaultShowRows      = 20
)

// defaultUserAgent is a current desktop Chrome string. Agents that admit to
// automation attract verification challenges.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// browseFlags registers the flags shared by both extraction commands. The
// pacing defaults differ per command, so each passes its own.
func browseFlags(cmd *cobra.Command, minDelay, maxDelay time.Duration) {
	cmd.Flags().String("chrome", "", "Chrome or Chromium executable (default: $CHROME_PATH or a PATH probe)")
	cmd.Flags().String("user-agent", defaultUserAgent, "User-Agent string the browser reports")
	cmd.Flags().Duration("nav-timeout", defaultNavTimeout, "page navigation timeout")
	cmd.Flags().Duration("render-timeout", defaultRenderTimeout, "wait for expected content after a navigation or click")
	cmd.Flags().Duration("min-delay", minDelay, "minimum pause between page actions")
	cmd.Flags().Duration("max-delay", maxDelay, "maximum pause between page actions")
	cmd.Flags().String("selectors", "", "YAML file overriding the built-in page selectors")
	cmd.Flags().String("out-dir", "exports", "directory exports are written into")
	cmd.Flags().String("format", string(types.FormatCSV), "export format: csv, xlsx, json, or yaml")
	cmd.Flags().Int("show", defaultShowRows, "listing rows to print before eliding (0 = all)")
}

// The cfg helpers resolve one setting each: a flag set on the command line
// wins, then a config file or SCHOLAR_SCRAPER_* environment value, then the
// flag's built-in default.

func cfgString(cmd *cobra.Command, name, key string) string {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func cfgDuration(cmd *cobra.Command, name, key string) time.Duration {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	v, _ := cmd.Flags().GetDuration(name)
	return v
}

func cfgInt(cmd *cobra.Command, name, key string) int {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func cfgBool(cmd *cobra.Command, name, key string) bool {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func viperInt(key string, fallback int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

func browserConfig(cmd *cobra.Command) types.BrowserConfig {
	return types.BrowserConfig{
		ExecPath:     cfgString(cmd, "chrome", "browser.exec_path"),
		Headless:     cfgBool(cmd, "headless", "browser.headless"),
		UserAgent:    cfgString(cmd, "user-agent", "browser.user_agent"),
		WindowWidth:  viperInt("browser.window_width", defaultWindowWidth),
		WindowHeight: viperInt("browser.window_height", defaultWindowHeight),
	}
}

func browseConfig(cmd *cobra.Command, section string) types.BrowseConfig {
	return types.BrowseConfig{
		NavigationTimeout: cfgDuration(cmd, "nav-timeout", section+".navigation_timeout"),
		RenderTimeout:     cfgDuration(cmd, "render-timeout", section+".render_timeout"),
		MinDelay:          cfgDuration(cmd, "min-delay", section+".min_delay"),
		MaxDelay:          cfgDuration(cmd, "max-delay", section+".max_delay"),
	}
}

func exportConfig(cmd *cobra.Command) (types.ExportConfig, error) {
	format, err := export.ParseFormat(cfgString(cmd, "format", "export.format"))
	if err != nil {
		return types.ExportConfig{}, err
	}
	return types.ExportConfig{
		OutDir: cfgString(cmd, "out-dir", "export.out_dir"),
		Format: format,
	}, nil
}

func loadSelectors(cmd *cobra.Command) (scholar.SelectorSet, error) {
	if path := cfgString(cmd, "selectors", "selectors_file"); path != "" {
		return scholar.LoadSelectorFile(path)
	}
	return scholar.DefaultSelectors(), nil
}

// newPrinter builds the terminal printer from the persistent flags.
func newPrinter() (*display.Printer, error) {
	mode, err := display.ParseColorMode(viper.GetString("color"))
	if err != nil {
		return nil, err
	}
	return display.NewPrinter(os.Stdout, os.Stderr, display.PrinterOptions{
		Mode:  mode,
		Quiet: viper.GetBool("quiet"),
	}), nil
}
