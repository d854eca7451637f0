package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-scraper/internal/browser"
	"github.com/pdiddy/scholar-scraper/internal/display"
	"github.com/pdiddy/scholar-scraper/internal/export"
	"github.com/pdiddy/scholar-scraper/internal/scholar"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// defaultProfileDelay paces expansion clicks. Profile pages draw far less
// challenge heat than citation listings, so a short fixed pause is enough.
const defaultProfileDelay = 2 * time.Second

var profileCmd = &cobra.Command{
	Use:   "profile <profile-url>",
	Short: "Extract an author's publication listing",
	Long: `Profile opens a Google Scholar author page, clicks "Show more" until the
publication table is fully expanded, and parses every visible row into a
publication record. Records keep listing order; the paper_id column is the
1-based position that the citations command's --paper flag addresses.

The browser runs headless by default. If Scholar interposes a verification
challenge, re-run with --headless=false and complete it by hand.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runProfile,
}

func init() {
	browseFlags(profileCmd, defaultProfileDelay, defaultProfileDelay)
	profileCmd.Flags().Bool("headless", true, "run the browser without a visible window")
	profileCmd.Flags().Int("max-expansions", 0, "cap on show-more clicks (0 = expand fully)")
	profileCmd.Flags().String("out", "profile", "export filename stem")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter()
	if err != nil {
		return err
	}
	expCfg, err := exportConfig(cmd)
	if err != nil {
		return err
	}
	selectors, err := loadSelectors(cmd)
	if err != nil {
		return err
	}

	browserCfg := browserConfig(cmd)
	cfg := types.ProfileConfig{
		BrowseConfig:  browseConfig(cmd, "profile"),
		MaxExpansions: cfgInt(cmd, "max-expansions", "profile.max_expansions"),
	}

	session, err := browser.NewChromeSession(browserCfg)
	if err != nil {
		return err
	}
	defer session.Close()

	opts := []scholar.Option{
		scholar.WithSelectors(selectors),
		scholar.WithProgress(printer.ProgressWriter()),
	}
	if !browserCfg.Headless {
		opts = append(opts, scholar.WithInterventionHandler(promptHandler()))
	}

	extractor := scholar.NewProfileExtractor(session, cfg, opts...)
	listing, err := extractor.Extract(cmd.Context(), args[0])
	if err != nil {
		return adviseHeadless(err, browserCfg.Headless)
	}

	if !printer.Quiet() {
		show, _ := cmd.Flags().GetInt("show")
		display.RenderPublications(os.Stdout, listing.Publications, show)
	}
	if listing.SkippedRows > 0 {
		printer.Warning("skipped %d unparsable row(s)", listing.SkippedRows)
	}

	stem, _ := cmd.Flags().GetString("out")
	path, err := export.WritePublications(expCfg, stem, listing.Publications)
	if err != nil {
		return err
	}
	printer.Success("exported %d publications to %s", len(listing.Publications), path)
	return nil
}
