package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-scraper/internal/browser"
	"github.com/pdiddy/scholar-scraper/internal/display"
	"github.com/pdiddy/scholar-scraper/internal/export"
	"github.com/pdiddy/scholar-scraper/internal/scholar"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// Citation listings draw challenges far more readily than profile pages, so
// pacing is slower and randomized.
const (
	defaultCitersMinDelay = 2 * time.Second
	defaultCitersMaxDelay = 6 * time.Second
)

var citationsCmd = &cobra.Command{
	Use:   "citations [cited-by-url]",
	Short: "Extract the results citing one publication",
	Long: `Citations walks a cited-by result listing page by page and parses every
result into a citing record. Point it at a cited-by URL directly, or let it
discover one: with --profile and --paper N the command walks the profile
listing first, then follows the cited-by link of the Nth publication.

The browser runs with a visible window by default so verification
challenges can be completed by hand; the run suspends until ENTER is
pressed, then resumes where it left off.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCitations,
}

func init() {
	browseFlags(citationsCmd, defaultCitersMinDelay, defaultCitersMaxDelay)
	citationsCmd.Flags().Bool("headless", false, "run the browser without a visible window")
	citationsCmd.Flags().String("profile", "", "profile URL to discover the cited-by link from")
	citationsCmd.Flags().Int("paper", 0, "1-based listing position of the publication to follow")
	citationsCmd.Flags().Int("max-pages", 0, "cap on result pages (0 = walk all)")
	citationsCmd.Flags().Bool("dedupe", false, "drop repeated titles, keeping first occurrences")
	citationsCmd.Flags().String("out", "", "export filename stem (default: derived from the publication)")

	rootCmd.AddCommand(citationsCmd)
}

func runCitations(cmd *cobra.Command, args []string) error {
	profileURL, _ := cmd.Flags().GetString("profile")
	paper, _ := cmd.Flags().GetInt("paper")

	switch {
	case len(args) == 1 && profileURL != "":
		return fmt.Errorf("give either a cited-by URL or --profile, not both")
	case len(args) == 0 && profileURL == "":
		return fmt.Errorf("give a cited-by URL, or --profile with --paper")
	case profileURL != "" && paper < 1:
		return fmt.Errorf("--profile needs --paper N to pick a publication")
	}

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
	cfg := types.CitationConfig{
		BrowseConfig: browseConfig(cmd, "citations"),
		MaxPages:     cfgInt(cmd, "max-pages", "citations.max_pages"),
		Dedupe:       cfgBool(cmd, "dedupe", "citations.dedupe"),
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

	var citedByURL string
	stem, _ := cmd.Flags().GetString("out")
	if len(args) == 1 {
		citedByURL = args[0]
		if stem == "" {
			stem = "citers"
		}
	} else {
		pcfg := types.ProfileConfig{BrowseConfig: cfg.BrowseConfig}
		pub, err := discoverCitedBy(cmd.Context(), session, pcfg, profileURL, paper, opts)
		if err != nil {
			return adviseHeadless(err, browserCfg.Headless)
		}
		printer.Info("paper %d: %s (cited by %d)", paper, pub.Title, pub.CitationCount)
		citedByURL = pub.CitedByURL
		if stem == "" {
			stem = export.CitersFilename(pub.Title, pub.Year)
		}
	}

	extractor := scholar.NewCitationExtractor(session, cfg, opts...)
	listing, err := extractor.Extract(cmd.Context(), citedByURL)
	if err != nil {
		return adviseHeadless(err, browserCfg.Headless)
	}

	records := listing.Records
	if cfg.Dedupe {
		var removed int
		records, removed = scholar.DedupeCitingRecords(records)
		if removed > 0 {
			printer.Info("dropped %d duplicate title(s)", removed)
		}
	}

	if !printer.Quiet() {
		show, _ := cmd.Flags().GetInt("show")
		display.RenderCitingRecords(os.Stdout, records, show)
	}
	if listing.SkippedRows > 0 {
		printer.Warning("skipped %d unparsable result(s)", listing.SkippedRows)
	}

	path, err := export.WriteCitingRecords(expCfg, stem, records)
	if err != nil {
		return err
	}
	printer.Success("exported %d citing records from %d page(s) to %s", len(records), listing.Pages, path)
	return nil
}

// discoverCitedBy walks the profile listing and returns its paper'th
// publication, which must carry a cited-by link.
func discoverCitedBy(ctx context.Context, session browser.Session, cfg types.ProfileConfig, profileURL string, paper int, opts []scholar.Option) (types.Publication, error) {
	extractor := scholar.NewProfileExtractor(session, cfg, opts...)
	listing, err := extractor.Extract(ctx, profileURL)
	if err != nil {
		return types.Publication{}, err
	}
	return scholar.FindCitedBy(listing.Publications, paper)
}
