// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/publist/internal/catalog"
	"github.com/pdiddy/publist/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the publication catalog (index, search, export)",
	Long: `Catalog keeps the normalized publication list in a local SQLite database
with full-text search over titles, journals and abstracts. Indexing replaces
the stored list with the contents of an Endnote export.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index <pubs.xml>",
	Short: "Store the normalized publications of an Endnote export",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	ncfg := types.NormalizeConfig{
		Owner:         viper.GetString("myself"),
		StrictJournal: viper.GetBool("strict_journal"),
	}
	// The viper keys are bound to the render flags; explicit index flags win.
	if cmd.Flags().Changed("myself") {
		ncfg.Owner, _ = cmd.Flags().GetString("myself")
	}
	if cmd.Flags().Changed("strict-journal") {
		ncfg.StrictJournal, _ = cmd.Flags().GetBool("strict-journal")
	}

	pubs, summary, err := loadPublications(args[0], ncfg, logger)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Replace(context.Background(), pubs); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Indexed %d publications\n", len(pubs))
	fmt.Fprintf(w, "%s\n", summary)
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog with full-text queries and filters",
	Long: `Search matches the query against titles, journals and abstracts and
filters by author last name and year. Results are listed newest first.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	author, _ := cmd.Flags().GetString("author")
	year, _ := cmd.Flags().GetString("year")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		Author:     author,
		Year:       year,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --author, or --year")
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []types.Publication, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []types.Publication{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-4s  %-50s  %-25s  %s\n", "Index", "Year", "Title", "Journal", "First author")
	fmt.Fprintln(w, strings.Repeat("-", 105))

	for _, p := range results {
		first := ""
		if len(p.Authors) > 0 {
			first = p.Authors[0].String()
		}
		fmt.Fprintf(w, "%-5d  %-4s  %-50s  %-25s  %s\n",
			p.DisplayIndex, p.Year, truncate(p.Title, 50), truncate(p.Journal, 25), first)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML, JSON or CSL-YAML",
	Long: `Export writes every stored publication to stdout, or to --out when given.
The csl format produces CSL-YAML for Pandoc and reference managers.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	var export func(*catalog.Store, context.Context, io.Writer) error
	switch format {
	case "yaml", "":
		export = (*catalog.Store).ExportYAML
	case "json":
		export = (*catalog.Store).ExportJSON
	case "csl":
		export = (*catalog.Store).ExportCSL
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json or csl", format)
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if out == "" {
		return export(store, context.Background(), cmd.OutOrStdout())
	}

	var buf strings.Builder
	if err := export(store, context.Background(), &buf); err != nil {
		return err
	}
	if err := writeOutput(out, buf.String()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.CatalogConfig{
		Path:       viper.GetString("db"),
		MaxResults: maxResults,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("db", "publist.db", "catalog database file")
	catalogCmd.PersistentFlags().Int("max-results", 50, "default maximum number of search results")
	viper.BindPFlag("db", catalogCmd.PersistentFlags().Lookup("db"))

	// Index uses the same normalization settings as render.
	catalogIndexCmd.Flags().StringP("myself", "m", "Guha", "last name highlighted in author lists")
	catalogIndexCmd.Flags().BoolP("strict-journal", "j", false, "skip articles without a journal")

	// Search flags.
	catalogSearchCmd.Flags().String("author", "", "filter by author last name")
	catalogSearchCmd.Flags().String("year", "", "filter by publication year")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use --max-results)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml, json or csl")
	catalogExportCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
