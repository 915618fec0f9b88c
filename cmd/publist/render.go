// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/publist/internal/endnote"
	"github.com/pdiddy/publist/internal/normalize"
	"github.com/pdiddy/publist/internal/order"
	"github.com/pdiddy/publist/internal/render"
	"github.com/pdiddy/publist/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <pubs.xml>",
	Short: "Write the publication list in HTML, LaTeX or wiki format",
	Long: `Render reads an Endnote XML export, keeps the records whose type field is
"article", orders them by year, volume and start page (newest first) and
writes the list to --out.

HTML output is wrapped in the page template unless --fragment is given.
Publications tagged with the keyword "ignore" are left out of the HTML and
LaTeX lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := renderConfig()
	if err != nil {
		return err
	}
	return renderFile(args[0], cfg, cmd.OutOrStdout(), logger)
}

// renderConfig resolves the render settings from flags, environment and the
// config file. An unknown dialect fails here, before any input is read.
func renderConfig() (types.RenderConfig, error) {
	dialect, err := types.ParseDialect(viper.GetString("type"))
	if err != nil {
		return types.RenderConfig{}, err
	}
	return types.RenderConfig{
		NormalizeConfig: types.NormalizeConfig{
			Owner:         viper.GetString("myself"),
			StrictJournal: viper.GetBool("strict_journal"),
		},
		Dialect:      dialect,
		Output:       viper.GetString("out"),
		DimCoAuthors: viper.GetBool("color"),
		ShowAbstract: viper.GetBool("abstract"),
		Fragment:     viper.GetBool("fragment"),
		Template:     viper.GetString("template"),
		EntrySpacer:  viper.GetFloat64("spacer"),
	}, nil
}

// loadPublications parses, normalizes and orders the records of an Endnote
// export.
func loadPublications(path string, cfg types.NormalizeConfig, log zerolog.Logger) ([]types.Publication, normalize.Summary, error) {
	records, err := endnote.ParseFile(path)
	if err != nil {
		return nil, normalize.Summary{}, err
	}
	pubs, summary := normalize.All(records, cfg, log)
	return order.Sort(pubs), summary, nil
}

// renderFile runs the whole pipeline for one input file and reports the
// counts on w.
func renderFile(input string, cfg types.RenderConfig, w io.Writer, log zerolog.Logger) error {
	r, err := render.New(cfg)
	if err != nil {
		return err
	}

	pubs, summary, err := loadPublications(input, cfg.NormalizeConfig, log)
	if err != nil {
		return err
	}

	out, err := r.Render(pubs)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", cfg.Dialect, err)
	}

	if err := writeOutput(cfg.Output, out); err != nil {
		log.Error().Err(err).Str("path", cfg.Output).Msg("output not written")
		return err
	}

	fmt.Fprintf(w, "%d publications [article]\n", len(pubs))
	fmt.Fprintf(w, "%s\n", summary)
	log.Info().Str("path", cfg.Output).Str("type", string(cfg.Dialect)).Msg("written")
	return nil
}

// writeOutput replaces path with content. The content goes to a temporary
// file in the same directory first, so a failed run leaves any previous
// output untouched.
func writeOutput(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing output: %w", err)
	}
	return nil
}

func init() {
	f := renderCmd.Flags()
	f.StringP("type", "t", string(types.DialectHTML), "output format: html, latex or wiki")
	f.StringP("out", "o", "pubs.txt", "output file")
	f.BoolP("color", "c", false, "LaTeX: print co-authors in gray")
	f.BoolP("strict-journal", "j", false, "skip articles without a journal")
	f.BoolP("abstract", "a", false, "HTML: include abstracts")
	f.StringP("myself", "m", "Guha", "last name highlighted in author lists")
	f.Bool("fragment", false, "HTML: write the list without the page template")
	f.String("template", "", "HTML: page template file (default: built-in page)")
	f.Float64("spacer", render.DefaultEntrySpacer, "LaTeX: vertical space between entries, in em")

	for key, flag := range map[string]string{
		"type":           "type",
		"out":            "out",
		"color":          "color",
		"strict_journal": "strict-journal",
		"abstract":       "abstract",
		"myself":         "myself",
		"fragment":       "fragment",
		"template":       "template",
		"spacer":         "spacer",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(renderCmd)
}
