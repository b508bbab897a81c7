package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/page"
	"github.com/somtogreat69/portfolio/internal/view"
)

var (
	renderOut  string
	renderCase string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the page to static HTML",
	Long:  `Renders the page without the live session script, optionally with one case study's overlay open, and writes it to a file or stdout for previews.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		renderer, err := view.NewRenderer()
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		var buf bytes.Buffer
		if err := renderPage(&buf, cat, renderer, renderCase); err != nil {
			return err
		}

		if renderOut == "" || renderOut == "-" {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(renderOut, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", renderOut, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", renderOut, buf.Len())
		return nil
	},
}

// renderPage writes the static page. A non-empty caseID opens that case
// study's overlay through its card, as a visitor click would.
func renderPage(w io.Writer, cat *catalog.Catalog, renderer *view.Renderer, caseID string) error {
	ctrl := page.NewController(nil, page.WithSessionID("render"), page.WithLogger(logger))
	build := func() view.PageData {
		return view.BuildPage(cat, ctrl.Snapshot(), view.Callbacks{
			OnViewLogic: ctrl.OpenDetail,
			OnClose:     ctrl.CloseDetail,
		})
	}

	if caseID != "" {
		card, ok := build().FindCard(caseID)
		if !ok {
			return fmt.Errorf("%w: case study %q", catalog.ErrNotFound, caseID)
		}
		card.Activate()
	}

	if err := renderer.Page(w, build()); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().StringVar(&renderCase, "case", "", "case study id whose overlay should be open")
	rootCmd.AddCommand(renderCmd)
}
