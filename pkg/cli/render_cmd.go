package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docindex/internal/app"
	"docindex/internal/docsgen"
)

func newRenderCmd(e *env) *cobra.Command {
	var (
		outDir      string
		sidebarName string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write generated index pages as static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("out") {
				e.cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("concurrency") {
				e.cfg.Concurrency = concurrency
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			a, err := app.New(app.Deps{Cfg: e.cfg, Logger: e.logger})
			if err != nil {
				return err
			}
			m, err := docsgen.Generate(cmd.Context(), a, docsgen.Options{
				OutDir:      e.cfg.OutDir,
				Concurrency: e.cfg.Concurrency,
				Sidebar:     sidebarName,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if e.outputFormat(out) == "json" {
				return printJSON(out, map[string]any{"out": e.cfg.OutDir, "locale": m.Locale, "pages": m.Pages})
			}
			for _, p := range m.Pages {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", p.Path, p.Title)
			}
			_, _ = fmt.Fprintf(out, "\n%d pages written to %s\n", len(m.Pages), e.cfg.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (env DOCINDEX_OUT_DIR, default build)")
	cmd.Flags().StringVar(&sidebarName, "sidebar", "", "Only generate pages for this sidebar")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Pages rendered in parallel (env DOCINDEX_CONCURRENCY, default 4)")
	return cmd
}
