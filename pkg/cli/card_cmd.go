package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"docindex/internal/app"
	"docindex/internal/domain"
	"docindex/internal/ui"
)

func newCardCmd(e *env) *cobra.Command {
	var itemJSON string

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a single doc card from a sidebar item",
		Long: "Render one sidebar item, given as JSON, to card HTML on stdout. " +
			"Items without a destination print nothing. Use --item - to read from stdin.",
		Example: `  docindex card --item '{"type":"link","href":"/docs/intro","label":"Intro"}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := []byte(itemJSON)
			if itemJSON == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				raw = b
			}

			item, err := domain.DecodeItem(raw)
			if err != nil {
				return err
			}

			r, err := app.LoadRenderer(e.cfg)
			if err != nil {
				return err
			}
			node, err := r.Renderer.DocCard(item)
			if err != nil {
				return err
			}
			html, err := ui.RenderString(node)
			if err != nil {
				return err
			}
			if html == "" {
				e.logger.Debug("item has no destination; no card rendered")
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}

	cmd.Flags().StringVar(&itemJSON, "item", "", "Sidebar item as JSON, or - for stdin")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}
