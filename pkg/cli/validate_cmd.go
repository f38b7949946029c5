package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docindex/internal/sidebar"
)

type unknownEntry struct {
	Sidebar string `json:"sidebar"`
	Type    string `json:"type"`
	Item    string `json:"item"`
}

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the sidebars file for items that cannot be rendered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sbs, err := sidebar.Load(e.cfg.SidebarsPath)
			if err != nil {
				return err
			}

			var unknown []unknownEntry
			categories := 0
			for _, sb := range sbs.List {
				categories += len(sidebar.Categories(sb))
				for _, u := range sidebar.Unknown(sb) {
					unknown = append(unknown, unknownEntry{Sidebar: sb.Name, Type: u.Type, Item: string(u.Raw)})
				}
			}

			out := cmd.OutOrStdout()
			if e.outputFormat(out) == "json" {
				if err := printJSON(out, map[string]any{
					"sidebars":   len(sbs.List),
					"categories": categories,
					"unknown":    unknown,
				}); err != nil {
					return err
				}
			} else {
				for _, u := range unknown {
					_, _ = fmt.Fprintf(out, "%s: unknown item type %s\n", u.Sidebar, u.Item)
				}
				_, _ = fmt.Fprintf(out, "%d sidebars, %d categories, %d unknown items\n", len(sbs.List), categories, len(unknown))
			}

			if len(unknown) > 0 {
				return fmt.Errorf("%d sidebar items have an unrecognized type", len(unknown))
			}
			return nil
		},
	}
}
