package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/keyloom/internal/theme"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available themes",
	Long: `List the built-in themes. The configured default is marked with *.

Pick one at runtime with F5, or set it from the shell:
  keyloom prefs set theme nord`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeThemes(cmd.OutOrStdout(), theme.DefaultCatalog(), cfg.Theme.Default)
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func writeThemes(w io.Writer, catalog theme.Catalog, defaultLabel string) error {
	for _, entry := range catalog {
		marker := " "
		if entry.Label == defaultLabel {
			marker = "*"
		}
		swatch := "  "
		if c := entry.Value.Swatch(); c != "" {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  ")
		}
		desc := ""
		if p, ok := styles.PresetByName(entry.Label); ok {
			desc = p.Description
		}
		if _, err := fmt.Fprintf(w, "%s %s %-18s %s\n", marker, swatch, entry.Label, desc); err != nil {
			return err
		}
	}
	return nil
}
