package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/slides"
)

// strategiesCommand creates the strategies listing command.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available content strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

			rows := [][]string{}
			for _, s := range slides.Strategies() {
				example := ""
				if len(s.Examples) > 0 {
					example = s.Examples[0]
				}
				rows = append(rows, []string{s.ID, s.Description, example})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Strategy", "Description", "Example").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return lipgloss.NewStyle().Foreground(colorCyan)
					}
					if col == 2 {
						return lipgloss.NewStyle().Foreground(colorDim).Italic(true)
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})

			fmt.Println(t.Render())
			printNewline()
			printNextStep("Generate a slide with one", "slidecast generate <strategy>")
			return nil
		},
	}
}
