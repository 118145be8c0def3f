package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"vidpilot/internal/state"
	"vidpilot/pkg/config"
)

var (
	cursorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Inspect or reset the row cursor",
}

var cursorShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the next row to be processed",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cursorStore(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n",
			cursorLabelStyle.Render("Next row:"),
			cursorValueStyle.Render(fmt.Sprintf("%d", store.Read())),
		)
		return nil
	},
}

var cursorResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Move the cursor back to the first data row",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cursorStore(cmd.Context())
		if err != nil {
			return err
		}

		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Printf("%s %s\n",
			cursorLabelStyle.Render("Cursor reset to row:"),
			cursorValueStyle.Render(fmt.Sprintf("%d", state.BaseRow)),
		)
		return nil
	},
}

func init() {
	cursorCmd.AddCommand(cursorShowCmd)
	cursorCmd.AddCommand(cursorResetCmd)
	rootCmd.AddCommand(cursorCmd)
}

func cursorStore(ctx context.Context) (*state.CursorStore, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.NewCursorStore(cfg.State.Path), nil
}
