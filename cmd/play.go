package cmd

import (
	"github.com/abhisek/finzo/internal/sim"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the budget game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, sim.ModeBudget)
	},
}
