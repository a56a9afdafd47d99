package cmd

import (
	"github.com/abhisek/finzo/internal/sim"
	"github.com/spf13/cobra"
)

var earnCmd = &cobra.Command{
	Use:   "earn",
	Short: "Start the earn-and-save game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, sim.ModeEarn)
	},
}
