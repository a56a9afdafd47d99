package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/finzo/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		totals, err := st.Sessions().Totals(context.Background())
		if err != nil {
			return fmt.Errorf("load totals: %w", err)
		}

		if totals.Sessions == 0 {
			fmt.Println("No games played yet. Run finzo to start one.")
			return nil
		}

		fmt.Printf("Games played:  %d\n", totals.Sessions)
		fmt.Printf("Best score:    %d\n", totals.BestScore)
		fmt.Printf("Total score:   %d\n", totals.TotalScore)
		fmt.Printf("Time played:   %dm %ds\n", totals.TotalSeconds/60, totals.TotalSeconds%60)
		return nil
	},
}
