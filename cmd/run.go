package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/finzo/internal/advisor"
	"github.com/abhisek/finzo/internal/app"
	"github.com/abhisek/finzo/internal/report"
	"github.com/abhisek/finzo/internal/screens/home"
	"github.com/abhisek/finzo/internal/sim"
	"github.com/abhisek/finzo/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// startMode may be empty to open on the home menu.
func runApp(cmd *cobra.Command, startMode sim.Mode) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	deps := home.Deps{
		Sessions: st.Sessions(),
		Reporter: buildReporter(),
		Seed:     seedFromEnv(),
	}

	provider, err := advisor.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The coach debrief will be unavailable.")
	} else {
		deps.Debriefer = advisor.NewService(provider, advisor.ConfigFromEnv().Timeout)
	}

	return app.Run(deps, startMode)
}

// seedFromEnv reads FINZO_SEED for a deterministic event injector.
// Unset or unparsable values mean a time-derived seed.
func seedFromEnv() uint64 {
	v := os.Getenv("FINZO_SEED")
	if v == "" {
		return 0
	}
	seed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring invalid FINZO_SEED:", v)
		return 0
	}
	return seed
}

// buildReporter wires the rewards service client when a URL is
// configured. Without one the game plays fully offline.
func buildReporter() sim.Reporter {
	cfg := report.ConfigFromEnv()
	if cfg.BaseURL == "" {
		return nil
	}
	return report.NewClient(cfg)
}
