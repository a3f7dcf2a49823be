package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/config"
	"github.com/abhisek/questisland/internal/game"
	"github.com/abhisek/questisland/internal/logging"
	"github.com/abhisek/questisland/internal/store"
)

// runtime bundles what every command needs. close releases the store and
// the log file, if any.
type runtime struct {
	cfg   *config.App
	log   zerolog.Logger
	store *store.Store
	bank  *bank.Bank
	game  *game.Service

	closers []io.Closer
}

func (r *runtime) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// setup loads configuration and opens the store. With tui set, logs go to
// QUEST_LOG_FILE (or nowhere) so they do not tear the screen.
func setup(cmd *cobra.Command, tui bool) (*runtime, error) {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	rt := &runtime{cfg: cfg}

	var out io.Writer = os.Stderr
	if tui {
		out = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			rt.closers = append(rt.closers, f)
			out = f
		}
	}
	rt.log = logging.New("questisland", cfg.Env, cfg.LogLevel, out)
	cmd.SetContext(logging.IntoContext(cmd.Context(), rt.log))

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.store = st
	rt.closers = append(rt.closers, st)

	b, err := loadBank(cfg.BankDir)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.bank = b
	rt.log.Debug().Str("db", dbPath).Int("questions", b.Len()).Msg("runtime ready")

	rt.game = game.NewService(st.ProfileRepo(), st.EventRepo(), b,
		game.WithStorageKey(cfg.ProfileKey),
		game.WithSnapshotKeep(cfg.SnapshotKeep),
		game.WithLogger(rt.log),
	)
	return rt, nil
}

// loadBank returns the embedded bank with any files in dir merged over it.
func loadBank(dir string) (*bank.Bank, error) {
	b, err := bank.Default()
	if err != nil {
		return nil, fmt.Errorf("load embedded bank: %w", err)
	}
	if dir == "" {
		return b, nil
	}
	extra, err := bank.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load bank dir: %w", err)
	}
	merged, err := b.Merge(extra.All())
	if err != nil {
		return nil, fmt.Errorf("merge bank dir: %w", err)
	}
	return merged, nil
}
