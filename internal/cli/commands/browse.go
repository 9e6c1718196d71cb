package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"Linkshelf/internal/cli/prefs"
	"Linkshelf/internal/cli/session"
	"Linkshelf/internal/cli/store"
	"Linkshelf/internal/config"
)

type browseCmd struct{}

func (browseCmd) Name() string        { return "browse" }
func (browseCmd) Description() string { return "Interactive session: filter and view bookmarks" }
func (browseCmd) Usage() string       { return "browse" }

func (browseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d := newDeps(cfg)

	ctx, cancel := context.WithCancel(store.WithStore(ctx, store.New()))
	defer cancel()

	s := session.New(ctx, d.client, d.opts, cfg.SearchDebounce, Out)
	defer s.Close()
	if err := s.Start(); err != nil {
		return err
	}

	st := prefs.FSStore{Dir: cfg.StateDir}
	if p, err := st.Load(); err != nil {
		logger.Warnw("load browse prefs", "error", err)
	} else {
		s.Restore(p)
	}
	defer func() {
		if err := st.Save(s.Prefs()); err != nil {
			logger.Warnw("save browse prefs", "error", err)
		}
	}()

	rlCfg := &readline.Config{
		Prompt:          s.Prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	}
	if hist, err := st.HistoryPath(); err == nil {
		rlCfg.HistoryFile = hist
	}
	// по умолчанию readline сам работает с терминалом
	if In != os.Stdin {
		rlCfg.Stdin = readline.NewCancelableStdin(In)
	}
	if Out != os.Stdout {
		rlCfg.Stdout = Out
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(Out, "• type help for commands, quit to leave")
	return s.Run(rl)
}

func init() { RegisterCmd(browseCmd{}) }
