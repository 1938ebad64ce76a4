package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/weave/compiler/load"
)

// DefaultDebounce is the quiet period after the last change before a
// regeneration starts.
const DefaultDebounce = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <schema>",
		Short: "Regenerate model code when definition files change",
		Long: `Watch generates once, then regenerates every time a definition file
changes. Bursts of changes are coalesced. A failing run is logged and
watching continues. Stop with an interrupt.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWatcher(args[0], opts, debounce, rootOpts.Logger(cmd.ErrOrStderr()), cmd.OutOrStdout())
			if err != nil {
				return WrapExitError(ExitCommandError, "watch", err)
			}
			return w.run(cmd.Context())
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "quiet period before regenerating")

	return cmd
}

// watcher regenerates a schema path on change.
type watcher struct {
	path     string
	dir      string // directory being watched
	file     bool   // path is a single definition file
	opts     *GenerateOptions
	debounce time.Duration
	log      *slog.Logger
	out      io.Writer
}

func newWatcher(path string, opts *GenerateOptions, debounce time.Duration, log *slog.Logger, out io.Writer) (*watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &watcher{
		path:     path,
		dir:      path,
		opts:     opts,
		debounce: debounce,
		log:      log,
		out:      out,
	}
	// Editors often replace a file instead of writing it; the parent is
	// watched so the new inode is seen.
	if !info.IsDir() {
		w.dir, w.file = filepath.Dir(path), true
	}
	return w, nil
}

// run blocks until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching", slog.String("path", w.path))
	w.regenerate(ctx)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("definition changed", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			fire = time.After(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", slog.Any("error", err))
		case <-fire:
			fire = nil
			w.regenerate(ctx)
		}
	}
}

func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.file {
		return name == w.path
	}
	return filepath.Dir(name) == w.dir && load.IsDefinition(name)
}

func (w *watcher) regenerate(ctx context.Context) {
	report, err := runGenerate(ctx, w.opts, w.path, w.log)
	if err != nil {
		w.log.Error("generation failed", slog.Any("error", err))
		return
	}
	fmt.Fprintln(w.out, report)
}
