package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/openscad-forge/customizer/internal/customizer"
)

const watchDebounce = 250 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <model.scad>",
		Short: "Watch a model and report schema changes",
		Long: `Watch an OpenSCAD file and re-parse it on every save, printing a
summary of added, removed, and changed parameters. Useful while
annotating a model: the feedback loop shows how each edit lands in the
Customizer panel.`,
		Example: `  customizer watch plate.scad`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			schema, path, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s (%d parameters)\n", path, len(schema.Parameters))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchModel(ctx, cmdCtx, path, schema, out)
		},
	}
	return cmd
}

func watchModel(ctx context.Context, cmdCtx *CommandContext, path string, last *customizer.Schema, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on
	// save and the inode watch would go stale.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", err)

		case <-reload:
			content, err := os.ReadFile(path)
			if err != nil {
				cmdCtx.Logger.Warn("failed to re-read model", "path", path, "error", err)
				continue
			}
			next := customizer.Parse(string(content))
			for _, line := range diffSchemas(last, next) {
				fmt.Fprintln(out, line)
			}
			last = next
		}
	}
}

// diffSchemas summarizes parameter-level changes between two parses.
func diffSchemas(prev, next *customizer.Schema) []string {
	var lines []string

	names := make(map[string]bool, len(prev.Parameters)+len(next.Parameters))
	for name := range prev.Parameters {
		names[name] = true
	}
	for name := range next.Parameters {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		before, hadBefore := prev.Parameters[name]
		after, hasAfter := next.Parameters[name]
		switch {
		case !hadBefore:
			lines = append(lines, fmt.Sprintf("+ %s (%s, default %s)", name, after.Type, after.Default.String()))
		case !hasAfter:
			lines = append(lines, fmt.Sprintf("- %s", name))
		case !reflect.DeepEqual(before, after):
			lines = append(lines, fmt.Sprintf("~ %s: %s", name, describeParamChange(before, after)))
		}
	}

	if len(lines) == 0 {
		lines = append(lines, "reparsed, no parameter changes")
	}
	return lines
}

func describeParamChange(before, after *customizer.Parameter) string {
	var changes []string
	if before.Default.String() != after.Default.String() {
		changes = append(changes, fmt.Sprintf("default %s -> %s", before.Default.String(), after.Default.String()))
	}
	if before.Type != after.Type {
		changes = append(changes, fmt.Sprintf("type %s -> %s", before.Type, after.Type))
	}
	if before.UIType != after.UIType {
		changes = append(changes, fmt.Sprintf("control %s -> %s", before.UIType, after.UIType))
	}
	if before.Group != after.Group {
		changes = append(changes, fmt.Sprintf("group %q -> %q", before.Group, after.Group))
	}
	if len(changes) == 0 {
		return "annotation changed"
	}
	return strings.Join(changes, ", ")
}
