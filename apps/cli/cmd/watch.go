package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/tokenscrub/packages/output"
	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

// watchDocument re-runs the redactor each time the document is written or
// replaced, until ctx is cancelled. The parent directory is watched because
// exporters and the transactional write both replace the file.
func watchDocument(ctx context.Context, cmd *cobra.Command, r *redact.Redactor, path string, formatter output.Formatter, logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return redact.IOError("watch", path, fmt.Errorf("failed to create file watcher: %w", err))
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return redact.IOError("watch", path, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return redact.IOError("watch", filepath.Dir(target), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes (Ctrl+C to stop)...\n", path)

	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Debounce: reset timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			logger.Debug("document changed", "path", path)
			result, err := r.Redact(ctx, path)
			if err != nil {
				formatter.FormatError(err)
			} else if result.Total > 0 {
				formatter.FormatRedaction(result)
			}
			if err := formatter.Flush(); err != nil {
				return redact.IOError("write report", "", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
