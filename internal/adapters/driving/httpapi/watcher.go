package httpapi

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// debounceWindow absorbs the write bursts editors and the analyzer
// produce when rewriting the analysis file.
const debounceWindow = 500 * time.Millisecond

// Watch regenerates the report whenever the analysis input file
// changes. It watches the containing directory because the analyzer
// replaces the file rather than appending to it. Blocks until the
// context is cancelled.
func (s *Server) Watch(ctx context.Context, inputPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	dir := filepath.Dir(inputPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(inputPath)
	var timer *time.Timer
	regen := make(chan struct{}, 1)

	logger.Info("Watching %s for changes", inputPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})

		case <-regen:
			insights, err := s.report.Generate(ctx)
			switch {
			case errors.Is(err, domain.ErrMissingInput):
				logger.Warn("Analysis file removed, keeping previous report")
			case err != nil:
				logger.Error("Regenerating report: %v", err)
			default:
				logger.Info("Report regenerated with %d insights", len(insights))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher: %v", err)
		}
	}
}
