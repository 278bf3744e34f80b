package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/assemble"
	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/fragment"
	"github.com/dgallion1/outliner/internal/outline"
)

var (
	extractOut     string
	extractFormat  string
	extractWorkers int
	extractWatch   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [files or directories...]",
	Short: "Extract outlines from documents on disk",
	Long: `Extract outlines from one or more documents and write the results
next to the inputs (or under --out). Directories are scanned for
supported files. A failure on one file does not stop the rest of the
batch.

With --watch, the given directories are monitored and newly created
files are processed as they appear, until interrupted.

Examples:
  outliner extract report.pdf
  outliner extract docs/ --format csv --out results/
  outliner extract inbox/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewTextHandler(os.Stderr, nil))

		format, err := assemble.ParseFormat(extractFormat)
		if err != nil {
			return err
		}
		oc, err := config.Load().Outline()
		if err != nil {
			return err
		}
		extractor, err := outline.NewExtractor(oc)
		if err != nil {
			return err
		}

		files, dirs, err := collectInputs(args)
		if err != nil {
			return err
		}
		if len(files) == 0 && !extractWatch {
			return fmt.Errorf("no supported files found in %v", args)
		}

		b := &batch{
			extractor: extractor,
			format:    format,
			outDir:    extractOut,
			log:       log,
		}
		failures := b.run(files, extractWorkers)

		if extractWatch {
			if len(dirs) == 0 {
				return fmt.Errorf("--watch requires at least one directory argument")
			}
			if err := b.watch(cmd.Context(), dirs); err != nil {
				return err
			}
			return nil
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d files failed", failures, len(files))
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractOut, "out", "", "Output directory (default: next to each input)")
	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "Output format: json, csv or text")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 4, "Number of files processed in parallel")
	extractCmd.Flags().BoolVar(&extractWatch, "watch", false, "Watch directories and process new files")
}

// collectInputs expands args into supported files plus the directories
// named directly (for --watch).
func collectInputs(args []string) (files, dirs []string, err error) {
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		dirs = append(dirs, arg)
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(arg, e.Name())
			if fragment.IsSupportedExtension(path) {
				files = append(files, path)
			}
		}
	}
	return files, dirs, nil
}

type batch struct {
	extractor *outline.Extractor
	format    assemble.Format
	outDir    string
	log       *slog.Logger
}

// run processes files with bounded concurrency and returns the number
// of failures.
func (b *batch) run(files []string, workers int) int {
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, path := range files {
		sem <- struct{}{}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := b.processFile(path); err != nil {
				b.log.Error("extract failed", "file", path, "error", err)
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(path)
	}
	wg.Wait()
	return failures
}

func (b *batch) processFile(path string) error {
	src, err := fragment.ForFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	frags, err := src.Extract(f, filepath.Base(path))
	f.Close()
	if err != nil {
		return err
	}

	result := b.extractor.Extract(frags)

	outDir := b.outDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath, err := assemble.WriteFile(outDir, path, &result, b.format)
	if err != nil {
		return err
	}
	b.log.Info("outline written",
		"file", path,
		"out", outPath,
		"title", result.Title,
		"headings", len(result.Headings))
	return nil
}

// watch processes new supported files as they appear in dirs. Blocks
// until the context is cancelled.
func (b *batch) watch(ctx context.Context, dirs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		b.log.Info("watching", "dir", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Create events can fire before the file is fully
			// written; Write is accepted too and the last one wins.
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !fragment.IsSupportedExtension(event.Name) {
				continue
			}
			if err := b.processFile(event.Name); err != nil {
				b.log.Error("extract failed", "file", event.Name, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.log.Error("watch error", "error", err)
		}
	}
}
