package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/illarion/keeppass/internal/config"
)

// Export writes all credentials as YAML to path, or stdout when path is empty
func Export(ctx context.Context, cfg *config.Config, path string) {
	keeper, _ := unlock(cfg)

	var w io.Writer = os.Stdout
	var buf bytes.Buffer
	if path != "" {
		w = &buf
	}

	n, err := keeper.Export(ctx, w)
	if err != nil {
		HandleError(err)
	}

	if path != "" {
		if err := atomic.WriteFile(path, &buf); err != nil {
			HandleError(fmt.Errorf("failed to write %s: %w", path, err))
		}
		if err := os.Chmod(path, 0600); err != nil {
			HandleError(err)
		}
		fmt.Fprintf(os.Stderr, "exported %d credential(s) to %s\n", n, path)
	}
	fmt.Fprintln(os.Stderr, "warning: the export contains passwords in clear text")
}

// Import adds credentials from a YAML export
func Import(ctx context.Context, cfg *config.Config, path string) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: keeppass import <file>")
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		HandleError(err)
	}
	defer f.Close()

	keeper, _ := unlock(cfg)

	result, err := keeper.Import(ctx, f)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("imported: %d\n", len(result.Added))
	if len(result.Duplicates) > 0 {
		fmt.Printf("skipped (already exists): %d\n", len(result.Duplicates))
		for _, w := range result.Duplicates {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(result.Invalid) > 0 {
		fmt.Printf("rejected (line breaks in values): %d\n", len(result.Invalid))
		for _, w := range result.Invalid {
			fmt.Printf("  - %s\n", w)
		}
	}
}
