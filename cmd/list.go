package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/keeppass/internal/config"
)

// List shows all stored credentials in website order
func List(_ context.Context, cfg *config.Config, websitesOnly bool) {
	_, creds := unlock(cfg)

	if websitesOnly {
		for _, r := range creds.List() {
			fmt.Println(r.Website)
		}
		return
	}
	listCredentials(creds)
}

// formatSize formats a file size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
