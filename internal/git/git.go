package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitStatus reports how the vault files relate to an enclosing git repository
type GitStatus struct {
	IsRepo    bool
	Tracked   []string // Vault files committed to git (bad)
	Ignored   []string // Vault files in .gitignore (good)
	Unignored []string // Vault files not in .gitignore (warning)
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(ctx context.Context, workDir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	return cmd.Run() == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(ctx context.Context, workDir, path string) bool {
	cmd := exec.CommandContext(ctx, "git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(ctx context.Context, workDir, path string) bool {
	cmd := exec.CommandContext(ctx, "git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	// git check-ignore returns exit code 0 if file is ignored
	return cmd.Run() == nil
}

// CheckGitIntegration checks whether the vault files could leak through git
func CheckGitIntegration(ctx context.Context, workDir string, files []string) (*GitStatus, error) {
	status := &GitStatus{}

	if _, err := exec.LookPath("git"); err != nil {
		return status, nil
	}
	if !IsGitRepo(ctx, workDir) {
		return status, nil
	}
	status.IsRepo = true

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if IsTracked(ctx, workDir, file) {
			status.Tracked = append(status.Tracked, file)
		}
		if IsIgnored(ctx, workDir, file) {
			status.Ignored = append(status.Ignored, file)
		} else {
			status.Unignored = append(status.Unignored, file)
		}
	}

	return status, nil
}

// FormatGitStatus formats git status for display
func FormatGitStatus(status *GitStatus) string {
	if status == nil || !status.IsRepo {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit Integration:\n")

	if len(status.Tracked) > 0 {
		result.WriteString(fmt.Sprintf("   error: %d vault file(s) tracked by git:\n", len(status.Tracked)))
		for _, file := range status.Tracked {
			result.WriteString(fmt.Sprintf("      - %s (run: git rm --cached %s)\n", file, file))
		}
	} else {
		result.WriteString("   ok: no vault files tracked by git\n")
	}

	trackedSet := make(map[string]bool, len(status.Tracked))
	for _, f := range status.Tracked {
		trackedSet[f] = true
	}
	for _, file := range status.Unignored {
		// Tracked files are already reported above
		if !trackedSet[file] {
			result.WriteString(fmt.Sprintf("   warning: %s not in .gitignore (add to .gitignore)\n", file))
		}
	}
	if len(status.Unignored) == 0 && len(status.Ignored) > 0 {
		result.WriteString(fmt.Sprintf("   ok: %d vault file(s) in .gitignore\n", len(status.Ignored)))
	}

	return result.String()
}
