package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns version from environment variable or calculates from git
func GetVersion() string {
	// Set by CI/CD
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	baseVersion := getBaseVersion()
	commitCount := getGitCommitCount()

	if commitCount > 0 {
		return baseVersion + "." + strconv.Itoa(commitCount)
	}

	return baseVersion
}

// getBaseVersion reads the base version from a VERSION file in the working
// directory or one of its two parents
func getBaseVersion() string {
	candidates := []string{
		"VERSION",
		filepath.Join("..", "VERSION"),
		filepath.Join("..", "..", "VERSION"),
	}
	for _, path := range candidates {
		if content, err := os.ReadFile(path); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return fallbackVersion
}

// getGitCommitCount gets the total commit count from git
func getGitCommitCount() int {
	cmd := exec.Command("git", "rev-list", "--count", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return 0
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0
	}

	return count
}
