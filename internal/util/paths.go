package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	invalidChars   = regexp.MustCompile(`[\\/*?"<>|]`)
	repeatedDashes = regexp.MustCompile(`-{2,}`)
	repeatedSpaces = regexp.MustCompile(`\s{2,}`)
)

// Windows refuses these as file or folder names.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeSegment makes a single folder name safe on Windows, macOS and
// Linux. Subtitle colons become " - " and other invalid characters become
// dashes. The result may be empty.
func SanitizeSegment(name string) string {
	if name == "" {
		return ""
	}
	safe := controlChars.ReplaceAllString(name, "")
	safe = strings.ReplaceAll(safe, ":", " - ")
	safe = invalidChars.ReplaceAllString(safe, "-")
	safe = repeatedDashes.ReplaceAllString(safe, "-")
	safe = repeatedSpaces.ReplaceAllString(safe, " ")

	// Leading and trailing spaces and dots are not allowed on Windows.
	safe = strings.Trim(safe, " .-")

	if reservedNames[strings.ToUpper(safe)] {
		safe += "_"
	}
	return safe
}

// JoinFolder builds a two-level "publisher/series" folder from raw names.
// Empty segments are dropped, so the result can have one segment or none.
func JoinFolder(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if safe := SanitizeSegment(s); safe != "" {
			parts = append(parts, safe)
		}
	}
	return strings.Join(parts, "/")
}

// FolderSegments splits a folder produced by JoinFolder.
func FolderSegments(folder string) []string {
	folder = strings.Trim(filepath.ToSlash(folder), "/")
	if folder == "" {
		return nil
	}
	return strings.Split(folder, "/")
}

// ValidateOutputRoot checks that root is a writable directory, creating it
// when it does not exist yet.
func ValidateOutputRoot(root string) error {
	if root == "" {
		return fmt.Errorf("output root cannot be empty")
	}
	cleanPath := filepath.Clean(root)

	info, err := os.Stat(cleanPath)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", cleanPath)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(cleanPath, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	default:
		return fmt.Errorf("cannot access path: %w", err)
	}

	if err := checkWritePermission(cleanPath); err != nil {
		return fmt.Errorf("no write permission for %s: %w", cleanPath, err)
	}
	return nil
}

// checkWritePermission checks if we can create a file in dirPath.
func checkWritePermission(dirPath string) error {
	file, err := os.CreateTemp(dirPath, ".comic-sorter-check-*")
	if err != nil {
		return err
	}
	name := file.Name()
	file.Close()
	return os.Remove(name)
}
