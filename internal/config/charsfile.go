package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// LoadCharsFile reads the characters of a set from a text file. Line breaks
// and other whitespace are dropped, so a file may spread the characters
// over several lines.
func LoadCharsFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only chars file.
			_ = cerr
		}
	}()

	var b strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		for _, r := range scanner.Text() {
			if unicode.IsSpace(r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("chars file is empty")
	}
	return b.String(), nil
}

func resolveRelative(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
