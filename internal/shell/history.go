package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// MaxHistoryEntries caps persisted prompt history.
const MaxHistoryEntries = 200

// LoadHistory reads prompt history from path, one entry per line,
// blank lines skipped. A missing file is an empty history, not an
// error.
func LoadHistory(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return trimHistory(entries), nil
}

// SaveHistory writes the most recent entries to path, creating parent
// directories as needed.
func SaveHistory(path string, entries []string) error {
	entries = trimHistory(entries)
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func trimHistory(entries []string) []string {
	if len(entries) > MaxHistoryEntries {
		return entries[len(entries)-MaxHistoryEntries:]
	}
	return entries
}
