// Package textio loads the flat line-aligned text files consumed by an
// evaluation run.
package textio

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// #region load
// LoadLines reads a UTF-8 text file, one sample per line. Line endings are
// stripped; a trailing newline does not produce an extra empty sample.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// #endregion load

// #region check
// CheckFile verifies that a path passed via the named flag exists and is a
// regular file. The error names both so the user can tell which argument is
// broken.
func CheckFile(flagName, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file for --%s (%q) does not exist: %w", flagName, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("file for --%s (%q) is a directory", flagName, path)
	}
	return nil
}

// #endregion check
