package services

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"
)

// HasIncludeEntries reports whether the include file exists, is non-empty
// and holds at least one line that is neither blank nor a # comment.
func HasIncludeEntries(fs afero.Fs, path string) (bool, error) {
	f, err := fs.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return true, nil
	}
	return false, scanner.Err()
}
