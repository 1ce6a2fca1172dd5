package locations

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed data/countries.txt
var dataFS embed.FS

const defaultListPath = "data/countries.txt"

var (
	defaultOnce      sync.Once
	defaultLocations []string
	defaultErr       error
)

// DefaultLocations returns a copy of the embedded country list.
func DefaultLocations() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		locations, err := LoadLocations(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultLocations = locations
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultLocations...), nil
}

// LoadLocations reads one location per line. Blank lines and # comments are
// skipped, duplicates dropped, and file order kept.
func LoadLocations(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("locations: missing reader")
	}

	scanner := bufio.NewScanner(r)
	locations := make([]string, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		locations = append(locations, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}
