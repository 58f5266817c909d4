// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/typemaster/internal/model"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadTiers reads <difficulty>.txt files from dir. Missing files are skipped;
// a tier is returned only when at least one word survives the filter.
func LoadTiers(dir string, filter FilterFunc) (map[model.Difficulty][]string, error) {
	tiers := map[model.Difficulty][]string{}
	for _, d := range model.Difficulties {
		path := filepath.Join(dir, string(d)+".txt")
		words, err := LoadWords(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s word list: %w", d, err)
		}
		words = Apply(words, filter)
		if len(words) == 0 {
			return nil, fmt.Errorf("%s word list has no usable words: %s", d, path)
		}
		tiers[d] = words
	}
	return tiers, nil
}
