package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

var gameIDToken = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// LoadGameIDs reads a games file. See ParseGameIDs for the format.
func LoadGameIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrGamesMissing, path)
		}
		return nil, fmt.Errorf("open games file: %w", err)
	}
	defer f.Close()
	return ParseGameIDs(f)
}

// ParseGameIDs reads game ids, one or more per line. Text after # or // is a
// comment. Tokens may be quoted and comma separated; tokens that are not
// plain ids are ignored. Order and repeats are kept.
func ParseGameIDs(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		for _, tok := range fields {
			tok = strings.Trim(tok, `"'`)
			if gameIDToken.MatchString(tok) {
				ids = append(ids, tok)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read games: %w", err)
	}
	return ids, nil
}
