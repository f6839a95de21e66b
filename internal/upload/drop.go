package upload

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

var errEmptyDrop = errors.New("nothing was dropped")

// DroppedPath turns the text a terminal inserts for dropped files into a path.
// Terminals quote or backslash-escape the path the way a POSIX shell reads it,
// and some send a file:// URL. Only the first dropped file is used.
func DroppedPath(dropped string) (string, error) {
	words, err := shell.Fields(strings.TrimSpace(dropped), nil)
	if err != nil {
		return "", fmt.Errorf("shell.Fields > %w", err)
	}
	if len(words) == 0 {
		return "", errEmptyDrop
	}

	first := words[0]
	if !strings.HasPrefix(first, "file://") {
		return first, nil
	}
	u, err := url.Parse(first)
	if err != nil {
		return "", fmt.Errorf("url.Parse(%s) > %w", first, err)
	}
	if u.Path == "" {
		return "", fmt.Errorf("no path in %s", first)
	}
	return u.Path, nil
}
