// Package envfile parses dotenv-style KEY=VALUE documents into secret maps.
//
// Parsing is total and best-effort: blank lines, comments and malformed lines
// contribute nothing, and no input ever produces an error. The same semantics
// apply to locally-read and remotely-fetched secret documents.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/trusteehq/trustee/interfaces"
)

// Parse extracts KEY=VALUE entries from content. A line is ignored if, after
// trimming surrounding whitespace, it is empty, begins with '#', or contains
// no '='. The key is the trimmed text left of the first '='; the value is the
// trimmed text right of it, stripped of one layer of matching surrounding
// single or double quotes.
func Parse(content string) interfaces.SecretMap {
	secrets := make(interfaces.SecretMap)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		secrets[key] = unquote(strings.TrimSpace(value))
	}

	return secrets
}

// Load reads and parses the file at path. Returns os.ErrNotExist-wrapped
// errors when the file is absent so callers can distinguish a missing file
// from an unreadable one.
func Load(path string) (interfaces.SecretMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// unquote strips one layer of matching surrounding quotes, if present.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
