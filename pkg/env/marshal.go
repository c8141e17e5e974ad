package env

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// MarshalMap renders vars as .env content with keys sorted.
// Empty values are skipped; values containing whitespace, quotes or '#' are double-quoted.
func MarshalMap(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k, v := range vars {
		if k == "" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, quote(vars[k]))
	}
	return b.String()
}

func quote(v string) string {
	if !strings.ContainsAny(v, " \t\"'#\n\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(v) + `"`
}

// Update merges vars into the .env file at path, creating it if needed.
func Update(path string, vars map[string]string) error {
	current := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		current, err = godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	for k, v := range vars {
		current[k] = v
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create env directory: %w", err)
	}
	return os.WriteFile(path, []byte(MarshalMap(current)), 0600)
}
