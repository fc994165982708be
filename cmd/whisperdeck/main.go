package main

import (
	"os"
	"strings"

	"whisperdeck/internal/cli"
)

func isUserIndex(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// rewriteDirectCopyArgs makes `whisperdeck <user-index>` work like `whisperdeck copy <user-index>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (e.g. `whisperdeck --dir ... 2`), so this looks for the
// first positional token, not just argv[1].
func rewriteDirectCopyArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so the index is never swallowed.
	valueFlags := map[string]bool{
		"--dir":       true,
		"--backend":   true,
		"--clipboard": true,
		"--log-level": true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty":    true,
		"--ephemeral": true,
		"--print":     true,
	}

	insertCopy := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "copy")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isUserIndex(argv[i+1]) {
				return insertCopy(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if isUserIndex(a) {
			return insertCopy(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectCopyArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
