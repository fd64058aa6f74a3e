package usersearch

import (
	"fmt"
	"io"
)

// PrintResults writes one "User: <name>" line per name followed by the total,
// or a not-found message when names is empty.
func PrintResults(w io.Writer, term string, names []string) error {
	if len(names) == 0 {
		_, err := fmt.Fprintf(w, "No users found matching '%s'\n", term)
		return err
	}

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "User: %s\n", name); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Total: %d user(s) found\n", len(names))

	return err
}
