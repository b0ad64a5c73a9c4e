package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RevCBH/smux/internal/session"
)

// Report writes err for the user. Refusals to attach are guidance and get a
// single line; anything else is printed with its cause chain and the usage
// of the command that failed.
func Report(w io.Writer, err error, usage string) {
	if err == nil {
		return
	}

	if session.IsPrecondition(err) {
		fmt.Fprintln(w, err)
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)

	if trace := diagnosticTrace(err); len(trace) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Diagnostic trace:")
		for i, line := range trace {
			fmt.Fprintf(w, "  %d. %s\n", i+1, line)
		}
	}

	if usage = strings.TrimSpace(usage); usage != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, usage)
	}
}

// diagnosticTrace flattens the wrapped causes of err, outermost first.
// Joined errors contribute each of their members.
func diagnosticTrace(err error) []string {
	var trace []string
	var walk func(e error)
	walk = func(e error) {
		for e != nil {
			trace = append(trace, fmt.Sprintf("%T: %v", e, e))
			if joined, ok := e.(interface{ Unwrap() []error }); ok {
				for _, member := range joined.Unwrap() {
					walk(member)
				}
				return
			}
			e = errors.Unwrap(e)
		}
	}
	walk(err)
	return trace
}
