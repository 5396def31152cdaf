package plan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks the single yes/no question that gates the whole batch.
// Only an explicit "y" or "yes" (any case) proceeds; everything else,
// including EOF, declines.
func Confirm(in io.Reader, out io.Writer, deletions int) (bool, error) {
	fmt.Fprintf(out, "Delete %d record(s)? [y/N]: ", deletions)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		// EOF with no input counts as a decline, not a failure.
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
