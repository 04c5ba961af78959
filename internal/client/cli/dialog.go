package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminalDialog renders alerts as lines and confirmations as prompts.
type terminalDialog struct {
	reader *bufio.Reader
	out    io.Writer
}

func (d *terminalDialog) Alert(title, message string) {
	fmt.Fprintf(d.out, "%s: %s\n", title, message)
}

func (d *terminalDialog) Confirm(title, message, cancel, ok string) bool {
	answer, err := getSimpleText(d.reader, fmt.Sprintf("%s: %s [%s/%s]", title, message, cancel, ok), d.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case strings.ToLower(ok), "y", "yes":
		return true
	}
	return false
}
