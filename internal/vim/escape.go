package vim

import (
	"regexp"
	"strings"
)

// keyNotation matches key names like <cr> or <esc> inside a command.
var keyNotation = regexp.MustCompile(`<\b(\w+)\b>`)

// escapeRawCommand keeps --remote-send from turning key names in a command
// into keystrokes. "<esc>" is sent as `\<esc_<bs>>`, which the command line
// receives as `\<esc>`, the notation vim expands inside a double-quoted
// string.
func escapeRawCommand(s string) string {
	return keyNotation.ReplaceAllString(s, `\<${1}_<bs>>`)
}

func escapeFeedKeys(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
