package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseCommand splits "<prefix><name> [args...]" into name and args. The name
// has to follow the prefix directly, so "/ reload" is not a command.
func ParseCommand(prefix, content string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	rest := content[len(prefix):]
	first, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || unicode.IsSpace(first) {
		return "", nil, false
	}

	fields := strings.Fields(rest)
	return fields[0], fields[1:], true
}
