package command

import (
	"fmt"
	"strings"
)

// FormatDisplay renders a built argument vector as a readable multi-line
// shell command. Flag/value pairs stay on one line and values containing
// spaces are quoted; lines are joined with backslash continuations.
func FormatDisplay(cmd []string) string {
	if len(cmd) == 0 {
		return ""
	}

	parts := []string{cmd[0]}
	i := 1
	for i < len(cmd) {
		if i < len(cmd)-1 && strings.HasPrefix(cmd[i], "-") && !strings.HasPrefix(cmd[i+1], "-") {
			value := cmd[i+1]
			if strings.Contains(value, " ") {
				parts = append(parts, fmt.Sprintf("%s %q", cmd[i], value))
			} else {
				parts = append(parts, cmd[i]+" "+value)
			}
			i += 2
			continue
		}
		parts = append(parts, cmd[i])
		i++
	}

	return strings.Join(parts, " \\\n  ")
}
