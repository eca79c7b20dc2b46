package executor

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitCommand tokenizes a rendered command string back into an argument
// vector. It understands single and double quotes and backslash escapes
// outside single quotes, enough to round-trip the preview rendering. An
// unterminated quote is an error.
func SplitCommand(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash")
			}
			next := runes[i+1]
			// A backslash-newline is a line continuation: swallow it.
			if next == '\n' {
				i += 2
				continue
			}
			current.WriteRune(next)
			inToken = true
			i += 2
		case c == '\'':
			end := indexRune(runes, i+1, '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single quote")
			}
			current.WriteString(string(runes[i+1 : end]))
			inToken = true
			i = end + 1
		case c == '"':
			i++
			for {
				if i >= len(runes) {
					return nil, fmt.Errorf("unterminated double quote")
				}
				if runes[i] == '"' {
					i++
					break
				}
				if runes[i] == '\\' && i+1 < len(runes) {
					current.WriteRune(runes[i+1])
					i += 2
					continue
				}
				current.WriteRune(runes[i])
				i++
			}
			inToken = true
		case unicode.IsSpace(c):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
			i++
		default:
			current.WriteRune(c)
			inToken = true
			i++
		}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
