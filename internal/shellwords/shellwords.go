// Package shellwords converts between configured command strings and argv
// slices. Nothing in docstrap hands a string to a shell; command strings from
// configuration are split here and executed as explicit argument lists.
package shellwords

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned by Split when a quote is left open.
var ErrUnterminatedQuote = errors.New("unterminated quote in command string")

type quoteState int

const (
	unquoted quoteState = iota
	singleQuoted
	doubleQuoted
)

// Split tokenizes a command string the way a POSIX shell would for simple
// words: single quotes are literal, double quotes honor \" \\ and \$, and a
// backslash outside quotes escapes the next character. No expansion happens.
func Split(input string) ([]string, error) {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		state   = unquoted
		escaped bool
	)

	flush := func() {
		if inWord {
			words = append(words, word.String())
			word.Reset()
			inWord = false
		}
	}

	for _, r := range input {
		if escaped {
			if state == doubleQuoted && r != '"' && r != '\\' && r != '$' {
				word.WriteRune('\\')
			}
			word.WriteRune(r)
			escaped = false
			continue
		}

		switch state {
		case singleQuoted:
			if r == '\'' {
				state = unquoted
			} else {
				word.WriteRune(r)
			}
			continue
		case doubleQuoted:
			switch r {
			case '"':
				state = unquoted
			case '\\':
				escaped = true
			default:
				word.WriteRune(r)
			}
			continue
		}

		switch r {
		case '\\':
			escaped = true
			inWord = true
		case '\'':
			state = singleQuoted
			inWord = true
		case '"':
			state = doubleQuoted
			inWord = true
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	if escaped {
		// Trailing backslash is kept literally.
		word.WriteRune('\\')
		if state == doubleQuoted {
			return nil, ErrUnterminatedQuote
		}
	}
	if state != unquoted {
		return nil, ErrUnterminatedQuote
	}
	flush()

	return words, nil
}

// Join renders argv for display, single-quoting words that a shell would
// otherwise split or interpret. The result is for humans and logs only.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

// Quote returns s unchanged when it is a plain word, otherwise a
// single-quoted form with embedded single quotes escaped.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\r'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
