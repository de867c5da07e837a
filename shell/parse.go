package shell

import (
	"errors"
	"strings"
)

// ErrMissingRedirectTarget is returned when ">" or ">>" ends the line
var ErrMissingRedirectTarget = errors.New("bash: syntax error near unexpected token `newline'")

// Invocation is one parsed input line
type Invocation struct {
	Name string
	// Args are the positional arguments in order, flags excluded
	Args []string
	// Words are every token after the name in order, flags included
	Words    []string
	Flags    Flags
	Redirect *Redirect
}

// Redirect sends a command's output to a file instead of the transcript
type Redirect struct {
	Path   string
	Append bool
}

// Flags are the unquoted dash-prefixed tokens of an invocation
type Flags []string

// Has reports whether short flag letter appears in any single-dash cluster,
// so "-rf" has both 'r' and 'f'
func (f Flags) Has(letter byte) bool {
	for _, flag := range f {
		if strings.HasPrefix(flag, "--") {
			continue
		}
		if strings.IndexByte(flag[1:], letter) >= 0 {
			return true
		}
	}
	return false
}

// Contains reports whether flag appears verbatim
func (f Flags) Contains(flag string) bool {
	for _, v := range f {
		if v == flag {
			return true
		}
	}
	return false
}

type token struct {
	text   string
	quoted bool
}

// tokenize splits input on unquoted whitespace. Single and double quotes group
// words and are stripped; an unterminated quote runs to the end of the line.
func tokenize(input string) []token {
	var (
		tokens []token
		cur    strings.Builder
		quote  rune
		inWord bool
		quoted bool
	)
	flush := func() {
		if inWord {
			tokens = append(tokens, token{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		inWord, quoted = false, false
	}

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			inWord, quoted = true, true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	flush()
	return tokens
}

// Parse turns an input line into an Invocation. Unquoted tokens of the form
// ">", ">>", ">file" or ">>file" redirect output; the last redirect wins.
func Parse(input string) (*Invocation, error) {
	tokens := tokenize(input)
	inv := &Invocation{}
	if len(tokens) == 0 {
		return inv, nil
	}
	inv.Name = tokens[0].text

	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if !tok.quoted && strings.HasPrefix(tok.text, ">") {
			redirect := &Redirect{Path: strings.TrimPrefix(tok.text, ">")}
			if strings.HasPrefix(redirect.Path, ">") {
				redirect.Append = true
				redirect.Path = redirect.Path[1:]
			}
			if redirect.Path == "" {
				if i+1 >= len(tokens) {
					return nil, ErrMissingRedirectTarget
				}
				i++
				redirect.Path = tokens[i].text
			}
			inv.Redirect = redirect
			continue
		}

		inv.Words = append(inv.Words, tok.text)
		if !tok.quoted && len(tok.text) > 1 && tok.text[0] == '-' {
			if !inv.Flags.Contains(tok.text) {
				inv.Flags = append(inv.Flags, tok.text)
			}
			continue
		}
		inv.Args = append(inv.Args, tok.text)
	}
	return inv, nil
}
