package shell

import (
	"strings"
	"unicode"

	"github.com/brettbedarf/webcli/filesystem"
)

// Complete returns candidates for the last token of input. The first token
// completes against command names; arguments of path-taking commands complete
// against tree entries, with a trailing "/" on directories; theme arguments
// complete against theme names.
func (s *Session) Complete(input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	words := strings.Fields(input)
	trailingSpace := input != "" && unicode.IsSpace(rune(input[len(input)-1]))
	partial := ""
	if len(words) > 0 && !trailingSpace {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	if len(words) == 0 {
		var out []string
		for _, cmd := range Commands() {
			if strings.HasPrefix(cmd.String(), partial) {
				out = append(out, cmd.String())
			}
		}
		return out
	}

	cmd, found := LookupCommand(words[0])
	switch {
	case !found:
		return nil
	case cmd == CmdTheme:
		var out []string
		for _, t := range Themes() {
			if strings.HasPrefix(t.String(), partial) {
				out = append(out, t.String())
			}
		}
		return out
	case cmd.completesPaths():
		return s.completePath(partial)
	}
	return nil
}

// completePath lists entries of the directory named by partial's leading
// segments whose names start with its last segment
func (s *Session) completePath(partial string) []string {
	dirPart, prefix := "", partial
	if i := strings.LastIndexByte(partial, '/'); i >= 0 {
		dirPart, prefix = partial[:i+1], partial[i+1:]
	}

	dir, err := s.fs.Resolve(s.expand(dirPart), s.cwd)
	if dirPart == "" {
		dir, err = s.fs.Resolve(".", s.cwd)
	}
	if err != nil || !dir.IsDir() {
		return nil
	}

	var out []string
	dir.AscendChildren(prefix, func(name string, id filesystem.NodeID) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			return true
		}
		candidate := dirPart + name
		if n, exists := s.fs.Node(id); exists && n.IsDir() {
			candidate += "/"
		}
		out = append(out, candidate)
		return true
	})
	return out
}
