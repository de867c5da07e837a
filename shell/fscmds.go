package shell

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/brettbedarf/webcli/filesystem"
)

func (s *Session) ls(inv *Invocation) result {
	target := "."
	if len(inv.Args) > 0 {
		target = inv.Args[0]
	}
	long := inv.Flags.Has('l')
	loc := s.clock.Now().Location()

	entries, err := s.fs.List(s.cwd, s.expand(target), inv.Flags.Has('a'))
	if err != nil {
		return fail("ls: cannot access '%s': %s", target, reason(err))
	}

	lines := make([]string, 0, len(entries))
	for _, n := range entries {
		if long {
			lines = append(lines, longEntry(n, loc))
		} else {
			lines = append(lines, shortEntry(n))
		}
	}
	return ok(strings.Join(lines, "\n"))
}

func (s *Session) cd(inv *Invocation) result {
	target := s.cfg.Home
	if len(inv.Args) > 0 {
		target = inv.Args[0]
	}
	echo := false
	if target == "-" {
		if s.prevPath == "" {
			return fail("cd: OLDPWD not set")
		}
		target, echo = s.prevPath, true
	}

	expanded := s.expand(target)
	n, err := s.fs.Chdir(s.cwd, expanded)
	if err != nil {
		return fail("cd: %s: %s", target, reason(err))
	}
	s.prevPath = s.path
	s.cwd = n.NodeID()
	s.path = filesystem.ComposePath(s.path, expanded)
	if echo {
		return ok(s.path)
	}
	return ok("")
}

// eachOperand runs fn for every positional argument and joins the failures
func eachOperand(args []string, fn func(arg string) string) result {
	var errs []string
	for _, arg := range args {
		if msg := fn(arg); msg != "" {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return fail("%s", strings.Join(errs, "\n"))
	}
	return ok("")
}

func (s *Session) mkdir(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("mkdir: missing operand")
	}
	return eachOperand(inv.Args, func(arg string) string {
		if _, err := s.fs.MakeDirectory(s.cwd, s.expand(arg)); err != nil {
			return fmt.Sprintf("mkdir: cannot create directory '%s': %s", arg, reason(err))
		}
		return ""
	})
}

func (s *Session) rmdir(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("rmdir: missing operand")
	}
	return eachOperand(inv.Args, func(arg string) string {
		if err := s.fs.Rmdir(s.cwd, s.expand(arg)); err != nil {
			return fmt.Sprintf("rmdir: failed to remove '%s': %s", arg, reason(err))
		}
		return ""
	})
}

func (s *Session) rm(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("rm: missing operand")
	}
	recursive := inv.Flags.Has('r') || inv.Flags.Has('R')
	force := inv.Flags.Has('f')

	return eachOperand(inv.Args, func(arg string) string {
		p := s.expand(arg)
		n, err := s.fs.Resolve(p, s.cwd)
		if err != nil {
			if force {
				return ""
			}
			return fmt.Sprintf("rm: cannot remove '%s': %s", arg, reason(err))
		}
		if n.IsDir() && !recursive {
			return fmt.Sprintf("rm: cannot remove '%s': %s", arg, reason(syscall.EISDIR))
		}
		if err := s.fs.Remove(s.cwd, p, recursive); err != nil {
			return fmt.Sprintf("rm: cannot remove '%s': %s", arg, reason(err))
		}
		return ""
	})
}

func (s *Session) touch(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("touch: missing file operand")
	}
	return eachOperand(inv.Args, func(arg string) string {
		p := s.expand(arg)
		if _, err := s.fs.Resolve(p, s.cwd); err == nil {
			return ""
		}
		if _, err := s.fs.CreateFile(s.cwd, p, nil); err != nil {
			return fmt.Sprintf("touch: cannot touch '%s': %s", arg, reason(err))
		}
		return ""
	})
}

func (s *Session) mv(inv *Invocation) result {
	if len(inv.Args) < 2 {
		return fail("mv: missing file operand")
	}
	src, dst := inv.Args[0], inv.Args[1]
	if _, err := s.fs.Move(s.cwd, s.expand(src), s.expand(dst)); err != nil {
		if errno, _ := filesystem.AsErrno(err); errno == syscall.EINVAL {
			return fail("mv: cannot move '%s' to a subdirectory of itself, '%s'", src, dst)
		}
		return fail("mv: cannot move '%s' to '%s': %s", src, dst, reason(err))
	}
	// the current directory may have been inside the moved subtree
	s.path = s.fs.Path(s.cwd)
	return ok("")
}

func (s *Session) cp(inv *Invocation) result {
	if len(inv.Args) < 2 {
		return fail("cp: missing file operand")
	}
	src, dst := inv.Args[0], inv.Args[1]
	if _, err := s.fs.Copy(s.cwd, s.expand(src), s.expand(dst)); err != nil {
		if errno, _ := filesystem.AsErrno(err); errno == syscall.EINVAL {
			return fail("cp: cannot copy a directory, '%s', into itself, '%s'", src, dst)
		}
		return fail("cp: cannot copy '%s' to '%s': %s", src, dst, reason(err))
	}
	return ok("")
}

func (s *Session) cat(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("cat: missing file operand")
	}
	name := inv.Args[0]
	content, err := s.fs.ReadFile(s.cwd, s.expand(name))
	if err != nil {
		return fail("cat: %s: %s", name, reason(err))
	}
	return ok(strings.TrimSuffix(string(content), "\n"))
}

func (s *Session) grep(inv *Invocation) result {
	if len(inv.Args) < 2 {
		return fail("grep: missing arguments\nUsage: grep <pattern> <file>")
	}
	pattern, name := inv.Args[0], inv.Args[1]
	content, err := s.fs.ReadFile(s.cwd, s.expand(name))
	if err != nil {
		return fail("grep: %s: %s", name, reason(err))
	}

	ignoreCase := inv.Flags.Has('i')
	numbered := inv.Flags.Has('n')
	needle := pattern
	if ignoreCase {
		needle = strings.ToLower(pattern)
	}

	var matches []string
	for i, line := range strings.Split(strings.TrimSuffix(string(content), "\n"), "\n") {
		hay := line
		if ignoreCase {
			hay = strings.ToLower(line)
		}
		if !strings.Contains(hay, needle) {
			continue
		}
		if numbered {
			line = fmt.Sprintf("%d:%s", i+1, line)
		}
		matches = append(matches, line)
	}
	if len(matches) == 0 {
		return ok(fmt.Sprintf("grep: no matches found for '%s'", pattern))
	}
	return ok(strings.Join(matches, "\n"))
}

func (s *Session) find(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("find: missing argument")
	}
	term := inv.Args[0]
	glob := inv.Flags.Contains("-name")
	if glob && !doublestar.ValidatePattern(term) {
		return fail("find: bad pattern '%s'", term)
	}

	cwd, _ := s.fs.Node(s.cwd)
	var hits []string
	s.fs.Walk(cwd, ".", func(rel string, n *filesystem.Node) {
		match := strings.Contains(n.Name(), term)
		if glob {
			match, _ = doublestar.Match(term, n.Name())
		}
		if match {
			hits = append(hits, rel)
		}
	})
	if len(hits) == 0 {
		return ok(fmt.Sprintf("find: '%s' not found", term))
	}
	return ok(strings.Join(hits, "\n"))
}

func (s *Session) tree(_ *Invocation) result {
	cwd, _ := s.fs.Node(s.cwd)
	name := cwd.Name()
	if cwd.IsRoot() {
		name = "/"
	}
	var b strings.Builder
	b.WriteString(dirIcon + " " + name)
	s.writeTree(&b, cwd, "")
	return ok(b.String())
}
