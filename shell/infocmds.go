package shell

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

func (s *Session) pwd(_ *Invocation) result {
	return ok(s.path)
}

func (s *Session) whoami(_ *Invocation) result {
	return ok(s.cfg.User)
}

func (s *Session) date(_ *Invocation) result {
	return ok(s.clock.Now().Format(time.UnixDate))
}

func (s *Session) echo(inv *Invocation) result {
	return ok(strings.Join(inv.Words, " "))
}

func (s *Session) help(_ *Invocation) result {
	return ok(helpText)
}

func (s *Session) historyCmd(_ *Invocation) result {
	lines := make([]string, len(s.history))
	for i, line := range s.history {
		lines[i] = fmt.Sprintf("%d  %s", i+1, line)
	}
	return ok(strings.Join(lines, "\n"))
}

func (s *Session) themeCmd(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return ok(fmt.Sprintf("Available themes: %s\nCurrent theme: %s", themeList(), s.theme))
	}
	theme, found := ParseTheme(inv.Args[0])
	if !found {
		return fail("Theme '%s' not found. Available: %s", inv.Args[0], themeList())
	}
	s.theme = theme
	s.logger.Debug().Str("theme", theme.String()).Msg("Theme changed")
	return ok(fmt.Sprintf("Theme changed to: %s", theme))
}

func (s *Session) neofetch(_ *Invocation) result {
	userHost := s.cfg.User + "@" + s.cfg.Hostname
	info := []string{
		userHost,
		strings.Repeat("-", utf8.RuneCountInString(userHost)),
		"OS: " + sysOS,
		"Kernel: " + sysKernel,
		"Uptime: " + sysUptime,
		"Memory: " + sysMemory,
		"CPU: " + sysCPU,
		"Shell: " + sysShell,
		"Terminal: " + sysTerminal,
		"Theme: " + s.theme.String(),
	}

	lines := make([]string, len(neofetchArt))
	for i, art := range neofetchArt {
		if i >= len(info) {
			lines[i] = art
			continue
		}
		pad := max(neofetchWidth-utf8.RuneCountInString(art), 1)
		lines[i] = art + strings.Repeat(" ", pad) + info[i]
	}
	return ok(strings.Join(lines, "\n"))
}

func (s *Session) ps(_ *Invocation) result {
	return ok(psText)
}

func (s *Session) top(_ *Invocation) result {
	return ok(fmt.Sprintf(topText, s.cfg.User, s.cfg.User, s.cfg.User))
}

func (s *Session) df(_ *Invocation) result {
	return ok(dfText)
}

func (s *Session) free(_ *Invocation) result {
	return ok(freeText)
}

func (s *Session) uptime(_ *Invocation) result {
	return ok(fmt.Sprintf(" %s up %s,  1 user,  load average: %s",
		s.clock.Now().Format(time.TimeOnly), sysUptime, sysLoad))
}

func (s *Session) uname(inv *Invocation) result {
	if inv.Flags.Has('a') {
		return ok(fmt.Sprintf(unameFull, s.cfg.Hostname))
	}
	return ok("WebOS")
}

func (s *Session) which(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("which: missing argument")
	}
	name := inv.Args[0]
	if _, found := LookupCommand(name); !found {
		return fail("%s not found", name)
	}
	return ok("/usr/bin/" + name)
}

func (s *Session) man(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("What manual page do you want?")
	}
	return ok(fmt.Sprintf(manTemplate, inv.Args[0]))
}

func (s *Session) alias(_ *Invocation) result {
	return ok(aliasText)
}

func (s *Session) export(_ *Invocation) result {
	vars := []string{
		"PATH=/usr/local/bin:/usr/bin:/bin",
		"HOME=" + s.cfg.Home,
		"USER=" + s.cfg.User,
		"SHELL=/bin/webcli",
		"TERM=xterm-256color",
		"PWD=" + s.path,
	}
	return ok(strings.Join(vars, "\n"))
}

// curl never touches the network; known URLs get canned bodies and anything
// else an echo response
func (s *Session) curl(inv *Invocation) result {
	if len(inv.Args) == 0 {
		return fail("curl: no URL specified")
	}
	url := inv.Args[0]
	if body, found := curlResponses[url]; found {
		return ok(body)
	}

	now := s.clock.Now().UTC()
	quoted, _ := json.Marshal(url)
	return ok(fmt.Sprintf(`HTTP/1.1 200 OK
Content-Type: application/json
Date: %s

{
  "message": "Hello from simulated API!",
  "url": %s,
  "timestamp": "%s",
  "status": "success"
}`, now.Format(http.TimeFormat), quoted, now.Format("2006-01-02T15:04:05.000Z")))
}
