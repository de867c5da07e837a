package shell

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brettbedarf/webcli/filesystem"
)

type result struct {
	output  string
	isError bool
}

func ok(output string) result {
	return result{output: output}
}

func fail(format string, args ...any) result {
	return result{output: fmt.Sprintf(format, args...), isError: true}
}

type handler func(s *Session, inv *Invocation) result

var handlers = map[Command]handler{
	CmdLs:       (*Session).ls,
	CmdCd:       (*Session).cd,
	CmdMkdir:    (*Session).mkdir,
	CmdRmdir:    (*Session).rmdir,
	CmdRm:       (*Session).rm,
	CmdTouch:    (*Session).touch,
	CmdMv:       (*Session).mv,
	CmdCp:       (*Session).cp,
	CmdCat:      (*Session).cat,
	CmdGrep:     (*Session).grep,
	CmdFind:     (*Session).find,
	CmdTree:     (*Session).tree,
	CmdCurl:     (*Session).curl,
	CmdPwd:      (*Session).pwd,
	CmdHelp:     (*Session).help,
	CmdWhoami:   (*Session).whoami,
	CmdDate:     (*Session).date,
	CmdEcho:     (*Session).echo,
	CmdHistory:  (*Session).historyCmd,
	CmdTheme:    (*Session).themeCmd,
	CmdNeofetch: (*Session).neofetch,
	CmdPs:       (*Session).ps,
	CmdTop:      (*Session).top,
	CmdDf:       (*Session).df,
	CmdFree:     (*Session).free,
	CmdUptime:   (*Session).uptime,
	CmdUname:    (*Session).uname,
	CmdWhich:    (*Session).which,
	CmdMan:      (*Session).man,
	CmdAlias:    (*Session).alias,
	CmdExport:   (*Session).export,
}

const maxSuggestions = 5

// notFound builds the unknown-command error with up to five commands that
// share the name's first character
func notFound(name string) result {
	msg := fmt.Sprintf("bash: %s: command not found", name)
	first, _ := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return fail("%s", msg)
	}

	var suggestions []string
	for _, cmd := range Commands() {
		if strings.ContainsRune(cmd.String(), first) {
			suggestions = append(suggestions, cmd.String())
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}
	if len(suggestions) == 0 {
		return fail("%s", msg)
	}
	return fail("%s\n\nDid you mean one of these?\n%s", msg, strings.Join(suggestions, ", "))
}

// reason renders a filesystem failure the way coreutils does, e.g. "No such
// file or directory"
func reason(err error) string {
	msg := err.Error()
	if errno, isErrno := filesystem.AsErrno(err); isErrno {
		msg = errno.Error()
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
