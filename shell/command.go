// Package shell interprets command lines against a session's in-memory file tree
package shell

// Command is one of the closed set of recognized commands
type Command int

// Declaration order is the order used by "did you mean" hints and completion.
const (
	CmdLs Command = iota
	CmdCd
	CmdMkdir
	CmdRmdir
	CmdRm
	CmdTouch
	CmdMv
	CmdCp
	CmdCurl
	CmdClear
	CmdPwd
	CmdCat
	CmdHelp
	CmdWhoami
	CmdDate
	CmdEcho
	CmdGrep
	CmdFind
	CmdTree
	CmdHistory
	CmdTheme
	CmdNeofetch
	CmdPs
	CmdTop
	CmdDf
	CmdFree
	CmdUptime
	CmdUname
	CmdWhich
	CmdMan
	CmdAlias
	CmdExport
	numCommands
)

var commandNames = [numCommands]string{
	CmdLs:       "ls",
	CmdCd:       "cd",
	CmdMkdir:    "mkdir",
	CmdRmdir:    "rmdir",
	CmdRm:       "rm",
	CmdTouch:    "touch",
	CmdMv:       "mv",
	CmdCp:       "cp",
	CmdCurl:     "curl",
	CmdClear:    "clear",
	CmdPwd:      "pwd",
	CmdCat:      "cat",
	CmdHelp:     "help",
	CmdWhoami:   "whoami",
	CmdDate:     "date",
	CmdEcho:     "echo",
	CmdGrep:     "grep",
	CmdFind:     "find",
	CmdTree:     "tree",
	CmdHistory:  "history",
	CmdTheme:    "theme",
	CmdNeofetch: "neofetch",
	CmdPs:       "ps",
	CmdTop:      "top",
	CmdDf:       "df",
	CmdFree:     "free",
	CmdUptime:   "uptime",
	CmdUname:    "uname",
	CmdWhich:    "which",
	CmdMan:      "man",
	CmdAlias:    "alias",
	CmdExport:   "export",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, numCommands)
	for c := Command(0); c < numCommands; c++ {
		m[commandNames[c]] = c
	}
	return m
}()

func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return "unknown"
	}
	return commandNames[c]
}

// LookupCommand maps a command name to its Command
func LookupCommand(name string) (Command, bool) {
	c, ok := commandsByName[name]
	return c, ok
}

// Commands returns every command in declaration order
func Commands() []Command {
	out := make([]Command, numCommands)
	for i := range out {
		out[i] = Command(i)
	}
	return out
}

// Stateful reports whether the command reads or mutates the file tree
func (c Command) Stateful() bool {
	switch c {
	case CmdLs, CmdCd, CmdMkdir, CmdRmdir, CmdRm, CmdTouch, CmdMv, CmdCp, CmdCat, CmdFind, CmdTree, CmdGrep:
		return true
	}
	return false
}

// completesPaths reports whether argument completion offers tree entries
func (c Command) completesPaths() bool {
	switch c {
	case CmdLs, CmdCd, CmdRm, CmdRmdir, CmdCat, CmdMv, CmdCp, CmdGrep, CmdFind, CmdTouch:
		return true
	}
	return false
}
