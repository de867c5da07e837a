package shell

const helpText = `Web CLI Terminal - Available Commands:

File System:
  ls [path] [-l] [-a]     List directory contents
  cd [path]               Change directory (~ for home, - for previous)
  mkdir <name>...         Create directories
  rmdir <name>...         Remove empty directories
  rm <name>... [-r] [-f]  Remove files or directories
  touch <name>...         Create empty files
  mv <src> <dest>         Move/rename file or directory
  cp <src> <dest> [-r]    Copy file or directory
  cat <file>              Display file contents
  find <name> [-name]     Find files and directories (-name matches a glob)
  tree                    Display directory tree

System:
  pwd                     Print working directory
  whoami                  Display current user
  date                    Display current date and time
  echo <text>             Display text (> file writes, >> file appends)
  history                 Show command history
  clear                   Clear terminal screen
  neofetch                Display system information
  ps                      List running processes
  top                     Display system processes
  df                      Display disk usage
  free                    Display memory usage
  uptime                  Display system uptime
  uname [-a]              Display system information

Network:
  curl <url>              Fetch data from URL

Customization:
  theme [name]            Change terminal theme
  alias                   List aliases
  export                  List environment variables

Utilities:
  grep <pattern> <file>   Search for patterns in files (-i ignore case, -n line numbers)
  which <command>         Locate command
  man <command>           Display manual for command

Use 'man <command>' for detailed help on specific commands.`

var neofetchArt = []string{
	"     ██████╗ ██╗    ██╗███████╗██████╗",
	"    ██╔═══██╗██║    ██║██╔════╝██╔══██╗",
	"    ██║   ██║██║ █╗ ██║█████╗  ██████╔╝",
	"    ██║   ██║██║███╗██║██╔══╝  ██╔══██╗",
	"    ╚██████╔╝╚███╔███╔╝███████╗██████╔╝",
	"     ╚═════╝  ╚══╝╚══╝ ╚══════╝╚═════╝",
	"",
	"    ██╗    ██╗███████╗██████╗",
	"    ██║    ██║██╔════╝██╔══██╗",
	"    ██║ █╗ ██║█████╗  ██████╔╝",
	"    ██║███╗██║██╔══╝  ██╔══██╗",
	"    ╚███╔███╔╝███████╗██████╔╝",
	"     ╚══╝╚══╝ ╚══════╝╚═════╝",
}

// neofetchWidth is the column the system information starts at
const neofetchWidth = 44

const psText = `  PID TTY          TIME CMD
    1 pts/0    00:00:01 webcli
  123 pts/0    00:00:00 terminal
  456 pts/0    00:00:00 filesystem`

const topText = `Tasks: 3 total,   1 running,   2 sleeping
%Cpu(s):  2.1 us,  0.8 sy,  0.0 ni, 97.1 id
MiB Mem :  16384 total,   8192 free,   4096 used,   4096 buff/cache

  PID USER      PR  NI    VIRT    RES    SHR S  %CPU  %MEM     TIME+ COMMAND
    1 %-8s  20   0  102400  32768  16384 S   1.0   0.2   0:01.23 webcli
  123 %-8s  20   0   65536  16384   8192 S   0.3   0.1   0:00.45 terminal
  456 %-8s  20   0   32768   8192   4096 S   0.1   0.1   0:00.12 filesystem`

const dfText = `Filesystem     1K-blocks    Used Available Use% Mounted on
/dev/web           1048576  524288    524288  50% /
tmpfs               262144   32768    229376  13% /tmp
devfs                 4096    1024     3072  25% /dev`

const freeText = `              total        used        free      shared  buff/cache   available
Mem:       16777216     4194304     8388608      524288     4194304    12058624
Swap:       2097152           0     2097152`

const aliasText = `alias ll='ls -l'
alias la='ls -la'
alias ..='cd ..'
alias ...='cd ../..'
alias grep='grep --color=auto'
alias cls='clear'`

const manTemplate = `Manual page for %[1]s:

NAME
    %[1]s - Web CLI command

SYNOPSIS
    %[1]s [options] [arguments]

DESCRIPTION
    This is a simulated manual page for the %[1]s command.
    For detailed help, use 'help' command.

SEE ALSO
    help(1), webcli(1)`

// fixed system facts reported by neofetch and friends
const (
	sysOS       = "WebOS 1.0"
	sysKernel   = "Browser-Kernel 5.4.0"
	sysUptime   = "2 days, 14:32"
	sysMemory   = "8GB / 16GB"
	sysCPU      = "Virtual CPU @ 2.4GHz"
	sysShell    = "WebCLI 1.0"
	sysTerminal = "Web Terminal"
	sysLoad     = "0.15, 0.12, 0.08"
	unameFull   = "WebOS %s 5.4.0-web #1 SMP Browser PREEMPT Dynamic x86_64 GNU/Linux"
)

// canned curl responses keyed by URL
var curlResponses = map[string]string{
	"https://api.github.com/users/octocat": `{
  "login": "octocat",
  "id": 1,
  "name": "The Octocat",
  "company": "GitHub",
  "blog": "https://github.blog",
  "location": "San Francisco",
  "bio": "How people build software.",
  "public_repos": 8,
  "followers": 9001,
  "following": 9
}`,
	"https://jsonplaceholder.typicode.com/posts/1": `{
  "userId": 1,
  "id": 1,
  "title": "sunt aut facere repellat provident occaecati excepturi optio reprehenderit",
  "body": "quia et suscipit suscipit recusandae consequuntur expedita et cum reprehenderit molestiae ut ut quas totam nostrum rerum est autem sunt rem eveniet architecto"
}`,
	"https://httpbin.org/ip": `{
  "origin": "192.168.1.100"
}`,
	"https://api.quotable.io/random": `{
  "content": "The only way to do great work is to love what you do.",
  "author": "Steve Jobs",
  "tags": [
    "inspirational",
    "motivational"
  ]
}`,
}
