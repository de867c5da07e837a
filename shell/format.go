package shell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/brettbedarf/webcli/filesystem"
)

const (
	dirIcon  = "📁"
	fileIcon = "📄"

	// ls -l timestamp layout
	longTimeLayout = "Jan 02 15:04"
)

var sizeUnits = []string{"B", "K", "M", "G"}

func icon(n *filesystem.Node) string {
	if n.IsDir() {
		return dirIcon
	}
	return fileIcon
}

func shortEntry(n *filesystem.Node) string {
	return icon(n) + " " + n.Name()
}

// longEntry renders one ls -l line: permissions, link count, owner, group,
// size, modified time in loc and name
func longEntry(n *filesystem.Node, loc *time.Location) string {
	size := strconv.Itoa(filesystem.DirDisplaySize)
	if !n.IsDir() {
		size = formatSize(n.Size())
	}
	return fmt.Sprintf("%s 1 %s %s %8s %s %s",
		n.Permissions(), n.Owner(), n.Owner(), size, n.Modified().In(loc).Format(longTimeLayout), n.Name())
}

// formatSize scales bytes into the largest unit up to G that keeps the value
// at or above 1 and rounds half up
func formatSize(bytes uint64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return strconv.FormatFloat(math.Round(size), 'f', 0, 64) + sizeUnits[unit]
}

// writeTree appends one line per descendant of dir using box-drawing
// connectors, children in name order
func (s *Session) writeTree(b *strings.Builder, dir *filesystem.Node, prefix string) {
	children := s.fs.Children(dir)
	for i, child := range children {
		last := i == len(children)-1
		connector, indent := "├── ", "│   "
		if last {
			connector, indent = "└── ", "    "
		}
		b.WriteString("\n" + prefix + connector + icon(child) + " " + child.Name())
		if child.IsDir() {
			s.writeTree(b, child, prefix+indent)
		}
	}
}
