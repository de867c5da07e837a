package filesystem

import (
	iofs "io/fs"
	"strings"
	"syscall"
)

// Resolve looks p up starting at base, or at root when p is absolute.
// "" and "." name base itself and ".." walks to the parent (root is its own
// parent). Repeated separators are ignored. A missing segment, or any segment
// looked up under a file, fails with ENOENT. Resolve never mutates.
func (fs *FileSystem) Resolve(p string, base NodeID) (*Node, error) {
	cur, ok := fs.nodes.Load(base)
	if strings.HasPrefix(p, "/") {
		cur, ok = fs.nodes.Load(RootID)
	}
	if !ok {
		return nil, &iofs.PathError{Op: "lookup", Path: p, Err: syscall.ENOENT}
	}

	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if !cur.IsRoot() {
				if parent, ok := fs.nodes.Load(cur.parent); ok {
					cur = parent
				}
			}
			continue
		}
		id, ok := cur.Child(seg)
		if !ok {
			return nil, &iofs.PathError{Op: "lookup", Path: p, Err: syscall.ENOENT}
		}
		if cur, ok = fs.nodes.Load(id); !ok {
			return nil, &iofs.PathError{Op: "lookup", Path: p, Err: syscall.ENOENT}
		}
	}
	return cur, nil
}
