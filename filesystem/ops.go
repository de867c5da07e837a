package filesystem

import (
	iofs "io/fs"
	"sort"
	"strings"
	"syscall"

	"github.com/brettbedarf/webcli/internal/util"
)

// Every operation below takes base, the caller's current directory, and
// either commits fully or leaves the tree untouched. Failures are
// *fs.PathError values wrapping a syscall.Errno.

// List returns the entries at p. A file yields itself; a directory yields its
// children with directories first, then by name. Names starting with "." are
// skipped unless includeHidden.
func (fs *FileSystem) List(base NodeID, p string, includeHidden bool) ([]*Node, error) {
	n, err := fs.Resolve(p, base)
	if err != nil {
		return nil, withOp(err, "ls")
	}
	if !n.IsDir() {
		return []*Node{n}, nil
	}

	entries := make([]*Node, 0, n.Len())
	for _, child := range fs.Children(n) {
		if !includeHidden && strings.HasPrefix(child.name, ".") {
			continue
		}
		entries = append(entries, child)
	}
	// children already arrive in name order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IsDir() && !entries[j].IsDir()
	})
	return entries, nil
}

// Chdir resolves p to the directory a session should switch to
func (fs *FileSystem) Chdir(base NodeID, p string) (*Node, error) {
	n, err := fs.Resolve(p, base)
	if err != nil {
		return nil, withOp(err, "cd")
	}
	if !n.IsDir() {
		return nil, &iofs.PathError{Op: "cd", Path: p, Err: syscall.ENOTDIR}
	}
	return n, nil
}

// MakeDirectory creates an empty directory at p
func (fs *FileSystem) MakeDirectory(base NodeID, p string) (*Node, error) {
	logger := util.GetLogger("FS.MakeDirectory")

	parent, name, err := fs.createTarget(base, p, "mkdir")
	if err != nil {
		logger.Debug().Err(err).Str("path", p).Msg("mkdir rejected")
		return nil, err
	}
	node := fs.newNode(name, DirAttr, DefaultDirPerms, "")
	fs.attach(parent, node)
	logger.Debug().Str("path", fs.Path(node.id)).Msg("Created directory")
	return node, nil
}

// CreateFile creates a file at p holding content
func (fs *FileSystem) CreateFile(base NodeID, p string, content []byte) (*Node, error) {
	logger := util.GetLogger("FS.CreateFile")

	parent, name, err := fs.createTarget(base, p, "create")
	if err != nil {
		logger.Debug().Err(err).Str("path", p).Msg("create rejected")
		return nil, err
	}
	node := fs.newNode(name, FileAttr, DefaultFilePerms, "")
	node.setContent(content, fs.clock.Now())
	fs.attach(parent, node)
	logger.Debug().Str("path", fs.Path(node.id)).Int("size", len(content)).Msg("Created file")
	return node, nil
}

// Remove detaches and discards the node at p. Non-empty directories need
// recursive. Root, base and any ancestor of base are refused with EBUSY.
func (fs *FileSystem) Remove(base NodeID, p string, recursive bool) error {
	n, err := fs.Resolve(p, base)
	if err != nil {
		return withOp(err, "rm")
	}
	if err := fs.checkRemovable(base, p, n); err != nil {
		return err
	}
	if n.IsDir() && n.Len() > 0 && !recursive {
		return &iofs.PathError{Op: "rm", Path: p, Err: syscall.ENOTEMPTY}
	}
	fs.discard(n)
	return nil
}

// Rmdir removes the empty directory at p
func (fs *FileSystem) Rmdir(base NodeID, p string) error {
	n, err := fs.Resolve(p, base)
	if err != nil {
		return withOp(err, "rmdir")
	}
	if !n.IsDir() {
		return &iofs.PathError{Op: "rmdir", Path: p, Err: syscall.ENOTDIR}
	}
	if n.Len() > 0 {
		return &iofs.PathError{Op: "rmdir", Path: p, Err: syscall.ENOTEMPTY}
	}
	if err := fs.checkRemovable(base, p, n); err != nil {
		return err
	}
	fs.discard(n)
	return nil
}

// Move relocates src to dst. An existing directory at dst receives src under
// its own name; otherwise dst's last segment is the new name inside dst's
// parent. Moving a node into its own subtree fails with EINVAL.
func (fs *FileSystem) Move(base NodeID, src, dst string) (*Node, error) {
	logger := util.GetLogger("FS.Move")

	n, err := fs.Resolve(src, base)
	if err != nil {
		return nil, withOp(err, "mv")
	}
	if n.IsRoot() {
		return nil, &iofs.PathError{Op: "mv", Path: src, Err: syscall.EBUSY}
	}
	parent, name, err := fs.destination(base, n, dst, "mv")
	if err != nil {
		logger.Debug().Err(err).Str("src", src).Str("dst", dst).Msg("mv rejected")
		return nil, err
	}

	old, _ := fs.nodes.Load(n.parent)
	now := fs.clock.Now()
	old.removeChild(n)
	old.touch(now)
	n.name = name
	fs.attach(parent, n)
	n.touch(now)
	logger.Debug().Str("src", src).Str("path", fs.Path(n.id)).Msg("Moved node")
	return n, nil
}

// Copy deep-clones src to dst using the same destination rules as [FileSystem.Move].
// Clones get new ids and fresh times and keep content, perms and owner.
func (fs *FileSystem) Copy(base NodeID, src, dst string) (*Node, error) {
	logger := util.GetLogger("FS.Copy")

	n, err := fs.Resolve(src, base)
	if err != nil {
		return nil, withOp(err, "cp")
	}
	parent, name, err := fs.destination(base, n, dst, "cp")
	if err != nil {
		logger.Debug().Err(err).Str("src", src).Str("dst", dst).Msg("cp rejected")
		return nil, err
	}

	clone := fs.clone(n, name)
	fs.attach(parent, clone)
	logger.Debug().Str("src", src).Str("path", fs.Path(clone.id)).Msg("Copied node")
	return clone, nil
}

// Write replaces (or with appendContent, extends) the file at p, creating it
// when nothing exists there. Directories fail with EISDIR.
func (fs *FileSystem) Write(base NodeID, p string, content []byte, appendContent bool) (*Node, error) {
	n, err := fs.Resolve(p, base)
	if err != nil {
		return fs.CreateFile(base, p, content)
	}
	if n.IsDir() {
		return nil, &iofs.PathError{Op: "write", Path: p, Err: syscall.EISDIR}
	}
	if appendContent {
		n.appendContent(content, fs.clock.Now())
	} else {
		n.setContent(content, fs.clock.Now())
	}
	return n, nil
}

// ReadFile returns a copy of the content of the file at p
func (fs *FileSystem) ReadFile(base NodeID, p string) ([]byte, error) {
	n, err := fs.Resolve(p, base)
	if err != nil {
		return nil, withOp(err, "read")
	}
	if n.IsDir() {
		return nil, &iofs.PathError{Op: "read", Path: p, Err: syscall.EISDIR}
	}
	return n.Content(), nil
}

// Walk visits every descendant of dir in pre-order, children by name.
// rel is prefix joined with the names leading to the node.
func (fs *FileSystem) Walk(dir *Node, prefix string, fn func(rel string, n *Node)) {
	for _, child := range fs.Children(dir) {
		rel := prefix + "/" + child.name
		fn(rel, child)
		if child.IsDir() {
			fs.Walk(child, rel, fn)
		}
	}
}

// createTarget validates p as the location of a new node and returns its
// parent directory and name
func (fs *FileSystem) createTarget(base NodeID, p, op string) (*Node, string, error) {
	dir, name := splitParent(p)
	switch name {
	case "":
		if dir == "/" {
			return nil, "", &iofs.PathError{Op: op, Path: p, Err: syscall.EEXIST}
		}
		return nil, "", &iofs.PathError{Op: op, Path: p, Err: syscall.ENOENT}
	case ".", "..":
		return nil, "", &iofs.PathError{Op: op, Path: p, Err: syscall.EEXIST}
	}
	parent, err := fs.Resolve(dir, base)
	if err != nil {
		return nil, "", withOp(err, op)
	}
	if !parent.IsDir() {
		return nil, "", &iofs.PathError{Op: op, Path: p, Err: syscall.ENOTDIR}
	}
	if _, exists := parent.Child(name); exists {
		return nil, "", &iofs.PathError{Op: op, Path: p, Err: syscall.EEXIST}
	}
	return parent, name, nil
}

// destination applies the mv/cp destination rules for node n
func (fs *FileSystem) destination(base NodeID, n *Node, dst, op string) (*Node, string, error) {
	var (
		parent *Node
		name   string
	)
	if target, err := fs.Resolve(dst, base); err == nil && target.IsDir() {
		parent, name = target, n.name
	} else {
		var dir string
		dir, name = splitParent(dst)
		if name == "" || name == "." || name == ".." {
			return nil, "", &iofs.PathError{Op: op, Path: dst, Err: syscall.EINVAL}
		}
		if parent, err = fs.Resolve(dir, base); err != nil {
			return nil, "", withOp(err, op)
		}
		if !parent.IsDir() {
			return nil, "", &iofs.PathError{Op: op, Path: dst, Err: syscall.ENOTDIR}
		}
	}
	if fs.Contains(n.id, parent.id) {
		return nil, "", &iofs.PathError{Op: op, Path: dst, Err: syscall.EINVAL}
	}
	if _, exists := parent.Child(name); exists {
		return nil, "", &iofs.PathError{Op: op, Path: dst, Err: syscall.EEXIST}
	}
	return parent, name, nil
}

func (fs *FileSystem) checkRemovable(base NodeID, p string, n *Node) error {
	if n.IsRoot() || fs.Contains(n.id, base) {
		return &iofs.PathError{Op: "rm", Path: p, Err: syscall.EBUSY}
	}
	return nil
}

// attach links child under parent and bumps the parent's modified time
func (fs *FileSystem) attach(parent, child *Node) {
	parent.addChild(child)
	parent.touch(fs.clock.Now())
}

// discard detaches n from its parent and forgets its subtree
func (fs *FileSystem) discard(n *Node) {
	logger := util.GetLogger("FS.Remove")
	path := fs.Path(n.id)
	if parent, ok := fs.nodes.Load(n.parent); ok {
		parent.removeChild(n)
		parent.touch(fs.clock.Now())
	}
	before := fs.nodes.Size()
	fs.forget(n)
	logger.Debug().Str("path", path).Int("nodes", before-fs.nodes.Size()).Msg("Removed node")
}

// clone deep-copies n under a new name; the result is registered but detached
func (fs *FileSystem) clone(n *Node, name string) *Node {
	kind := FileAttr
	if n.IsDir() {
		kind = DirAttr
	}
	c := fs.newNode(name, kind, n.Perms(), n.owner)
	if !n.IsDir() {
		c.setContent(n.content, fs.clock.Now())
		return c
	}
	for _, child := range fs.Children(n) {
		c.addChild(fs.clone(child, child.name))
	}
	return c
}

// withOp relabels a lookup failure with the operation that caused it
func withOp(err error, op string) error {
	if pe, ok := err.(*iofs.PathError); ok {
		return &iofs.PathError{Op: op, Path: pe.Path, Err: pe.Err}
	}
	return err
}
