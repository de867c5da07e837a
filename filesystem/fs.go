package filesystem

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/brettbedarf/webcli"
	"github.com/brettbedarf/webcli/config"
	"github.com/brettbedarf/webcli/internal/util"
	"github.com/puzpuzpuz/xsync/v4"
)

// FileSystem is an in-memory node tree. Nodes live in a registry keyed by
// NodeID and refer to their parent by id, never by pointer.
//
// A FileSystem is not safe for concurrent mutation; the owning session
// serializes access.
type FileSystem struct {
	cfg        *config.Config
	clock      webcli.Clock
	lastNodeID atomic.Uint64             // Last registry NodeID assigned; incremented when new nodes are created
	nodes      *xsync.Map[NodeID, *Node] // maps registry NodeIDs to Nodes
	uid, gid   uint32
}

func NewFS(cfg *config.Config, clock webcli.Clock) *FileSystem {
	if clock == nil {
		clock = webcli.SystemClock{}
	}
	fs := FileSystem{
		cfg:   cfg,
		clock: clock,
		nodes: xsync.NewMap[NodeID, *Node](),
		uid:   uint32(os.Getuid()),
		gid:   uint32(os.Getgid()),
	}

	rootAttr := newDefaultAttr(uint64(RootID), clock.Now(), fs.uid, fs.gid)
	rootAttr.Mode = DirAttr | DefaultDirPerms
	root := newNode(RootID, "", NewInode(rootAttr, cfg.User))

	fs.lastNodeID.Store(uint64(RootID))
	fs.nodes.Store(RootID, root)
	return &fs
}

// Root returns the root directory
func (fs *FileSystem) Root() *Node {
	root, _ := fs.nodes.Load(RootID)
	return root
}

// Node looks a registered node up by id
func (fs *FileSystem) Node(id NodeID) (*Node, bool) {
	return fs.nodes.Load(id)
}

// Len returns the number of registered nodes including root
func (fs *FileSystem) Len() int {
	return fs.nodes.Size()
}

// Path returns the canonical absolute path of a node; "/" for root
func (fs *FileSystem) Path(id NodeID) string {
	var segs []string
	for id != RootID {
		n, ok := fs.nodes.Load(id)
		if !ok {
			break
		}
		segs = append(segs, n.name)
		id = n.parent
	}
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segs[i])
	}
	return b.String()
}

// Contains reports whether id is ancestor itself or lies in its subtree
func (fs *FileSystem) Contains(ancestor, id NodeID) bool {
	for id != 0 {
		if id == ancestor {
			return true
		}
		n, ok := fs.nodes.Load(id)
		if !ok {
			return false
		}
		id = n.parent
	}
	return false
}

// Children returns a directory's children in name order
func (fs *FileSystem) Children(dir *Node) []*Node {
	out := make([]*Node, 0, dir.Len())
	dir.AscendChildren("", func(_ string, id NodeID) bool {
		if child, ok := fs.nodes.Load(id); ok {
			out = append(out, child)
		}
		return true
	})
	return out
}

// AddFileNode adds a new file node to the filesystem. It will add any missing
// directories in the path and return the newly created leaf node.
// If a node already exists at the requested path, it will return an error
func (fs *FileSystem) AddFileNode(ctx context.Context, req *webcli.FileCreateRequest) (*Node, error) {
	logger := util.GetLogger("FS.AddFileNode")

	parent := fs.Root()
	dirPath, name := splitParent(req.Path)
	if name == "" || name == "." || name == ".." {
		return nil, &iofs.PathError{Op: "seed", Path: req.Path, Err: syscall.EINVAL}
	}
	if dirPath != "" && dirPath != "/" {
		// Implicit dir requests are just the same embedded Node values with a different path
		dirReq := webcli.DirCreateRequest{NodeRequest: req.NodeRequest}
		dirReq.Path = dirPath
		dirReq.Perms = 0
		dNode, err := fs.AddDirNode(&dirReq)
		if err != nil {
			logger.Error().Err(err).Str("path", dirReq.Path).Msg("Failed to create file's ancestor directory(s)")
			return nil, err
		}
		parent = dNode
	}

	if _, ok := parent.Child(name); ok {
		err := &iofs.PathError{Op: "seed", Path: req.Path, Err: syscall.EEXIST}
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}

	var content []byte
	if req.Source != nil {
		data, err := req.Source.Content(ctx)
		if err != nil {
			logger.Error().Err(err).Str("path", req.Path).Msg("Failed to read file source")
			return nil, fmt.Errorf("read source for %s: %w", req.Path, err)
		}
		content = data
	}

	node := fs.newNode(name, FileAttr, valueOrDefault(req.Perms, DefaultFilePerms), req.Owner)
	node.setContent(content, fs.clock.Now())
	applyRequestTimes(node, &req.NodeRequest)
	parent.addChild(node)
	logger.Debug().Str("path", req.Path).Int("size", len(content)).Msg("Added new file node")
	return node, nil
}

// AddDirNode recursively adds all missing directories starting at root
// in the request's path and returns the leaf.
// It is equivalent to calling `mkdir -p` from a shell and similarly will only create
// directories that do not already exist and will not error if the leaf already exists.
func (fs *FileSystem) AddDirNode(req *webcli.DirCreateRequest) (*Node, error) {
	logger := util.GetLogger("FS.AddDirNode")

	cur := fs.Root()
	newCnt := 0
	// Traverse the path until we get to existing dir and make
	// any missing along the way
	for _, name := range strings.Split(req.Path, "/") {
		switch name {
		case "", ".":
			continue
		case "..":
			return nil, &iofs.PathError{Op: "seed", Path: req.Path, Err: syscall.EINVAL}
		}
		if id, ok := cur.Child(name); ok {
			child, _ := fs.nodes.Load(id)
			if !child.IsDir() {
				return nil, &iofs.PathError{Op: "seed", Path: req.Path, Err: syscall.ENOTDIR}
			}
			cur = child
			continue
		}
		// Make new dir
		node := fs.newNode(name, DirAttr, valueOrDefault(req.Perms, DefaultDirPerms), req.Owner)
		applyRequestTimes(node, &req.NodeRequest)
		cur.addChild(node)
		newCnt++
		cur = node
	}
	if newCnt > 0 {
		logger.Debug().Str("path", req.Path).Msg(fmt.Sprintf("Created %d new dir(s)", newCnt))
	}

	return cur, nil
}

// newNode allocates a NodeID and registers a detached node
func (fs *FileSystem) newNode(name string, kind SysAttrType, perms uint32, owner string) *Node {
	if owner == "" {
		owner = fs.cfg.User
	}
	id := NodeID(fs.lastNodeID.Add(1))
	attr := newDefaultAttr(uint64(id), fs.clock.Now(), fs.uid, fs.gid)
	attr.Mode = kind | perms
	node := newNode(id, name, NewInode(attr, owner))
	fs.nodes.Store(id, node)
	return node
}

// forget drops a node and its whole subtree from the registry
func (fs *FileSystem) forget(n *Node) {
	n.AscendChildren("", func(_ string, id NodeID) bool {
		if child, ok := fs.nodes.Load(id); ok {
			fs.forget(child)
		}
		return true
	})
	fs.nodes.Delete(n.id)
}

func applyRequestTimes(n *Node, req *webcli.NodeRequest) {
	created, modified := n.Created(), n.Modified()
	if !req.Ctime.IsZero() {
		created = req.Ctime
	}
	if !req.Mtime.IsZero() {
		modified = req.Mtime
	}
	setTimes(n.attr, created, modified)
}

func valueOrDefault(v, def uint32) uint32 {
	if v == 0 {
		return def
	}
	return v
}

// AsErrno extracts the errno carried by a filesystem error
func AsErrno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	ok := errors.As(err, &errno)
	return errno, ok
}
