package server

import (
	"syscall"
	"time"

	"github.com/brettbedarf/webcli/config"
	"github.com/brettbedarf/webcli/filesystem"
	"github.com/brettbedarf/webcli/internal/util"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/rs/zerolog"
)

// TreeViewer grants exclusive read access to a file tree. *shell.Session
// implements it.
type TreeViewer interface {
	View(fn func(fsys *filesystem.FileSystem))
}

const (
	// open flags that would modify a file
	writeMask = syscall.O_WRONLY | syscall.O_RDWR | syscall.O_APPEND | syscall.O_TRUNC

	accessWrite = 0x2 // W_OK
)

var (
	errReadOnly = fuse.Status(syscall.EROFS)
	errIsDir    = fuse.Status(syscall.EISDIR)
)

// fuseRaw serves a session tree read-only over the low-level FUSE protocol.
// FUSE node ids are the tree's NodeIDs, so lookups need no translation table.
type fuseRaw struct {
	fuse.RawFileSystem
	tree         TreeViewer
	attrTimeout  time.Duration
	entryTimeout time.Duration
	logger       zerolog.Logger
}

func newFuseRaw(tree TreeViewer, cfg *config.Config) *fuseRaw {
	return &fuseRaw{
		RawFileSystem: fuse.NewDefaultRawFileSystem(),
		tree:          tree,
		attrTimeout:   seconds(cfg.AttrTimeout),
		entryTimeout:  seconds(cfg.EntryTimeout),
		logger:        util.GetLogger("Fuse"),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (r *fuseRaw) String() string {
	return "webcli"
}

// node loads id from the tree; fn runs under the session lock
func (r *fuseRaw) node(id uint64, fn func(fsys *filesystem.FileSystem, n *filesystem.Node) fuse.Status) fuse.Status {
	status := fuse.ENOENT
	r.tree.View(func(fsys *filesystem.FileSystem) {
		if n, found := fsys.Node(filesystem.NodeID(id)); found {
			status = fn(fsys, n)
		}
	})
	return status
}

func attrOf(n *filesystem.Node) fuse.Attr {
	attr := n.CopyAttr()
	attr.Ino = uint64(n.NodeID())
	return attr
}

func (r *fuseRaw) Access(cancel <-chan struct{}, input *fuse.AccessIn) fuse.Status {
	if input.Mask&accessWrite != 0 {
		return errReadOnly
	}
	return r.node(input.NodeId, func(*filesystem.FileSystem, *filesystem.Node) fuse.Status {
		return fuse.OK
	})
}

func (r *fuseRaw) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	r.logger.Trace().Uint64("parent", header.NodeId).Str("name", name).Msg("Lookup")
	return r.node(header.NodeId, func(fsys *filesystem.FileSystem, parent *filesystem.Node) fuse.Status {
		if !parent.IsDir() {
			return fuse.ENOTDIR
		}
		id, found := parent.Child(name)
		if !found {
			return fuse.ENOENT
		}
		child, found := fsys.Node(id)
		if !found {
			return fuse.ENOENT
		}
		out.NodeId = uint64(id)
		out.Attr = attrOf(child)
		out.SetEntryTimeout(r.entryTimeout)
		out.SetAttrTimeout(r.attrTimeout)
		return fuse.OK
	})
}

func (r *fuseRaw) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	return r.node(input.NodeId, func(_ *filesystem.FileSystem, n *filesystem.Node) fuse.Status {
		out.Attr = attrOf(n)
		out.SetTimeout(r.attrTimeout)
		return fuse.OK
	})
}

func (r *fuseRaw) OpenDir(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	return r.node(input.NodeId, func(_ *filesystem.FileSystem, n *filesystem.Node) fuse.Status {
		if !n.IsDir() {
			return fuse.ENOTDIR
		}
		return fuse.OK
	})
}

func (r *fuseRaw) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	var entries []fuse.DirEntry
	status := r.node(input.NodeId, func(fsys *filesystem.FileSystem, n *filesystem.Node) fuse.Status {
		var st fuse.Status
		entries, st = dirEntries(fsys, n)
		return st
	})
	if !status.Ok() {
		return status
	}
	for i := input.Offset; i < uint64(len(entries)); i++ {
		if !out.AddDirEntry(entries[i]) {
			break
		}
	}
	return fuse.OK
}

// dirEntries lists ".", ".." and the children of dir in name order
func dirEntries(fsys *filesystem.FileSystem, dir *filesystem.Node) ([]fuse.DirEntry, fuse.Status) {
	if !dir.IsDir() {
		return nil, fuse.ENOTDIR
	}
	parent := dir.Parent()
	if dir.IsRoot() {
		parent = dir.NodeID()
	}
	entries := []fuse.DirEntry{
		{Name: ".", Mode: filesystem.DirAttr, Ino: uint64(dir.NodeID())},
		{Name: "..", Mode: filesystem.DirAttr, Ino: uint64(parent)},
	}
	for _, child := range fsys.Children(dir) {
		mode := filesystem.FileAttr
		if child.IsDir() {
			mode = filesystem.DirAttr
		}
		entries = append(entries, fuse.DirEntry{Name: child.Name(), Mode: mode, Ino: uint64(child.NodeID())})
	}
	return entries, fuse.OK
}

func (r *fuseRaw) Open(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	if input.Flags&writeMask != 0 {
		return errReadOnly
	}
	return r.node(input.NodeId, func(_ *filesystem.FileSystem, n *filesystem.Node) fuse.Status {
		if n.IsDir() {
			return errIsDir
		}
		// contents change under the mount as commands run
		out.OpenFlags = fuse.FOPEN_DIRECT_IO
		return fuse.OK
	})
}

func (r *fuseRaw) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	var n int
	status := r.node(input.NodeId, func(_ *filesystem.FileSystem, node *filesystem.Node) fuse.Status {
		if node.IsDir() {
			return errIsDir
		}
		content := node.Content()
		if input.Offset < uint64(len(content)) {
			n = copy(buf, content[input.Offset:])
		}
		return fuse.OK
	})
	if !status.Ok() {
		return nil, status
	}
	return fuse.ReadResultData(buf[:n]), fuse.OK
}

// Mount is a live FUSE mount of one session tree
type Mount struct {
	server     *fuse.Server
	mountPoint string
}

// MountTree mounts tree read-only at mountPoint and serves it in the
// background. It returns once the kernel has completed the mount.
func MountTree(tree TreeViewer, mountPoint string, cfg *config.Config) (*Mount, error) {
	raw := newFuseRaw(tree, cfg)
	opts := cfg.MountOptions
	srv, err := fuse.NewServer(raw, mountPoint, &fuse.MountOptions{
		Name:    opts.Name,
		FsName:  opts.FsName,
		Debug:   opts.Debug,
		Options: []string{"ro"},
		Logger:  util.NewLogLogger("FuseServer", util.DebugLevel),
	})
	if err != nil {
		return nil, err
	}

	go srv.Serve()
	if err := srv.WaitMount(); err != nil {
		_ = srv.Unmount()
		return nil, err
	}
	raw.logger.Info().Str("mountpoint", mountPoint).Msg("Session tree mounted")
	return &Mount{server: srv, mountPoint: mountPoint}, nil
}

// Unmount cleanly unmounts the filesystem
func (m *Mount) Unmount() error {
	if m == nil || m.server == nil {
		return nil
	}
	return m.server.Unmount()
}
