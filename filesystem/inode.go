package filesystem

import (
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// Inode holds a node's attributes and, for files, its content.
// Created is tracked in Ctime and Modified in Mtime.
type Inode struct {
	// Low-level fuse wire protocol attributes; Ino always equals the owning NodeID
	attr    *fuse.Attr
	content []byte
	owner   string // cosmetic owner name
}

func NewInode(attr *fuse.Attr, owner string) *Inode {
	return &Inode{
		attr:  attr,
		owner: owner,
	}
}

// CopyAttr returns a copy of the inode's attributes
func (n *Inode) CopyAttr() fuse.Attr {
	return *n.attr
}

func (n *Inode) IsDir() bool {
	return n.attr.Mode&syscall.S_IFMT == syscall.S_IFDIR
}

// Size is the content length for files and 0 for directories
func (n *Inode) Size() uint64 {
	return n.attr.Size
}

// Perms returns the permission bits without the file type
func (n *Inode) Perms() uint32 {
	return n.attr.Mode & 0o777
}

func (n *Inode) Owner() string {
	return n.owner
}

func (n *Inode) Created() time.Time {
	return time.Unix(int64(n.attr.Ctime), int64(n.attr.Ctimensec))
}

func (n *Inode) Modified() time.Time {
	return time.Unix(int64(n.attr.Mtime), int64(n.attr.Mtimensec))
}

// Permissions renders the mode the way ls -l does, e.g. "drwxr-xr-x"
func (n *Inode) Permissions() string {
	const rwx = "rwxrwxrwx"
	buf := []byte("----------")
	if n.IsDir() {
		buf[0] = 'd'
	}
	perms := n.Perms()
	for i := 0; i < 9; i++ {
		if perms&(1<<uint(8-i)) != 0 {
			buf[i+1] = rwx[i]
		}
	}
	return string(buf)
}

// Content returns a copy of the file content
func (n *Inode) Content() []byte {
	return append([]byte(nil), n.content...)
}

func (n *Inode) setContent(b []byte, now time.Time) {
	n.content = append([]byte(nil), b...)
	n.attr.Size = uint64(len(n.content))
	n.touch(now)
}

func (n *Inode) appendContent(b []byte, now time.Time) {
	n.content = append(n.content, b...)
	n.attr.Size = uint64(len(n.content))
	n.touch(now)
}

// touch bumps the modified time
func (n *Inode) touch(now time.Time) {
	n.attr.Mtime = uint64(now.Unix())
	n.attr.Mtimensec = uint32(now.Nanosecond())
}

// newDefaultAttr returns the default attributes for a new node
// NOTE: Make sure to set the Mode field appropriately
func newDefaultAttr(ino uint64, now time.Time, uid, gid uint32) *fuse.Attr {
	return &fuse.Attr{
		Ino:   ino,
		Nlink: 1,
		Owner: fuse.Owner{
			Uid: uid,
			Gid: gid,
		},
		Atime:     uint64(now.Unix()),
		Mtime:     uint64(now.Unix()),
		Ctime:     uint64(now.Unix()),
		Atimensec: uint32(now.Nanosecond()),
		Mtimensec: uint32(now.Nanosecond()),
		Ctimensec: uint32(now.Nanosecond()),
		Blksize:   4096, // preferred size for fs ops
	}
}

func setTimes(attr *fuse.Attr, created, modified time.Time) {
	attr.Ctime = uint64(created.Unix())
	attr.Ctimensec = uint32(created.Nanosecond())
	attr.Mtime = uint64(modified.Unix())
	attr.Mtimensec = uint32(modified.Nanosecond())
}
