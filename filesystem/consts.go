package filesystem

import "syscall"

type SysAttrType = uint32

const (
	DirAttr  SysAttrType = syscall.S_IFDIR
	FileAttr SysAttrType = syscall.S_IFREG
)

// Default permission bits for nodes created without explicit perms
const (
	DefaultDirPerms  = 0o755
	DefaultFilePerms = 0o644
)

// DirDisplaySize is the size long listings report for directories
const DirDisplaySize = 4096
