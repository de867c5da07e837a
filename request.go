package webcli

import "time"

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path  string // Absolute or root-relative path of the node
	Type  NodeCreateRequestType
	Mtime time.Time // Last Modified at
	Ctime time.Time // Created at
	Perms uint32    // i.e. 0755
	Owner string    // Cosmetic owner name; empty uses the filesystem default
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir"
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

type FileCreateRequest struct {
	NodeRequest
	Source ContentSource // nil creates an empty file
}

type DirCreateRequest struct {
	NodeRequest
}
