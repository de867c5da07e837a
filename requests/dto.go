package requests

import (
	"encoding/json"
	"time"

	"github.com/brettbedarf/webcli"
)

// SeedDTO is the document form of a seed file
type SeedDTO struct {
	Nodes []json.RawMessage `json:"nodes"`
}

// NodeRequestDTO is the JSON representation of [webcli.NodeRequest]
type NodeRequestDTO struct {
	Path  string                       `json:"path"`
	Type  webcli.NodeCreateRequestType `json:"type"`
	Mtime *time.Time                   `json:"mtime,omitempty"` // Last Modified at (Default current time)
	Ctime *time.Time                   `json:"ctime,omitempty"` // Created at (Default current time)
	Perms *string                      `json:"perms,omitempty"` // Octal string i.e. "0755"
	Owner *string                      `json:"owner,omitempty"`
}

// FileRequestDTO is the JSON representation of [webcli.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO
	// Source is handed whole to the provider registered for its "type",
	// see the adapters package for built-in fields
	Source json.RawMessage `json:"source,omitempty"`
}

type DirRequestDTO struct {
	NodeRequestDTO
}
