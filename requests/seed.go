package requests

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/webcli"
	"github.com/brettbedarf/webcli/adapters"
	"github.com/brettbedarf/webcli/filesystem"
	"github.com/brettbedarf/webcli/internal/util"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// Seed is a parsed set of node definitions ready to apply to a tree
type Seed struct {
	Dirs  []*webcli.DirCreateRequest
	Files []*webcli.FileCreateRequest
}

// DefaultSeed returns the built-in home directory tree
func DefaultSeed(sources *adapters.Registry) (*Seed, error) {
	return ParseSeed(defaultSeed, ".yaml", sources)
}

// LoadSeedFile reads a seed from a .yaml, .yml or .json file
func LoadSeedFile(path string, sources *adapters.Registry) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data, filepath.Ext(path), sources)
}

// ParseSeed decodes a seed document. ext picks the format; yaml documents are
// normalised to JSON so both share one unmarshaling path.
func ParseSeed(data []byte, ext string, sources *adapters.Registry) (*Seed, error) {
	switch ext {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
		}
		data = converted
	case ".json":
	default:
		return nil, fmt.Errorf("unknown seed file extension: %q", ext)
	}

	var dto SeedDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}

	seed := &Seed{}
	for i, raw := range dto.Nodes {
		nodeType, err := GetNodeType(raw)
		if err != nil {
			return nil, fmt.Errorf("seed node %d: %w", i, err)
		}
		switch nodeType {
		case webcli.DirNodeType:
			req, err := UnmarshalDirRequest(raw)
			if err != nil {
				return nil, fmt.Errorf("seed node %d: %w", i, err)
			}
			seed.Dirs = append(seed.Dirs, req)
		case webcli.FileNodeType:
			req, err := UnmarshalFileRequest(raw, sources)
			if err != nil {
				return nil, fmt.Errorf("seed node %d: %w", i, err)
			}
			seed.Files = append(seed.Files, req)
		default:
			return nil, fmt.Errorf("seed node %d: unknown node type %q", i, nodeType)
		}
	}
	return seed, nil
}

// Apply adds every directory, then every file, to fsys. It stops at the
// first failure.
func (s *Seed) Apply(ctx context.Context, fsys *filesystem.FileSystem) error {
	logger := util.GetLogger("Seed")

	for _, req := range s.Dirs {
		if _, err := fsys.AddDirNode(req); err != nil {
			return fmt.Errorf("seed %s: %w", req.Path, err)
		}
	}
	for _, req := range s.Files {
		if _, err := fsys.AddFileNode(ctx, req); err != nil {
			return fmt.Errorf("seed %s: %w", req.Path, err)
		}
	}
	logger.Debug().Int("dirs", len(s.Dirs)).Int("files", len(s.Files)).Int("nodes", fsys.Len()).Msg("Applied seed")
	return nil
}
