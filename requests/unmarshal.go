package requests

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/brettbedarf/webcli"
	"github.com/brettbedarf/webcli/adapters"
)

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (webcli.NodeCreateRequestType, error) {
	var meta struct {
		Type webcli.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest handles file-specific unmarshaling with its source.
// A file without a source is created empty.
func UnmarshalFileRequest(data []byte, sources *adapters.Registry) (*webcli.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	node, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}

	req := &webcli.FileCreateRequest{NodeRequest: node}
	if len(dto.Source) > 0 && string(dto.Source) != "null" {
		src, err := sources.NewSource(dto.Source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, err)
		}
		req.Source = src
	}
	return req, nil
}

// UnmarshalDirRequest handles explicit directory unmarshaling (no source)
func UnmarshalDirRequest(data []byte) (*webcli.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	node, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}
	return &webcli.DirCreateRequest{NodeRequest: node}, nil
}

// convertNodeDTO leaves unset times and perms zero so the filesystem
// applies its own defaults
func convertNodeDTO(dto NodeRequestDTO) (webcli.NodeRequest, error) {
	if dto.Path == "" {
		return webcli.NodeRequest{}, fmt.Errorf("node definition is missing a path")
	}

	var perms uint32
	if dto.Perms != nil {
		p, err := strconv.ParseUint(*dto.Perms, 8, 32)
		if err != nil || p > 0o777 {
			return webcli.NodeRequest{}, fmt.Errorf("%s: invalid perms %q", dto.Path, *dto.Perms)
		}
		perms = uint32(p)
	}

	return webcli.NodeRequest{
		Path:  dto.Path,
		Type:  dto.Type,
		Mtime: valueOrDefault(dto.Mtime, time.Time{}),
		Ctime: valueOrDefault(dto.Ctime, time.Time{}),
		Perms: perms,
		Owner: valueOrDefault(dto.Owner, ""),
	}, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
