package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/brettbedarf/webcli"
)

type BuiltInSourceType = string

const (
	InlineSourceType BuiltInSourceType = "inline"
	Base64SourceType BuiltInSourceType = "base64"
	LocalSourceType  BuiltInSourceType = "local"
)

// RegisterBuiltins registers all built-in sources by default
// or only the specific ones if keys are provided
func RegisterBuiltins(r *Registry, sources ...BuiltInSourceType) {
	if len(sources) == 0 {
		sources = []BuiltInSourceType{InlineSourceType, Base64SourceType, LocalSourceType}
	}

	for _, key := range sources {
		switch key {
		case InlineSourceType:
			r.Register(key, ProviderFunc(newInlineSource))
		case Base64SourceType:
			r.Register(key, ProviderFunc(newBase64Source))
		case LocalSourceType:
			r.Register(key, ProviderFunc(newLocalSource))
		}
	}
}

// NewBuiltinRegistry returns a registry with every built-in source registered
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// ProviderFunc adapts a function to [webcli.SourceProvider]
type ProviderFunc func(raw []byte) (webcli.ContentSource, error)

func (f ProviderFunc) Source(raw []byte) (webcli.ContentSource, error) {
	return f(raw)
}

// InlineSource holds file content as literal text
type InlineSource struct {
	Text string `json:"text"`
}

func newInlineSource(raw []byte) (webcli.ContentSource, error) {
	var src InlineSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

func (s *InlineSource) Content(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(s.Text), nil
}

// Base64Source holds standard base64 encoded content. Data is decoded
// when the source is built so bad input fails early.
type Base64Source struct {
	Data    string `json:"data"`
	decoded []byte
}

func newBase64Source(raw []byte) (webcli.ContentSource, error) {
	var src Base64Source
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(src.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 source: %w", err)
	}
	src.decoded = decoded
	return &src, nil
}

func (s *Base64Source) Content(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), s.decoded...), nil
}

// LocalSource copies content from a file on the host at seed time
type LocalSource struct {
	Path string `json:"path"`
}

func newLocalSource(raw []byte) (webcli.ContentSource, error) {
	var src LocalSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	if src.Path == "" {
		return nil, fmt.Errorf("local source requires a path")
	}
	return &src, nil
}

func (s *LocalSource) Content(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}
