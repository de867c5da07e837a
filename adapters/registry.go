package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/brettbedarf/webcli"
	"github.com/puzpuzpuz/xsync/v4"
)

// Registry maps a source "type" key to the provider that builds it
type Registry struct {
	providers *xsync.Map[string, webcli.SourceProvider]
}

func NewRegistry() *Registry {
	return &Registry{providers: xsync.NewMap[string, webcli.SourceProvider]()}
}

// Register ties a provider to a "type" key. The first registration for a key
// wins; later ones are ignored.
func (r *Registry) Register(sourceType string, provider webcli.SourceProvider) {
	r.providers.LoadOrStore(sourceType, provider)
}

// GetProvider returns the provider registered for sourceType
func (r *Registry) GetProvider(sourceType string) (webcli.SourceProvider, error) {
	p, ok := r.providers.Load(sourceType)
	if !ok {
		return nil, fmt.Errorf("no source provider for %q", sourceType)
	}
	return p, nil
}

// NewSource picks the provider named by the "type" field of raw and builds
// a content source from the full raw config
func (r *Registry) NewSource(raw []byte) (webcli.ContentSource, error) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to read source type: %w", err)
	}
	if meta.Type == "" {
		return nil, fmt.Errorf("source config is missing a type")
	}
	p, err := r.GetProvider(meta.Type)
	if err != nil {
		return nil, err
	}
	return p.Source(raw)
}
