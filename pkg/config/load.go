package config

import (
	"fmt"

	"cellgrid/pkg/js"
	"cellgrid/pkg/layout"
	"cellgrid/pkg/resource"
	stdnet "cellgrid/std/net"
)

// Source produces the configuration a host builds or rebuilds from.
type Source interface {
	Config() (*layout.CellConfig, error)
}

// Static is a Source for a decoded document.
type Static struct {
	cfg *layout.CellConfig
}

// NewStatic wraps cfg.
func NewStatic(cfg *layout.CellConfig) Static {
	return Static{cfg: cfg}
}

// Config returns the wrapped tree.
func (s Static) Config() (*layout.CellConfig, error) {
	if s.cfg == nil {
		return nil, fmt.Errorf("%w: empty source", layout.ErrInvalidConfig)
	}
	return s.cfg, nil
}

// Load fetches uri and returns a Source for it. ".js" documents are compiled
// on engine (a fresh one when nil); everything else is decoded as YAML or
// JSON. A nil fetcher reads local files and http(s) URLs.
func Load(uri string, fetcher resource.Fetcher, engine *js.Engine) (Source, error) {
	if fetcher == nil {
		fetcher = resource.NewFetcher("")
	}
	text, err := resource.FetchText(fetcher, uri)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", uri, err)
	}

	switch stdnet.Ext(uri) {
	case ".js", ".mjs":
		if engine == nil {
			engine = js.New()
		}
		s, err := engine.Compile(uri, text)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", uri, err)
		}
		return s, nil
	}

	cfg, err := Decode([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", uri, err)
	}
	return NewStatic(cfg), nil
}
