// Package fs provides file-based output for crawl results.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/hdrmap"
)

// Ensure JSONEmitter implements hdrmap.Emitter at compile time.
var _ hdrmap.Emitter = (*JSONEmitter)(nil)

// JSONEmitter writes the header map as a JSON object of header to sorted
// identifier array. The file is written to a temporary sibling and renamed
// into place, so readers never see a partial document.
type JSONEmitter struct {
	path   string
	indent string
}

// JSONOption configures a JSONEmitter.
type JSONOption func(*JSONEmitter)

// WithIndent sets the indentation used for each nesting level.
// An empty indent produces compact output.
func WithIndent(indent string) JSONOption {
	return func(e *JSONEmitter) {
		e.indent = indent
	}
}

// NewJSONEmitter creates a JSONEmitter writing to path.
func NewJSONEmitter(path string, opts ...JSONOption) *JSONEmitter {
	e := &JSONEmitter{path: path, indent: "  "}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes result.Headers to the configured path.
func (e *JSONEmitter) Emit(ctx context.Context, result *hdrmap.Result) error {
	if e.path == "" {
		return hdrmap.Errorf(hdrmap.EINVALID, "output path required")
	}

	data, err := MarshalHeaders(result.Headers, e.indent)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := e.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, e.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// MarshalHeaders encodes headers with sorted keys and sorted identifiers.
func MarshalHeaders(headers hdrmap.HeaderMap, indent string) ([]byte, error) {
	sorted := headers.Sorted()
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = json.Marshal(sorted)
	} else {
		data, err = json.MarshalIndent(sorted, "", indent)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
