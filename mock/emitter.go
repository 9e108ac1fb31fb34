package mock

import (
	"context"

	"github.com/fwojciec/hdrmap"
)

var _ hdrmap.Emitter = (*Emitter)(nil)

// Emitter is a mock implementation of hdrmap.Emitter.
type Emitter struct {
	EmitFn func(ctx context.Context, result *hdrmap.Result) error
}

func (e *Emitter) Emit(ctx context.Context, result *hdrmap.Result) error {
	return e.EmitFn(ctx, result)
}
