package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/mock"
	hdrslog "github.com/fwojciec/hdrmap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingEmitter_Emit(t *testing.T) {
	t.Parallel()

	headers := make(hdrmap.HeaderMap)
	headers.Add("cstdio", "printf", "puts")
	result := &hdrmap.Result{RunID: "run-1", Headers: headers}

	t.Run("logs header and identifier counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var emitted *hdrmap.Result
		inner := &mock.Emitter{
			EmitFn: func(_ context.Context, r *hdrmap.Result) error {
				emitted = r
				return nil
			},
		}

		err := hdrslog.NewLoggingEmitter(inner, slog.New(slog.NewTextHandler(&buf, nil))).Emit(context.Background(), result)

		require.NoError(t, err)
		assert.Same(t, result, emitted)
		output := buf.String()
		assert.Contains(t, output, "msg=emit")
		assert.Contains(t, output, "run=run-1")
		assert.Contains(t, output, "headers=1")
		assert.Contains(t, output, "identifiers=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Emitter{
			EmitFn: func(_ context.Context, _ *hdrmap.Result) error {
				return errors.New("disk full")
			},
		}

		err := hdrslog.NewLoggingEmitter(inner, slog.New(slog.NewTextHandler(&buf, nil))).Emit(context.Background(), result)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
