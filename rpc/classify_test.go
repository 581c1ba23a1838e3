package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNetworkError(t *testing.T) {
	specs := map[string]struct {
		err error
		exp bool
	}{
		"nil":               {err: nil},
		"url error":         {err: fmt.Errorf("post failed: %w", &url.Error{Op: "Post", URL: "http://127.0.0.1:1", Err: syscall.ECONNREFUSED}), exp: true},
		"refused":           {err: fmt.Errorf("dial: %w", syscall.ECONNREFUSED), exp: true},
		"deadline":          {err: context.DeadlineExceeded, exp: true},
		"unavailable":       {err: status.Error(codes.Unavailable, "transport is closing"), exp: true},
		"grpc deadline":     {err: status.Error(codes.DeadlineExceeded, "deadline"), exp: true},
		"contract error":    {err: status.Error(codes.Unknown, "execute wasm contract failed")},
		"answered refusal":  {err: status.Error(codes.Unknown, "contract says: connection refused")},
		"plain refused":     {err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), exp: true},
		"plain no host":     {err: errors.New("dial tcp: lookup nowhere: no such host"), exp: true},
		"unrelated failure": {err: errors.New("boom")},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, spec.exp, isNetworkError(spec.err))
		})
	}
}

func TestClassifyQueryError(t *testing.T) {
	specs := map[string]struct {
		err error
		exp error
	}{
		"network":   {err: status.Error(codes.Unavailable, "down"), exp: ErrNetwork},
		"not found": {err: status.Error(codes.NotFound, "gone"), exp: ErrNotFound},
		"no such":   {err: status.Error(codes.Unknown, "no such contract: terra1..."), exp: ErrNotFound},
		"contract":  {err: status.Error(codes.InvalidArgument, "unknown variant `foo`"), exp: ErrContractQuery},
		"missing storage key": {
			err: status.Error(codes.Unknown, "Generic error: cw20::state::TokenInfo not found: query wasm contract failed"),
			exp: ErrContractQuery,
		},
		"plain no such contract": {err: errors.New("no such contract: terra1..."), exp: ErrNotFound},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, classifyQueryError(spec.err, "terra1contract"), spec.exp)
		})
	}
}
