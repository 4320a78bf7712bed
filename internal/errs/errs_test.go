// SPDX-License-Identifier: MIT

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphErrorMessage(t *testing.T) {
	err := &GraphError{Code: CodeMalformedGraph, Message: "nil Bod on Lam"}
	assert.Equal(t, "[MALFORMED_GRAPH] nil Bod on Lam", err.Error())
}

func TestFailPanicsWithGraphError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		ge, ok := r.(*GraphError)
		require.True(t, ok, "panic value is %T, want *GraphError", r)
		assert.Equal(t, CodeInfiniteLoop, ge.Code)
		assert.Equal(t, "exceeded 42 steps", ge.Message)
	}()
	Fail(CodeInfiniteLoop, "exceeded %d steps", 42)
}

func TestRecoverCapturesGraphError(t *testing.T) {
	err := run(func() {
		Fail(CodeUnknownRef, "no definition for %q", "foo")
	})
	require.Error(t, err)
	var ge *GraphError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, CodeUnknownRef, ge.Code)
}

func TestRecoverIsNoopWithoutPanic(t *testing.T) {
	err := run(func() {})
	assert.NoError(t, err)
}

func TestRecoverRepanicsOtherValues(t *testing.T) {
	assert.PanicsWithValue(t, "not a GraphError", func() {
		_ = run(func() {
			panic("not a GraphError")
		})
	})
}

// run calls fn under a deferred Recover, mirroring how cmd/lambdag wraps
// a reduction call at its CLI boundary.
func run(fn func()) (err error) {
	defer Recover(&err)
	fn()
	return nil
}
