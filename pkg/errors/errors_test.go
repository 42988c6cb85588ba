// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btjanaka/dance/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"stage already run", errors.CodeStageAlreadyRun, "Generator has already been run"},
		{"props key missing", errors.CodePropsKeyMissing, "molecule was never annotated"},
		{"output exists", errors.CodeOutputExists, "selection output directory already exists"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestError_FormatsCodeMessageDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodePropsKeyRange, "property key out of range")
	assert.Equal(t, "[PROPS_002] property key out of range", ae.Error())

	withDetail := ae.WithDetail("key=7 len=3")
	assert.Equal(t, "[PROPS_002] property key out of range: key=7 len=3", withDetail.Error())
	// The original is not mutated.
	assert.Empty(t, ae.Detail)
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeIO, "should vanish"))
}

func TestWrap_PreservesCodeForUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeOutputExists, "directory exists")
	wrapped := errors.Wrap(inner, errors.CodeUnknown, "selection failed")

	assert.Equal(t, errors.CodeOutputExists, wrapped.Code)
	assert.True(t, stderrors.Is(wrapped, wrapped))
	assert.Same(t, inner, stderrors.Unwrap(wrapped))
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeChargeNotConverged, "charges did not converge")
	mid := errors.Wrap(inner, errors.CodeInternal, "engine call failed")
	outer := fmt.Errorf("generate: %w", mid)

	assert.True(t, errors.IsCode(outer, errors.CodeChargeNotConverged))
	assert.True(t, errors.IsCode(outer, errors.CodeInternal))
	assert.False(t, errors.IsCode(outer, errors.CodeOutputExists))
	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodePairMismatch,
		errors.GetCode(errors.New(errors.CodePairMismatch, "odd input count")))
}

func TestConvenienceFactories(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeNotFound, errors.NotFound("missing").Code)
	assert.Equal(t, errors.CodeInvalidParam, errors.InvalidParam("bad").Code)
	assert.Equal(t, errors.CodeInternal, errors.Internal("boom").Code)
	assert.Equal(t, errors.CodeConflict, errors.Conflict("state").Code)
}

func TestWithCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	ae := errors.New(errors.CodeIO, "write failed").WithCause(cause)

	assert.Same(t, cause, stderrors.Unwrap(ae))
}
