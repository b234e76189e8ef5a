package typemap_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/typemap"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := typemap.Errorf(typemap.EFORMAT, "section %q not found", "Parameters")

	assert.Equal(t, typemap.EFORMAT, typemap.ErrorCode(err))
	assert.Equal(t, "section \"Parameters\" not found", typemap.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, typemap.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, typemap.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("reading corpus: %w", typemap.Errorf(typemap.ENOTFOUND, "missing"))

	assert.Equal(t, typemap.ENOTFOUND, typemap.ErrorCode(err))
	assert.Equal(t, "missing", typemap.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, typemap.EINTERNAL, typemap.ErrorCode(err))
	assert.Equal(t, "Internal error.", typemap.ErrorMessage(err))
}
