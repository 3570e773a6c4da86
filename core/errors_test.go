package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EINVALIDIMAGE, "cannot decode %s", "page.png")
	assert.Equal(t, EINVALIDIMAGE, Code(err))
	assert.Equal(t, "cannot decode page.png", UserMessage(err))
	assert.True(t, Is(err, EINVALIDIMAGE))
	assert.False(t, Is(err, EEMPTYINPUT))
}

func TestWrappedErrorKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := WrapError(cause, EINVALIDIMAGE, "glyph %q", "a.png")
	assert.True(t, errors.Is(err, cause), "expected cause to be in error chain")
	outer := fmt.Errorf("vectorizing: %w", err)
	assert.Equal(t, EINVALIDIMAGE, Code(outer), "code should survive further wrapping")
}

func TestPlainErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("boom")))
	assert.Equal(t, "internal error", UserMessage(errors.New("boom")))
	assert.False(t, Is(nil, NOERROR))
}

func TestErrorWithCodeOnNil(t *testing.T) {
	err := ErrorWithCode(nil, EEMPTYINPUT)
	assert.NotNil(t, err)
	assert.Equal(t, EEMPTYINPUT, Code(err))
	assert.Equal(t, "empty input", UserMessage(err))
}
