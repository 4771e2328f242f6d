package errors_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	berrors "github.com/javijec/new-biblia/internal/errors"
)

func TestNotFoundError(t *testing.T) {
	err := berrors.NewNotFound("book", "genesis")

	assert.Equal(t, "book not found: genesis", err.Error())
	assert.True(t, berrors.IsNotFound(err))
	assert.True(t, berrors.IsNotFound(fmt.Errorf("load: %w", err)))

	var nf *berrors.NotFoundError
	assert.True(t, berrors.As(err, &nf))
	assert.Equal(t, "genesis", nf.ID)

	assert.Equal(t, "artifact not found", (&berrors.NotFoundError{Resource: "artifact"}).Error())
}

func TestValidationError(t *testing.T) {
	err := berrors.NewValidation("build.encoding", "unknown charset")

	assert.Equal(t, "validation failed for build.encoding: unknown charset", err.Error())
	assert.True(t, berrors.IsInvalidInput(err))
	assert.False(t, berrors.IsNotFound(err))
}

func TestIOError(t *testing.T) {
	err := berrors.NewIO("read", "/tmp/x.htm", os.ErrNotExist)

	assert.Contains(t, err.Error(), "failed to read /tmp/x.htm")
	assert.True(t, berrors.Is(err, os.ErrNotExist))
}

func TestParseError(t *testing.T) {
	inner := fmt.Errorf("unexpected EOF")
	err := berrors.NewParse("HTML", "__P1.HTM", "truncated document", inner)

	assert.Equal(t, "failed to parse HTML at __P1.HTM: truncated document", err.Error())
	assert.True(t, berrors.Is(err, inner))
}
