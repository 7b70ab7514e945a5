package cmdutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())

	inner := errors.New("phpDocumentor.phar exited with status 3")
	err := &ExitError{Code: 3, Err: inner}
	assert.Equal(t, inner.Error(), err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestFlagErrorf(t *testing.T) {
	err := FlagErrorf("--%s and --%s cannot be used together", "config", "no-config")

	var flagErr *FlagError
	assert.True(t, errors.As(err, &flagErr))
	assert.Equal(t, "--config and --no-config cannot be used together", err.Error())
}
