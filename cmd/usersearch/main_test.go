package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-exercises-go/usersearch"
)

func noEnv(string) (string, bool) {
	return "", false
}

func Test_UserSearch_Command_InvalidTermIsRejectedBeforeConnecting(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut, noEnv)
	cmd.SetArgs([]string{"x' OR 1=1"})

	err := cmd.ExecuteContext(context.Background())

	assert.ErrorIs(t, err, usersearch.ErrInvalidSearchTerm)
	assert.Empty(t, out.String())
}

func Test_UserSearch_Command_MissingEnv_Fails(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut, noEnv)
	cmd.SetArgs([]string{"alice"})

	err := cmd.ExecuteContext(context.Background())

	assert.ErrorIs(t, err, usersearch.ErrMissingEnv)
	assert.ErrorContains(t, err, usersearch.EnvServer)
}
