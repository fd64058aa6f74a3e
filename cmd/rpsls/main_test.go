package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RPSLS_Command_PlaysUntilNo(t *testing.T) {
	// arrange
	var out, errOut bytes.Buffer
	cmd := newRootCommand(strings.NewReader("spock\nn\n"), &out, &errOut)
	cmd.SetArgs([]string{"--seed", "7"})

	// act
	err := cmd.ExecuteContext(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Computer chose: ")
	assert.Contains(t, out.String(), "Final score: ")
}

func Test_RPSLS_Command_SameSeedSameGame(t *testing.T) {
	play := func() string {
		var out, errOut bytes.Buffer
		cmd := newRootCommand(strings.NewReader("rock\ny\npaper\ny\nlizard\nn\n"), &out, &errOut)
		cmd.SetArgs([]string{"--seed", "99"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))

		return out.String()
	}

	assert.Equal(t, play(), play())
}
