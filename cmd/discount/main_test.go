package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Discount_Command(t *testing.T) {
	testCases := []struct {
		args     []string
		expected string
	}{
		{[]string{"150", "vip"}, "120.00\n"},
		{[]string{"80", "member"}, "76.00\n"},
		{[]string{"100", "regular"}, "100.00\n"},
		{[]string{"200", "unknown"}, "200.00\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.args[0]+" "+tc.args[1], func(t *testing.T) {
			var out, errOut bytes.Buffer
			cmd := newRootCommand(&out, &errOut)
			cmd.SetArgs(tc.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func Test_Discount_Command_InvalidPrice(t *testing.T) {
	for _, price := range []string{"abc", "-5"} {
		var out, errOut bytes.Buffer
		cmd := newRootCommand(&out, &errOut)
		cmd.SetArgs([]string{"--", price, "vip"})

		assert.ErrorIs(t, cmd.Execute(), ErrInvalidPrice, price)
	}
}
