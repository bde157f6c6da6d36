package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_TrailingWhitespace(t *testing.T) {
	tests := []struct {
		description string
		code        string
		expect      string
	}{
		{
			description: "trims trailing spaces on a statement line",
			code:        "func ready():   \n\tpass\n",
			expect:      "func ready():\n\tpass\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			out, err := FormatDefault(tc.code)
			if !assert.NoError(t, err, tc.description) {
				return
			}
			assert.Equal(t, tc.expect, out, tc.description)
		})
	}
}

func TestFormat_CollapseBlankLines(t *testing.T) {
	code := "func a():\n\tpass\n\n\n\n\n\nfunc b():\n\tpass\n"
	out, err := FormatDefault(code)
	assert.NoError(t, err)
	assert.Equal(t, "func a():\n\tpass\n\n\nfunc b():\n\tpass\n", out)
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"func ready():    \n\tpass\n\n\n\n\nfunc go():\n\tif true:\n\t\tpass\n",
		"static signal my_signal(value, other_value)\n",
		"",
	}
	for _, in := range inputs {
		once, err := FormatDefault(in)
		assert.NoError(t, err)
		twice, err := FormatDefault(once)
		assert.NoError(t, err)
		assert.Equal(t, once, twice, "format(format(S)) must equal format(S) for %q", in)
	}
}

func TestFormat_NormalizesSpaceIndentationToTabs(t *testing.T) {
	code := "func ready():\n  pass\n"
	out, err := Format(code, DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, "func ready():\n\tpass\n", out)
}
