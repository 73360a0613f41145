package printer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(os.Stdout, os.Stderr) })
	return &out, &errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "This is a test error")
	})

	t.Run("single suggestion is printed bare", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Try this fix")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Either:")
		assert.Contains(t, errOut.String(), "2. Second option")
	})
}

func TestErrorWithContext(t *testing.T) {
	_, errOut := capture(t)
	context := map[string]string{
		"Redis":  "redis://localhost:6379",
		"Colony": "test-colony",
	}
	err := ErrorWithContext("Test Error", "Explanation", context, nil)
	require.Error(t, err)
	require.Equal(t, "Test Error", err.Error())

	out := errOut.String()
	assert.Less(t, strings.Index(out, "Colony:"), strings.Index(out, "Redis:"), "context keys should be sorted")
}

func TestSuccessAndWarning(t *testing.T) {
	out, _ := capture(t)

	Success("done\n")
	Success("✓ already marked\n")
	Warning("careful\n")

	assert.Contains(t, out.String(), "✓ done")
	assert.Equal(t, 1, strings.Count(out.String(), "✓ already"))
	assert.Contains(t, out.String(), "careful")
}

func TestWriter_FollowsSetOutput(t *testing.T) {
	out, _ := capture(t)
	_, err := Writer().Write([]byte("report row\n"))
	require.NoError(t, err)
	assert.Equal(t, "report row\n", out.String())
}
