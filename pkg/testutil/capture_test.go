package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureStdout(t *testing.T) {
	out, err := CaptureStdout(func() error {
		fmt.Print("hello")
		return errors.New("boom")
	})
	assert.Equal(t, "hello", out)
	assert.EqualError(t, err, "boom")
}

func TestCaptureStdout_LargeOutput(t *testing.T) {
	big := strings.Repeat("x", 1<<20)
	out, err := CaptureStdoutFunc(func() { fmt.Print(big) })
	require.NoError(t, err)
	assert.Len(t, out, len(big))
}

func TestCaptureStdout_Panic(t *testing.T) {
	stdout := os.Stdout
	_, err := CaptureStdoutFunc(func() { panic("oops") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked: oops")
	assert.Equal(t, stdout, os.Stdout, "stdout restored")
}

func TestCaptureStderr(t *testing.T) {
	out, err := CaptureStderr(func() error {
		fmt.Fprint(os.Stderr, "warn")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "warn", out)
}

func TestWithStdin(t *testing.T) {
	var got []byte
	err := WithStdin("piped text", func() error {
		var err error
		got, err = io.ReadAll(os.Stdin)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "piped text", string(got))
}
