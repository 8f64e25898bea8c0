// Package testutil provides helpers shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// CaptureStdout runs f with os.Stdout redirected and returns what it wrote
// together with the error f returned. A panic in f is recovered and
// returned as an error.
func CaptureStdout(f func() error) (string, error) {
	return capture(&os.Stdout, f)
}

// CaptureStdoutFunc is CaptureStdout for functions that do not return an error.
func CaptureStdoutFunc(f func()) (string, error) {
	return CaptureStdout(func() error {
		f()
		return nil
	})
}

// CaptureStderr is CaptureStdout for os.Stderr.
func CaptureStderr(f func() error) (string, error) {
	return capture(&os.Stderr, f)
}

// WithStdin runs f with os.Stdin reading from input.
func WithStdin(input string, f func() error) error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("withStdin: failed to create pipe: %w", err)
	}

	go func() {
		_, _ = io.WriteString(w, input)
		_ = w.Close()
	}()

	old := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = old
		_ = r.Close()
	}()

	return f()
}

func capture(target **os.File, f func() error) (string, error) {
	old := *target
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		return "", fmt.Errorf("capture: failed to create pipe: %w", pipeErr)
	}

	// drain concurrently so large outputs do not block the writer
	outCh := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		outCh <- buf.String()
	}()

	*target = w

	var fErr error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				fErr = fmt.Errorf("capture: f() panicked: %v", rec)
			}
		}()
		fErr = f()
	}()

	_ = w.Close()
	*target = old

	return <-outCh, fErr
}
