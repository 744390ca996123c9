package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "bad pipeline", nil)))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad flag", nil)))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", nil))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitErrorMessage(t *testing.T) {
	bare := WrapExitError(ExitFailure, "drain failed", nil)
	assert.Equal(t, "drain failed", bare.Error())

	cause := errors.New("disk full")
	withCause := WrapExitError(ExitFailure, "drain failed", cause)
	assert.Equal(t, "drain failed: disk full", withCause.Error())
	assert.ErrorIs(t, withCause, cause)
}

func TestFormatterSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewOutputFormatter("json", buf, false)

	require.NoError(t, f.Success(map[string]int{"count": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewOutputFormatter("json", buf, false)

	require.NoError(t, f.Error("P002", "schema violation", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "P002", resp.Error.Code)
}

func TestFormatterErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewOutputFormatter("text", buf, false)

	require.NoError(t, f.Error("P001", "file unreadable", nil))
	assert.Contains(t, buf.String(), "Error [P001]: file unreadable")
}

func TestFormatterCountfSeparatesThousands(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewOutputFormatter("text", buf, false)

	f.Countf("%d elements\n", 1234567)
	assert.Equal(t, "1,234,567 elements\n", buf.String())
}
