package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForCLI_IncludesHintAndCode(t *testing.T) {
	// Given: a missing argument error
	err := MissingArgument("history")

	// When: formatting for the terminal
	result := FormatForCLI(err)

	// Then: message, hint and code are all present
	assert.Contains(t, result, "Error: required argument --history is missing")
	assert.Contains(t, result, "Hint: pass --history <int>")
	assert.Contains(t, result, "Code: ERR_401_MISSING_ARGUMENT")
}

func TestFormatForCLI_WrapsStandardError(t *testing.T) {
	result := FormatForCLI(errors.New("disk on fire"))

	assert.Contains(t, result, "disk on fire")
	assert.Contains(t, result, ErrCodeInternal)
}

func TestFormatJSON_RoundTrip(t *testing.T) {
	err := IOFailure("/tmp/x", errors.New("no space left on device"))

	data, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeIOFailure, decoded["code"])
	assert.Equal(t, "IO", decoded["category"])
	assert.Equal(t, "no space left on device", decoded["cause"])
}

func TestFormatForLog_IncludesDetails(t *testing.T) {
	err := InvalidDimension("samples", 0, "part count must be positive")

	fields := FormatForLog(err)

	assert.Equal(t, ErrCodeInvalidDimension, fields["error_code"])
	assert.Equal(t, "samples", fields["detail_parameter"])
	assert.Equal(t, "0", fields["detail_value"])
}

func TestFormatForLog_StandardError(t *testing.T) {
	fields := FormatForLog(errors.New("plain"))

	assert.Equal(t, map[string]any{"error": "plain"}, fields)
	assert.Nil(t, FormatForLog(nil))
}
