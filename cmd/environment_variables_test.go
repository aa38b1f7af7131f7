package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlagsFromEnvVariables(t *testing.T) {
	t.Run("override flag with env var", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("foo", "default", "")
		t.Setenv("FORMULAIC_FOO", "bar")
		require.NoError(t, SetFlagsFromEnvVariables(fs))
		require.NoError(t, fs.Parse(nil))
		assert.Equal(t, "bar", *got)
	})
	t.Run("dashes become underscores", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("api-key", "", "")
		t.Setenv("FORMULAIC_API_KEY", "secret")
		require.NoError(t, SetFlagsFromEnvVariables(fs))
		assert.Equal(t, "secret", *got)
	})
	t.Run("command line takes precedence", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("foo", "default", "")
		t.Setenv("FORMULAIC_FOO", "bar")
		require.NoError(t, fs.Parse([]string{"--foo", "flag"}))
		require.NoError(t, SetFlagsFromEnvVariables(fs))
		assert.Equal(t, "flag", *got)
	})
	t.Run("override flag with env var file", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("foo", "default", "")
		t.Setenv("FORMULAIC_FOO_FILE", "./testdata/formulaic_foo_file")
		require.NoError(t, SetFlagsFromEnvVariables(fs))
		require.NoError(t, fs.Parse(nil))
		assert.Equal(t, "big\nmultiline\nsecret\n", *got)
	})
	t.Run("ignore env var for flag ending with _file", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("foo_file", "default", "")
		t.Setenv("FORMULAIC_FOO_FILE_FILE", "./testdata/formulaic_foo_file")
		require.NoError(t, SetFlagsFromEnvVariables(fs))
		require.NoError(t, fs.Parse(nil))
		assert.Equal(t, "default", *got)
	})
	t.Run("override flag with non-existent env var file", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		_ = fs.String("foo", "default", "")
		t.Setenv("FORMULAIC_FOO_FILE", "./does-not-exist")
		assert.Error(t, SetFlagsFromEnvVariables(fs))
	})
	t.Run("invalid value", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		_ = fs.Bool("debug", false, "")
		t.Setenv("FORMULAIC_DEBUG", "maybe")
		assert.Error(t, SetFlagsFromEnvVariables(fs))
	})
}

func TestFprintError(t *testing.T) {
	var buf bytes.Buffer
	FprintError(&buf, errors.New("Failed to get models: timeout"))
	assert.Contains(t, buf.String(), "Failed to get models: timeout\n")
}

func TestFlagToEnvVarName(t *testing.T) {
	for flag, want := range map[string]string{
		"address":    "FORMULAIC_ADDRESS",
		"api-key":    "FORMULAIC_API_KEY",
		"log-format": "FORMULAIC_LOG_FORMAT",
		"v":          "FORMULAIC_V",
	} {
		assert.Equal(t, want, flagToEnvVarName(&pflag.Flag{Name: flag}), flag)
	}
}
