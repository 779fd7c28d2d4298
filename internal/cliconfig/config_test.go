package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every JSONMATCH_* variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvConfig, EnvLogLevel, EnvLogFormat, EnvJSON, EnvConcurrency, EnvAllDifferences} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{
			name:   "valid defaults",
			config: *NewDefault(),
		},
		{
			name:   "zero values allowed",
			config: CLIConfig{},
		},
		{
			name:    "concurrency negative",
			config:  CLIConfig{Concurrency: -1},
			wantErr: "concurrency -1 is out of range",
		},
		{
			name:    "concurrency too high",
			config:  CLIConfig{Concurrency: MaxConcurrency + 1},
			wantErr: "concurrency 1025 is out of range",
		},
		{
			name:    "unknown log level",
			config:  CLIConfig{LogLevel: "trace"},
			wantErr: `logLevel "trace"`,
		},
		{
			name:    "unknown log format",
			config:  CLIConfig{LogFormat: "xml"},
			wantErr: `logFormat "xml"`,
		},
		{
			name:   "case insensitive",
			config: CLIConfig{LogLevel: "DEBUG", LogFormat: "JSON"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Positive(t, cfg.Concurrency)
	assert.False(t, cfg.JSON)
	assert.Equal(t, SourceDefault, cfg.Sources["concurrency"])
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{LogLevel: "debug", Concurrency: 3}, SourceFile)

		assert.Equal(t, "debug", target.LogLevel)
		assert.Equal(t, 3, target.Concurrency)
		assert.Equal(t, SourceFile, target.Sources["logLevel"])
		assert.Equal(t, SourceDefault, target.Sources["logFormat"])
	})

	t.Run("handles boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true

		MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"json": true}}, SourceFile)
		assert.False(t, target.JSON)
		assert.Equal(t, SourceFile, target.Sources["json"])
	})

	t.Run("does not merge boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.AllDifferences = true

		MergeConfig(target, &CLIConfig{}, SourceFile)
		assert.True(t, target.AllDifferences)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceFile)
		assert.Equal(t, NewDefault(), target)
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, dir, "valid.yaml", "logLevel: debug\njson: false\nconcurrency: 2\n")
		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 2, cfg.Concurrency)
		assert.Equal(t, path, cfg.ConfigFile)
		assert.Equal(t, map[string]bool{"logLevel": true, "json": true, "concurrency": true}, cfg.SetFields)
	})

	t.Run("empty", func(t *testing.T) {
		cfg, err := LoadConfigFile(writeFile(t, dir, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Empty(t, cfg.SetFields)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "nope.yaml"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown key",
			content: "logLevel: debug\ncolour: red\n",
			want:    `(line 2, column 1): unknown key "colour"`,
		},
		{
			name:    "not a mapping",
			content: "- a\n- b\n",
			want:    "(line 1, column 1): config must be a mapping",
		},
		{
			name:    "wrong type",
			content: "concurrency: lots\n",
			want:    "(line 1): ",
		},
		{
			name:    "syntax error",
			content: "logLevel: [debug\n",
			want:    "line ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.content)
			_, err := LoadConfigFile(path)

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, path, cerr.Path)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	assert.Equal(t, "c.yaml: boom", (&ConfigError{Path: "c.yaml", Message: "boom"}).Error())
	assert.Equal(t, "c.yaml (line 3): boom", (&ConfigError{Path: "c.yaml", Line: 3, Message: "boom"}).Error())
	assert.Equal(t, "c.yaml (line 3, column 7): boom",
		(&ConfigError{Path: "c.yaml", Line: 3, Column: 7, Message: "boom"}).Error())
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, ".jsonmatch.yaml", "logLevel: info\nlogFormat: json\nallDifferences: true\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.AllDifferences)
	assert.Equal(t, SourceFile, cfg.Sources["logLevel"])
	assert.Equal(t, ".jsonmatch.yaml", filepath.Base(cfg.ConfigFile))

	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvConcurrency, "7")
	t.Setenv(EnvAllDifferences, "0")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, SourceEnv, cfg.Sources["logLevel"])
	assert.Equal(t, 7, cfg.Concurrency)
	assert.False(t, cfg.AllDifferences)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_ExplicitPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, ".jsonmatch.yaml", "logLevel: info\n")
	envPath := writeFile(t, dir, "env.yaml", "logLevel: warn\n")
	flagPath := writeFile(t, dir, "flag.yaml", "logLevel: debug\n")

	t.Setenv(EnvConfig, envPath)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = Load(flagPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(EnvConcurrency, "-4")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency -4")
}

func TestLoadEnvConfig_IgnoresBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConcurrency, "many")
	t.Setenv(EnvJSON, "yes")

	cfg := NewDefault()
	want := cfg.Concurrency
	LoadEnvConfig(cfg)

	assert.Equal(t, want, cfg.Concurrency)
	assert.True(t, cfg.JSON)
	assert.Equal(t, SourceEnv, cfg.Sources["json"])
}
