package cfgm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/cfgm"
)

type envConfig struct {
	Prefix string `json:"prefix"`
	File   string `json:"file"`
}

type testConfig struct {
	Template string        `json:"template"`
	Schema   string        `json:"schema"`
	Strict   bool          `json:"strict"`
	Retries  int           `json:"retries"`
	Timeout  time.Duration `json:"timeout"`
	Tags     []string      `json:"tags"`
	Env      envConfig     `json:"env"`
	Ignored  string        `json:"-"`
}

func defaults() testConfig {
	return testConfig{
		Template: "appsettings.template.json",
		Retries:  3,
		Timeout:  time.Second,
		Env:      envConfig{Prefix: "APP_"},
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Layers(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
template: from-file.json
retries: 5
timeout: 2s
env:
  file: ${CFGM_TEST_DOTENV:-.env}
`)
	t.Setenv("CFGM_TEST_DOTENV", "deploy.env")
	t.Setenv("CFGTEST_RETRIES", "9")
	t.Setenv("CFGTEST_ENV_PREFIX", "SVC_")

	cfg, err := cfgm.Load(defaults(),
		cfgm.WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml"), path),
		cfgm.WithEnvPrefix("CFGTEST_"),
	)
	require.NoError(t, err)

	assert.Equal(t, "from-file.json", cfg.Template)
	assert.Equal(t, 9, cfg.Retries, "env overrides file")
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "deploy.env", cfg.Env.File, "file content is expanded")
	assert.Equal(t, "SVC_", cfg.Env.Prefix)
}

func TestLoad_WithoutTemplateExpansion(t *testing.T) {
	path := writeConfig(t, "config.json", `{"schema": "${SCHEMA_PATH:-schema.yaml}"}`)

	cfg, err := cfgm.Load(defaults(), cfgm.WithConfigPaths(path), cfgm.WithoutTemplateExpansion())
	require.NoError(t, err)
	assert.Equal(t, "${SCHEMA_PATH:-schema.yaml}", cfg.Schema)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "malformed yaml", file: "c.yaml", content: "template: [unclosed"},
		{name: "root not object", file: "c.yaml", content: "- a\n- b\n"},
		{name: "required variable", file: "c.yaml", content: "template: ${CFGM_TEST_REQUIRED:?must be set}"},
		{name: "wrong type", file: "c.json", content: `{"retries": {"a": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cfgm.Load(defaults(), cfgm.WithConfigPaths(writeConfig(t, tt.file, tt.content)))
			require.Error(t, err)
		})
	}
}

func TestLoadCmd_ExplicitFlagsWin(t *testing.T) {
	t.Setenv("CFGTEST_TEMPLATE", "from-env.json")

	var got *testConfig
	cmd := &cli.Command{
		Name: "app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template"},
			&cli.StringFlag{Name: "schema", Value: "unused-default"},
			&cli.BoolFlag{Name: "strict"},
			&cli.IntFlag{Name: "retries"},
			&cli.DurationFlag{Name: "timeout"},
			&cli.StringSliceFlag{Name: "tags"},
			&cli.StringFlag{Name: "env-prefix"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			var err error
			got, err = cfgm.LoadCmd(cmd, defaults(), "",
				cfgm.WithConfigPaths(filepath.Join(t.TempDir(), "none.yaml")),
				cfgm.WithEnvPrefix("CFGTEST_"),
			)

			return err
		},
	}

	err := cmd.Run(context.Background(), []string{
		"app", "--template", "flag.json", "--strict", "--retries", "7",
		"--timeout", "5s", "--tags", "a", "--tags", "b", "--env-prefix", "X_",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "flag.json", got.Template)
	assert.Empty(t, got.Schema, "flag defaults do not override")
	assert.True(t, got.Strict)
	assert.Equal(t, 7, got.Retries)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, "X_", got.Env.Prefix)
}
