package check_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/command/check"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/readiness"
)

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tokens:
  - name: Settings_DbConnectionString
    env: Settings__DbConnectionString
    required: true
  - name: AGIClientSettings_AzureOpenAIServices
    env: AGIClientSettings__AzureOpenAIServices
    list: true
    required: true
  - name: StripeSettings_ApiKey
readiness:
  environments: [Production]
`), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := check.New()
	cmd.Writer = &buf
	err := cmd.Run(context.Background(), append([]string{"check", "--log-level", "error"}, args...))

	return buf.String(), err
}

func TestCheckCommand(t *testing.T) {
	schemaPath := writeSchema(t)

	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name:    "production defaults from ASPNETCORE_ENVIRONMENT",
			env:     map[string]string{"CHECKTEST_Settings__DbConnectionString": "x"},
			want:    []string{"Production: missing required tokens:", "AGIClientSettings_AzureOpenAIServices (AGIClientSettings__AzureOpenAIServices__0__*)"},
			wantErr: true,
		},
		{
			name: "development is not enforced",
			env:  map[string]string{"ASPNETCORE_ENVIRONMENT": "Development"},
			want: []string{"Development: not enforced (exit 0; enforced only for Production)", "Settings_DbConnectionString (Settings__DbConnectionString)"},
		},
		{
			name: "flag overrides environment variable",
			env:  map[string]string{"ASPNETCORE_ENVIRONMENT": "Production"},
			args: []string{"--environment", "Staging"},
			want: []string{"Staging: not enforced"},
		},
		{
			name: "all set",
			env: map[string]string{
				"CHECKTEST_Settings__DbConnectionString":                        "x",
				"CHECKTEST_AGIClientSettings__AzureOpenAIServices__0__Endpoint": "https://e1",
			},
			want: []string{"Production: all 2 required tokens are set"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ASPNETCORE_ENVIRONMENT", "")
			os.Unsetenv("ASPNETCORE_ENVIRONMENT") //nolint:errcheck // restored by t.Setenv
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			out, err := run(t, append([]string{"--schema", schemaPath, "--env-prefix", "CHECKTEST_"}, tt.args...)...)
			if tt.wantErr {
				require.ErrorIs(t, err, readiness.ErrNotReady)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestNew_DescribesEnforcement(t *testing.T) {
	cmd := check.New()
	assert.Contains(t, cmd.Description, "readiness.environments")
	assert.Contains(t, cmd.Description, "--environment")
}
