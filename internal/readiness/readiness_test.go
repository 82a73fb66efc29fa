package readiness_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/readiness"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
)

func testSchema() schema.Schema {
	return schema.Schema{
		Tokens: []schema.Token{
			{Name: "Settings_DbConnectionString", Env: "Settings__DbConnectionString", Required: true},
			{Name: "AuthSettings_Domain", Env: "AuthSettings__Domain", Required: true},
			{Name: "AGIClientSettings_AzureOpenAIServices", List: true, Required: true},
			{Name: "StripeSettings_ApiKey"},
		},
		Readiness: schema.Readiness{Environments: []string{"Production"}},
	}
}

func TestCheck(t *testing.T) {
	complete := []string{
		"Settings__DbConnectionString=Server=db",
		"AuthSettings__Domain=example.com",
		"AGIClientSettings__AzureOpenAIServices__0__Endpoint=https://e1",
	}

	tests := []struct {
		name        string
		environ     []string
		environment string
		missing     []string
		enforced    bool
		wantErr     bool
	}{
		{name: "production complete", environ: complete, environment: "Production", enforced: true},
		{
			name:        "production missing",
			environ:     complete[:1],
			environment: "production",
			missing:     []string{"AuthSettings_Domain", "AGIClientSettings_AzureOpenAIServices"},
			enforced:    true,
			wantErr:     true,
		},
		{
			name:        "development only warns",
			environment: "Development",
			missing:     []string{"Settings_DbConnectionString", "AuthSettings_Domain", "AGIClientSettings_AzureOpenAIServices"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := source.NewEnv(source.WithEnviron(append([]string{}, tt.environ...)))
			require.NoError(t, err)

			report, err := readiness.Check(context.Background(), testSchema(), tt.environment, env)
			if tt.wantErr {
				require.ErrorIs(t, err, readiness.ErrNotReady)
				assert.Contains(t, err.Error(), "AuthSettings_Domain")
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.enforced, report.Enforced)
			assert.Equal(t, tt.missing, report.Missing)
			assert.Equal(t, len(tt.missing) == 0, report.Ready())
			assert.Len(t, report.Required, 3)
		})
	}
}

func TestCheck_DefaultSchema(t *testing.T) {
	env, err := source.NewEnv(source.WithEnviron([]string{}))
	require.NoError(t, err)

	report, err := readiness.Check(context.Background(), schema.Default(), "Production", env)
	require.ErrorIs(t, err, readiness.ErrNotReady)
	assert.Equal(t, schema.Default().Required(), report.Missing)
}
