package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/schema"
)

func TestDefault(t *testing.T) {
	s := schema.Default()
	require.NoError(t, s.Validate())

	tok, ok := s.Lookup("AGIClientSettings_AzureOpenAIServices")
	require.True(t, ok)
	assert.True(t, tok.List)
	assert.Equal(t, []string{"Endpoint", "Key"}, tok.Fields)
	assert.Equal(t, "AGIClientSettings__AzureOpenAIServices", tok.EnvName())

	assert.Contains(t, s.Required(), "Settings_DbConnectionString")
	assert.NotContains(t, s.Required(), "AzureAd_TenantId")

	require.Len(t, s.Preserve, 1)
	assert.Equal(t, "Settings", s.Preserve[0].Section)
	assert.Contains(t, s.Preserve[0].Keys, "MaxDbRetries")

	assert.True(t, s.Enforced("production"))
	assert.False(t, s.Enforced("Development"))

	// 每次返回独立的值
	s.Tokens[0].Name = "changed"
	assert.NotEqual(t, "changed", schema.Default().Tokens[0].Name)
}

func TestTokenFallbacks(t *testing.T) {
	tok := schema.Token{Name: "Custom_Value"}
	assert.Equal(t, "Custom_Value", tok.EnvName())
	assert.Equal(t, "Enter Custom Value", tok.Label())
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	s, err := schema.Load("")
	require.NoError(t, err)
	assert.Equal(t, schema.Default(), s)
}

func TestLoad_FileOverridesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := `
tokens:
  - name: Db_Conn
    env: Db__Conn
    required: true
    secret: true
  - name: Upstreams
    list: true
    fields: [Url, Token]
readiness:
  environments: [Production, Staging]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := schema.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Db_Conn", "Upstreams"}, s.Names())
	assert.Equal(t, []string{"Db_Conn"}, s.Required())
	up, ok := s.Lookup("Upstreams")
	require.True(t, ok)
	assert.Equal(t, []string{"Url", "Token"}, up.Fields)
	assert.True(t, s.Enforced("staging"))

	// preserve 未给出，由默认值补齐
	assert.Equal(t, schema.Default().Preserve, s.Preserve)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := schema.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"tokens": [{"name": "A"}, {"name": "A"}]}`), 0o600))
	_, err = schema.Load(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"tokenz": []}`), 0o600))
	_, err = schema.Load(unknown)
	require.Error(t, err)

	list := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(list, []byte("- a\n- b\n"), 0o600))
	_, err = schema.Load(list)
	require.Error(t, err)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("CFGTPL_TEST_ENFORCE", "Staging")

	path := filepath.Join(t.TempDir(), "schema.json")
	content := `{
  // 强制检查的环境来自部署变量
  "readiness": {"environments": ["${CFGTPL_TEST_ENFORCE:-Production}"]},
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := schema.Load(path)
	require.NoError(t, err)
	assert.True(t, s.Enforced("Staging"))
	assert.False(t, s.Enforced("Production"))
	assert.Equal(t, schema.Default().Names(), s.Names())
}
