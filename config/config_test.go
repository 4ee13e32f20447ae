package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB_NAME", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HTTP_LISTEN_ADDR", "")

	c, err := Parse([]byte("site:\n  url: https://example.com/\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, int64(1<<20), c.Server.MaxBodyBytes)
	assert.Equal(t, "wordpress", c.Mongo.DBName)
	assert.Equal(t, "UTC", c.Site.Timezone)
	assert.Equal(t, 10, c.Site.PostsPerPage)
	assert.Equal(t, "https://example.com", c.Site.URL)
	assert.Equal(t, "publication", c.XMLRPC.PublicationTaxonomy)
	assert.Equal(t, []MethodConfig{
		{Name: "bdn.getPosts", Variant: "bdn"},
		{Name: "my.getPosts", Variant: "my"},
	}, c.XMLRPC.Methods)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_DB_NAME", "bdn")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_LISTEN_ADDR", ":9090")

	c, err := Parse([]byte(`
mongo:
  uri: mongodb://localhost:27017
  db_name: local
logging:
  level: warn
xmlrpc:
  methods:
    - name: bdn.getPosts
      variant: bdn
`))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo:27017", c.Mongo.URI)
	assert.Equal(t, "bdn", c.Mongo.DBName)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Len(t, c.XMLRPC.Methods, 1)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("site: [unterminated"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetBasePathWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, CONFIG_FILE), []byte("{}"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	got, err := filepath.EvalSymlinks(GetBasePath())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
