package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".deckroute", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("services.text_url", "http://localhost:8000"))
	require.NoError(t, store.Set("services.max_retries", 2))
	require.NoError(t, store.Set("routing.seed", int64(42)))
	require.NoError(t, store.Set("routing.skip_hero", true))
	require.NoError(t, store.Set("auth.scopes", []string{"generate", "catalog"}))

	assert.Equal(t, "http://localhost:8000", store.GetString("services.text_url"))
	assert.Equal(t, 2, store.GetInt("services.max_retries"))
	assert.Equal(t, 42, store.GetInt("routing.seed"))
	assert.True(t, store.GetBool("routing.skip_hero"))
	assert.Equal(t, []string{"generate", "catalog"}, store.GetStringSlice("auth.scopes"))

	// Wrong types fall back to zero values
	assert.Empty(t, store.GetString("services.max_retries"))
	assert.Zero(t, store.GetInt("services.text_url"))
	assert.False(t, store.GetBool("services.text_url"))
	assert.Nil(t, store.GetStringSlice("services.text_url"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("services.text_url", "http://text:8000"))
	require.NoError(t, store.Set("diversity.max_variant_run", 3))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[services]")
	assert.Contains(t, string(raw), "[diversity]")
	assert.NotContains(t, string(raw), "'services.text_url'")
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("services.text_url", "http://text:8000"))
	require.NoError(t, store.Set("services.timeout", "30s"))
	require.NoError(t, store.Set("routing.skip_hero", true))
	require.NoError(t, store.Set("auth.scopes", []string{"a", "b"}))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://text:8000", reloaded.GetString("services.text_url"))
	assert.Equal(t, "30s", reloaded.GetString("services.timeout"))
	assert.True(t, reloaded.GetBool("routing.skip_hero"))
	assert.Equal(t, []string{"a", "b"}, reloaded.GetStringSlice("auth.scopes"))
	assert.Equal(t, []string{"auth.scopes", "routing.skip_hero", "services.text_url", "services.timeout"}, reloaded.Keys())
}

func TestConfigStore_Load_NestedFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[services]\ntext_url = \"http://text:8000\"\nmax_retries = 3\n\n[routing]\nskip_hero = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://text:8000", store.GetString("services.text_url"))
	assert.Equal(t, 3, store.GetInt("services.max_retries"))
	assert.True(t, store.GetBool("routing.skip_hero"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("auth.client_secret", "s3cret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("routing.seed", n)
			_ = store.GetInt("routing.seed")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("routing.seed")
	assert.True(t, ok)
}

func TestConfigStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("services.text_url", "http://text"))
	require.NoError(t, store.Set("services.catalog_url", "http://catalog"))

	require.NoError(t, store.Delete("services.catalog_url"))
	require.NoError(t, store.Delete("services.unknown"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"services.text_url"}, reopened.Keys())
}

func TestConfigStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("routing.seed", 7))
	require.NoError(t, store.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"x.y.z": "v",
		"top":   true,
	})

	assert.Equal(t, 1, nested["a"])
	assert.Equal(t, 2, nested["a.b"])
	assert.Equal(t, true, nested["top"])
	x, ok := nested["x"].(map[string]any)
	require.True(t, ok)
	y, ok := x["y"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "v", y["z"])

	assert.Equal(t, map[string]any{"a": 1, "a.b": 2, "x.y.z": "v", "top": true}, flattenMap(nested, ""))
}
