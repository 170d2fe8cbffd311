package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const composerJSON = `{
  "name": "acme/shop",
  "require": {
    "php": "^8.2",
    "laravel/framework": "^11.0",
    "livewire/volt": "^1.0"
  },
  "require-dev": {
    "robsontenorio/mary": "^1.35"
  },
  "autoload": {
    "psr-4": {
      "App\\": "app/",
      "Database\\Factories\\": "database/factories/"
    }
  },
  "autoload-dev": {
    "psr-4": {
      "Tests\\": ["tests/", "tests-legacy/"]
    }
  }
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_RequireAndRequireDev(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.json")
	writeFile(t, path, composerJSON)

	m, err := Load(path)
	require.NoError(t, err)

	assert.True(t, m.Has("livewire/volt"))
	assert.True(t, m.Has("robsontenorio/mary"))
	assert.False(t, m.Has("spatie/laravel-permission"))

	assert.NoError(t, m.RequirePackage("robsontenorio/mary"))
	err = m.RequirePackage("spatie/laravel-permission")
	assert.True(t, errors.Is(err, ErrMissingDependency))
	assert.ErrorContains(t, err, "spatie/laravel-permission")
}

func TestLoad_Unreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "composer.json"))
	assert.True(t, errors.Is(err, ErrManifestUnreadable), "missing file: %v", err)

	path := filepath.Join(dir, "broken.json")
	writeFile(t, path, `{"require": {`)
	_, err = Load(path)
	assert.True(t, errors.Is(err, ErrManifestUnreadable), "invalid json: %v", err)
}

func TestClassPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "composer.json"), composerJSON)
	writeFile(t, filepath.Join(dir, "app", "Models", "User.php"), "<?php\n")
	writeFile(t, filepath.Join(dir, "tests-legacy", "Support", "Fake.php"), "<?php\n")

	m, err := Load(filepath.Join(dir, "composer.json"))
	require.NoError(t, err)

	path, ok := m.ClassPath(dir, `App\Models\User`)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "app", "Models", "User.php"), path)

	_, ok = m.ClassPath(dir, `\App\Models\User`)
	assert.True(t, ok)

	path, ok = m.ClassPath(dir, `Tests\Support\Fake`)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "tests-legacy", "Support", "Fake.php"), path)

	_, ok = m.ClassPath(dir, `App\Models\Missing`)
	assert.False(t, ok)

	_, ok = m.ClassPath(dir, `Vendor\Models\User`)
	assert.False(t, ok)
}
