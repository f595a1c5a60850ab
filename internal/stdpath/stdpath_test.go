package stdpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PrefersLxOverLumaNextToImportingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.lx"), []byte("pub const x -> fn () int;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.luma"), []byte("pub const x -> fn () int;"), 0o644))

	got, err := Resolve("helpers", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "helpers.lx"), got)
}

func TestResolve_FallsBackToLumaWhenLxMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.luma"), []byte("pub const x -> fn () int;"), 0o644))

	got, err := Resolve("helpers", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "helpers.luma"), got)
}

func TestResolve_LiteralPathWithExtensionAlreadyGiven(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.lx"), []byte("pub const x -> fn () int;"), 0o644))

	got, err := Resolve("helpers.lx", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "helpers.lx"), got)
}

func TestResolve_NestedModulePathJoinsOnColonColon(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "std"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "std", "io.lx"), []byte("pub const x -> fn () int;"), 0o644))

	got, err := Resolve("std::io", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "std", "io.lx"), got)
}

func TestResolve_UnresolvableImportReturnsNotFoundError(t *testing.T) {
	dir := t.TempDir()
	_, err := Resolve("does::not::exist", dir)
	require.Error(t, err)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "does::not::exist", nfe.ImportPath)
}
