package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luma-lang/lumac/internal/diag"
	"github.com/luma-lang/lumac/internal/lexer"
)

func TestModuleNameFor_StripsDirectoryAndExtension(t *testing.T) {
	assert.Equal(t, "main", moduleNameFor("/a/b/main.lx"))
	assert.Equal(t, "helpers", moduleNameFor("helpers.luma"))
}

func TestScanUseDirectives_FindsSimpleAndQualifiedNames(t *testing.T) {
	src := `use helpers;
use std::io as io;
pub const main -> fn () int { return 0; }`
	toks := lexer.New("t.lx", src).Tokenize()
	names := scanUseDirectives(toks)
	assert.Equal(t, []string{"helpers", "std::io"}, names)
}

func TestDiscoverAndLex_WalksTransitiveUseGraphBreadthFirst(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.lx")
	helpersPath := filepath.Join(dir, "helpers.lx")
	utilPath := filepath.Join(dir, "util.lx")

	require.NoError(t, os.WriteFile(mainPath, []byte(`use helpers;
pub const main -> fn () int { return 0; }`), 0o644))
	require.NoError(t, os.WriteFile(helpersPath, []byte(`use util;
pub const help -> fn () int { return 1; }`), 0o644))
	require.NoError(t, os.WriteFile(utilPath, []byte(`pub const util -> fn () int { return 2; }`), 0o644))

	sink := &diag.Sink{}
	files, order, err := discoverAndLex("main", mainPath, sink)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())

	assert.Equal(t, []string{"main", "helpers", "util"}, order)
	assert.Len(t, files, 3)
	assert.Equal(t, mainPath, files["main"].path)
	assert.Equal(t, helpersPath, files["helpers"].path)
	assert.Equal(t, utilPath, files["util"].path)
}

func TestDiscoverAndLex_UnresolvableImportIsDiagnosed(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.lx")
	require.NoError(t, os.WriteFile(mainPath, []byte(`use nonexistent;
pub const main -> fn () int { return 0; }`), 0o644))

	sink := &diag.Sink{}
	_, _, err := discoverAndLex("main", mainPath, sink)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestDiscoverAndLex_IllegalTokenIsReportedAsLexerDiagnostic(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.lx")
	require.NoError(t, os.WriteFile(mainPath, []byte(`pub const main -> fn () int { "unterminated`), 0o644))

	sink := &diag.Sink{}
	_, _, err := discoverAndLex("main", mainPath, sink)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}
