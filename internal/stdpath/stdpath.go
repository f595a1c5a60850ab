// Package stdpath implements the standard-library import path
// resolution rule from spec.md §6: an import such as `std::io`
// resolves against a system path, then a user path, then the current
// working directory's ./std/ tree, trying the `.lx` extension and
// then `.luma` at each candidate before falling back to the import
// path taken literally.
package stdpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// toolName is the compiler's own name, used to build the per-OS
// system and user standard-library directories ("/usr/local/lib/lumac/std"
// and "$HOME/.lumac/std" on Unix).
const toolName = "lumac"

var extensions = []string{".lx", ".luma"}

// Resolve turns a `use`-directive module path (already "::"-joined,
// e.g. "std::io") into a source file on disk, trying each candidate
// root in order. relDir is the directory the importing file lives in,
// consulted only for the final literal-path fallback (the import path
// joined to relDir) so sibling modules resolve without needing the
// stdlib roots at all.
func Resolve(importPath string, relDir string) (string, error) {
	rel := filepath.Join(strings.Split(importPath, "::")...)

	roots := []string{
		systemRoot(),
		userRoot(),
		filepath.Join(".", "std"),
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		for _, ext := range extensions {
			candidate := filepath.Join(root, rel+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
		}
	}

	// Fall back to the import path taken literally, relative to the
	// importing file's own directory — this is how sibling, non-stdlib
	// modules resolve (`use helpers;` next to the importing file).
	for _, ext := range append([]string{""}, extensions...) {
		candidate := filepath.Join(relDir, rel+ext)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	if filepath.IsAbs(importPath) && fileExists(importPath) {
		return importPath, nil
	}

	return "", &NotFoundError{ImportPath: importPath}
}

func systemRoot() string {
	if runtime.GOOS == "windows" {
		if pf := os.Getenv("ProgramFiles"); pf != "" {
			return filepath.Join(pf, toolName, "std")
		}
		return ""
	}
	return filepath.Join("/usr/local/lib", toolName, "std")
}

func userRoot() string {
	if runtime.GOOS == "windows" {
		if up := os.Getenv("USERPROFILE"); up != "" {
			return filepath.Join(up, "."+toolName, "std")
		}
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "."+toolName, "std")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// NotFoundError reports that no candidate root resolved importPath.
type NotFoundError struct {
	ImportPath string
}

func (e *NotFoundError) Error() string {
	return "cannot resolve module \"" + e.ImportPath + "\""
}
