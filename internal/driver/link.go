package driver

import (
	"os"
	"path/filepath"

	"github.com/luma-lang/lumac/internal/linker"
	"github.com/luma-lang/lumac/internal/types"
)

// writeAndLink serializes each module's backend IR to a .ll text file
// (github.com/llir/llvm/ir's *ir.Module satisfies fmt.Stringer with
// LLVM's textual IR form), lowers each to an object file with llc,
// and links the objects into opts.OutputName (or the main module's
// own base name) in dependency order.
func writeAndLink(order []*types.Module, mainPath string, opts Options) (*Result, error) {
	dir := buildDir(mainPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if !opts.Save {
		defer os.RemoveAll(dir)
	}

	var objFiles []string
	for _, unit := range order {
		llPath := filepath.Join(dir, unit.Name+".ll")
		if err := os.WriteFile(llPath, []byte(unit.Backend.String()), 0o644); err != nil {
			return nil, err
		}
		objPath := filepath.Join(dir, unit.Name+".o")
		if err := linker.CompileObject(llPath, objPath); err != nil {
			return nil, err
		}
		objFiles = append(objFiles, objPath)
	}

	output := opts.OutputName
	if output == "" {
		output = moduleNameFor(mainPath)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return nil, err
	}

	linkOpts := linker.Options{ExtraObjects: opts.LinkExtra, NoSanitize: opts.NoSanitize}
	if err := linker.Link(objFiles, absOutput, linkOpts); err != nil {
		return nil, err
	}

	result := &Result{BinaryPath: absOutput}
	if opts.Save {
		result.ObjectDir = dir
	}
	return result, nil
}
