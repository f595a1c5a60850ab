// Package linker turns the emitter's per-module backend IR into a
// native executable, substituting a host linker invocation for the
// teacher's `go build` shape (_examples/rubiojr-rugo/compiler/compiler.go's
// Build): lower each module's textual LLVM IR to an object file with
// llc, then assemble the objects into a binary with the system
// linker on Linux, or the host C compiler as a simpler fallback on
// Windows (spec.md §6 "Object-file / linker interface").
package linker

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Options mirrors the subset of cmd/lumac's flags that reach the
// linker: additional object files, and NoSanitize, which is carried
// here but read by neither link path; no sanitizer is linked in
// either way.
type Options struct {
	ExtraObjects []string
	NoSanitize   bool
}

// CompileObject lowers one module's textual LLVM IR file to a native
// object file via llc, the standard consumer of the textual IR that
// github.com/llir/llvm/ir produces.
func CompileObject(llPath, objPath string) error {
	cmd := exec.Command("llc", "-filetype=obj", "-o", objPath, llPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &BuildError{Stage: "llc", Stderr: stderr.String(), Err: err}
	}
	return nil
}

// Link assembles objFiles into output. objFiles is in emission order
// (dependencies before dependents per the module graph), so any
// linker that resolves symbols left-to-right sees definitions before
// their uses.
func Link(objFiles []string, output string, opts Options) error {
	if runtime.GOOS == "windows" {
		return linkWithHostCC(objFiles, output, opts)
	}
	return linkWithLD(objFiles, output, opts)
}

func hostCC() string {
	if cc := strings.TrimSpace(os.Getenv("CC")); cc != "" {
		return cc
	}
	return "cc"
}

// printFileName asks the host C compiler where it would find name
// (crt1.o, the dynamic linker, libc.so, ...), the same indirection
// spec.md §6 calls out rather than hard-coding per-distro paths.
func printFileName(cc, name string) (string, error) {
	out, err := exec.Command(cc, "-print-file-name="+name).Output()
	if err != nil {
		return "", fmt.Errorf("locating %s via %s: %w", name, cc, err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" || path == name {
		return "", fmt.Errorf("%s could not locate %s", cc, name)
	}
	return path, nil
}

// linkWithLD drives the system linker directly: CRT startup/finalize
// objects and the dynamic linker path are discovered through the host
// C compiler rather than assumed, so this works across distros without
// the driver hard-coding /lib paths.
func linkWithLD(objFiles []string, output string, opts Options) error {
	cc := hostCC()

	crt1, err := printFileName(cc, "crt1.o")
	if err != nil {
		return err
	}
	crti, err := printFileName(cc, "crti.o")
	if err != nil {
		return err
	}
	crtn, err := printFileName(cc, "crtn.o")
	if err != nil {
		return err
	}
	dynLinker, err := printFileName(cc, "ld-linux-x86-64.so.2")
	if err != nil {
		// Static or non-x86-64 host: fall back to the host compiler, which
		// already knows its own target's dynamic linker path.
		return linkWithHostCC(objFiles, output, opts)
	}

	args := []string{
		"-dynamic-linker", dynLinker,
		"-o", output,
		crt1, crti,
	}
	args = append(args, objFiles...)
	args = append(args, opts.ExtraObjects...)
	args = append(args, "-lc", crtn)

	cmd := exec.Command("ld", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &BuildError{Stage: "ld", Stderr: stderr.String(), Err: err}
	}
	return nil
}

// linkWithHostCC is the Windows path (and the Linux fallback for
// hosts without a conventional glibc dynamic linker): let the host C
// compiler drive its own linker rather than reimplementing its
// argument conventions.
func linkWithHostCC(objFiles []string, output string, opts Options) error {
	cc := hostCC()
	args := append([]string{}, objFiles...)
	args = append(args, opts.ExtraObjects...)
	args = append(args, "-o", output)
	cmd := exec.Command(cc, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &BuildError{Stage: cc, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// BuildError wraps a failed external tool invocation with its stderr,
// so the driver can surface the tool's own diagnostics rather than
// just "exit status 1".
type BuildError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *BuildError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Stage, e.Err, msg)
}

func (e *BuildError) Unwrap() error { return e.Err }
