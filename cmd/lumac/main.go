// Command lumac is the compiler's entry point: flag parsing, exit
// codes, and dispatch to internal/driver, internal/fmtstub and
// internal/lspstub — the "deliberately out of scope" collaborators
// spec.md §1 calls out. Structured after
// _examples/rubiojr-rugo/main.go's single-binary cli.Command setup.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/luma-lang/lumac/internal/driver"
	"github.com/luma-lang/lumac/internal/fmtstub"
	"github.com/luma-lang/lumac/internal/lspstub"
)

var version = "v0.1.0"

const license = `lumac is distributed under the terms of the MIT license.`

func main() {
	cmd := &cli.Command{
		Name:                   "lumac",
		Usage:                  "Ahead-of-time compiler for the Source Language",
		Version:                version,
		UseShortOptionHandling: true,
		ArgsUsage:              "<file> | fmt <file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "license", Aliases: []string{"lc"}, Usage: "Print license and exit"},
			&cli.BoolFlag{Name: "lsp", Usage: "Enter language-server mode"},
			&cli.StringFlag{Name: "name", Usage: "Output executable name"},
			&cli.BoolFlag{Name: "save", Usage: "Preserve intermediate object files"},
			&cli.BoolFlag{Name: "clean", Usage: "Remove build artifacts before building"},
			&cli.BoolFlag{Name: "no-sanitize", Aliases: []string{"nosanitize"}, Usage: "Disable the runtime sanitizer pass"},
			&cli.BoolFlag{Name: "format-check", Aliases: []string{"fc"}, Usage: "Exit 1 if any input would be reformatted"},
			&cli.BoolFlag{Name: "format-in-place", Aliases: []string{"fi"}, Usage: "Rewrite the input file in place"},
			&cli.StringSliceFlag{Name: "link", Aliases: []string{"l"}, Usage: "Additional object files to pass to the linker"},
			&cli.BoolFlag{Name: "O0", Usage: "Optimization level 0"},
			&cli.BoolFlag{Name: "O1", Usage: "Optimization level 1"},
			&cli.BoolFlag{Name: "O2", Usage: "Optimization level 2 (default)"},
			&cli.BoolFlag{Name: "O3", Usage: "Optimization level 3"},
		},
		Action: rootAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err.Error()))
		os.Exit(exitCodeOf(err))
	}
}

// cliError carries the exit code a failed Action should cause, since
// urfave/cli itself only knows success/failure, not this compiler's
// finer-grained exit taxonomy (spec.md §6).
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitCodeOf(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return driver.ExitUsage
}

func rootAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("license") {
		fmt.Println(license)
		return nil
	}
	if cmd.Bool("lsp") {
		var server lspstub.Server
		_ = server // no concrete implementation ships in this module
		return &cliError{code: driver.ExitUnknown, err: fmt.Errorf("language-server mode requires an external front end")}
	}

	args := cmd.Args().Slice()
	if len(args) > 0 && (args[0] == "fmt" || args[0] == "format") {
		return runFormat(cmd, args[1:])
	}

	if len(args) != 1 {
		return &cliError{code: driver.ExitUsage, err: fmt.Errorf("usage: lumac [flags] <file>")}
	}

	opts := driver.Options{
		OutputName: cmd.String("name"),
		Save:       cmd.Bool("save"),
		Clean:      cmd.Bool("clean"),
		NoSanitize: cmd.Bool("no-sanitize"),
		LinkExtra:  cmd.StringSlice("link"),
		OptLevel:   optLevelOf(cmd),
	}

	outcome := driver.Compile(args[0], opts)
	for _, d := range outcome.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if outcome.ExitCode != driver.ExitSuccess {
		return &cliError{code: outcome.ExitCode, err: fmt.Errorf("build failed")}
	}
	return nil
}

func optLevelOf(cmd *cli.Command) int {
	switch {
	case cmd.Bool("O0"):
		return 0
	case cmd.Bool("O1"):
		return 1
	case cmd.Bool("O3"):
		return 3
	default:
		return 2
	}
}

func runFormat(cmd *cli.Command, files []string) error {
	if len(files) != 1 {
		return &cliError{code: driver.ExitUsage, err: fmt.Errorf("usage: lumac fmt [-fc|-fi] <file>")}
	}
	var fm fmtstub.Formatter = fmtstub.Unimplemented{}
	src, err := os.ReadFile(files[0])
	if err != nil {
		return &cliError{code: driver.ExitFileNotFound, err: err}
	}
	formatted, err := fm.Format(files[0], src)
	if err != nil {
		return &cliError{code: driver.ExitUnknown, err: err}
	}
	switch {
	case cmd.Bool("format-check"):
		if string(formatted) != string(src) {
			return &cliError{code: driver.ExitUsage, err: fmt.Errorf("%s would be reformatted", files[0])}
		}
		return nil
	case cmd.Bool("format-in-place"):
		return os.WriteFile(files[0], formatted, 0o644)
	default:
		_, err := os.Stdout.Write(formatted)
		return err
	}
}

// formatError colorizes an error message when stderr is a terminal,
// matching the teacher's formatError convention.
func formatError(msg string) string {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return "error: " + msg
	}
	const (
		red   = "\033[31m"
		bold  = "\033[1m"
		reset = "\033[0m"
	)
	return red + bold + "error" + reset + ": " + msg
}
