// Command noctern scans, parses, and evaluates noctern source files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quincunx271/noctern/internal/compile"
	"github.com/quincunx271/noctern/internal/interp"
	"github.com/quincunx271/noctern/internal/lexer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the testable entry point: every subcommand writes to the given
// writers instead of touching os.Stdout/os.Stderr directly, so tests can
// capture output without subprocessing the binary.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var format string
	var trace bool

	root := &cobra.Command{
		Use:           "noctern",
		Short:         "Scan, parse, and evaluate noctern source files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&format, "format", "pretty", "output format: pretty|json")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "log stage progress to stderr")

	root.AddCommand(newLexCmd(stdout, stderr, &format, &trace))
	root.AddCommand(newParseCmd(stdout, stderr, &format, &trace))
	root.AddCommand(newRunCmd(stdout, stderr, &format, &trace))
	return root
}

func newLogger(stderr io.Writer, trace bool) *slog.Logger {
	level := slog.LevelWarn
	if trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func newLexCmd(stdout, stderr io.Writer, format *string, trace *bool) *cobra.Command {
	var keepWhitespace bool
	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Scan a file (or stdin) and print one line per token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, *trace)
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return err
			}
			logger.Debug("scanning", "bytes", len(src))
			store := lexer.ScanAll(src, keepWhitespace)
			for i := 0; i < store.Len(); i++ {
				h := lexer.Handle(i)
				kind := store.Kind(h)
				if kind == lexer.EOF {
					fmt.Fprintln(stdout, "EOF")
					continue
				}
				if !kind.HasData() {
					if *format == "json" {
						fmt.Fprintf(stdout, `{"kind":%q}`+"\n", kind.String())
					} else {
						fmt.Fprintln(stdout, kind.String())
					}
					continue
				}
				if *format == "json" {
					fmt.Fprintf(stdout, `{"kind":%q,"lexeme":%q}`+"\n", kind.String(), store.Lexeme(h))
				} else {
					fmt.Fprintf(stdout, "%s: %q\n", kind.String(), store.Lexeme(h))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepWhitespace, "keep-whitespace", false, "emit whitespace tokens instead of discarding them")
	return cmd
}

func newParseCmd(stdout, stderr io.Writer, format *string, trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its declaration tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, *trace)
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			program, diag, err := compile.File(src)
			if err != nil {
				fmt.Fprintln(stderr, diag.String())
				return err
			}
			logger.Debug("parsed", "declarations", len(program.AST.Decls))
			dumpFile(stdout, program)
			return nil
		},
	}
}

func newRunCmd(stdout, stderr io.Writer, format *string, trace *bool) *cobra.Command {
	var entry string
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Compile a file and evaluate its entry function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, *trace)
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			program, diag, err := compile.File(src)
			if err != nil {
				fmt.Fprintln(stderr, diag.String())
				return err
			}
			body, ok := program.Symbols.Lookup(entry)
			if !ok {
				fmt.Fprintf(stderr, "error: E_EVAL_NO_ENTRY no function named %q\n", entry)
				return fmt.Errorf("no entry function %q", entry)
			}
			logger.Debug("evaluating", "entry", entry)
			result, err := interp.Eval(program.PostOrder, body)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return err
			}
			if *format == "json" {
				fmt.Fprintf(stdout, `{"result":%v}`+"\n", result)
			} else {
				fmt.Fprintf(stdout, "Result: %v\n", result)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&entry, "entry", "Main", "name of the function to evaluate")
	return cmd
}
