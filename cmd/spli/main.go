package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/goldsteine/spli"
)

const prompt = "spli> "

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [PATH]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	switch flag.NArg() {
	case 0:
		if isTerminal(os.Stdin) {
			repl()
			return
		}
		if err := runStdin(); err != nil {
			log.Fatal(err)
		}
	case 1:
		if err := checkFile(flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// checkFile parses PATH as a program and reports the outcome: a clean
// full parse, a parse with trailing content, or an annotated parse
// error. Only I/O failures produce a non-zero exit.
func checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading source failed")
	}
	source := string(data)

	rest, val, perr := spli.ParseProgram(source)
	if perr != nil {
		printDiagnostic(source, perr)
		return nil
	}
	if rest != "" {
		fmt.Println(val)
		fmt.Printf("Residual: %q\n", rest)
		return nil
	}
	fmt.Println("Syntax OK")
	return nil
}

// runStdin evaluates a program piped through standard input.
func runStdin() error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return errors.Wrap(err, "reading stdin failed")
	}
	source := string(data)

	ctx := spli.NewInterpreter()
	res, perr := spli.EvalProgram(ctx, source)
	if perr != nil {
		printDiagnostic(source, perr)
		return nil
	}
	printResult(res)
	return nil
}

// repl reads one token per line and evaluates it against a single
// persistent context, so top-level definitions stay visible to later
// inputs. Ctrl-D ends the session; Ctrl-C abandons the current line.
func repl() {
	ctx := spli.NewInterpreter()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scan := bufio.NewScanner(os.Stdin)
		for scan.Scan() {
			lines <- scan.Text()
		}
	}()

	fmt.Print(prompt)
	for {
		select {
		case <-interrupt:
			// The terminal driver already discarded the pending line.
			fmt.Println()
			fmt.Print(prompt)
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}
			if line != "" {
				replLine(ctx, line)
			}
			fmt.Print(prompt)
		}
	}
}

func replLine(ctx *spli.Context, line string) {
	rest, val, perr := spli.ParseToken(line)
	if perr != nil {
		printDiagnostic(line, perr)
		return
	}
	if rest != "" {
		fmt.Fprintf(os.Stderr, "input not fully parsed, residual: %q\n", rest)
		return
	}
	printResult(ctx.Evaluate(val))
}

func printResult(res *spli.Value) {
	fmt.Printf("%s :: %s\n", res, res.Kind.Type())
	if exc, ok := res.Kind.(*spli.Exception); ok && exc.Args.Len() != 0 {
		fmt.Printf("args: %s\n",
			exc.Args.Format(func(v *spli.Value) string { return v.String() }))
	}
}

func printDiagnostic(source string, perr *spli.ParseError) {
	ann := spli.Diagnose(source, perr)
	fmt.Fprintln(os.Stderr, spli.RenderAnnotation(source, ann, isTerminal(os.Stderr)))
}
