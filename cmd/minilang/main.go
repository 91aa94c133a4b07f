// cmd/minilang/main.go
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"minilang/internal/interp"
	"minilang/internal/langerr"
	"minilang/internal/lexer"
	"minilang/internal/natives"
	"minilang/internal/scope"
)

const VERSION = "1.0.0"

var BuildDate = "unknown"

// Command aliases mapping.
var commandAliases = map[string]string{
	"r": "run",
	"i": "repl",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
		args[0] = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		showVersion()
	case "run":
		rest := args[1:]
		debug := false
		var filename string
		for _, a := range rest {
			if a == "-debug" || a == "--debug" {
				debug = true
				continue
			}
			if filename == "" {
				filename = a
			}
		}
		if filename == "" {
			log.Fatal("no filename provided to run command")
		}
		runFile(filename, debug)
	case "repl":
		runREPL()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func runFile(filename string, debug bool) {
	r, err := lexer.NewReaderFromFile(filename)
	if err != nil {
		log.Fatalf("could not read file: %v", err)
	}
	sc := scope.New()
	reg := natives.NewRegistry()
	it := interp.New(r, sc, reg, os.Stdout, os.Stdin)
	runErr := it.Run()
	if debug {
		natives.DumpLiveObjects(os.Stderr)
	}
	if runErr != nil {
		reportError(runErr)
		os.Exit(1)
	}
}

// runREPL reads one complete snippet at a time (terminated by a blank
// line) and executes it as its own program with a fresh scope and
// reader, since the executor has no notion of resuming a half-parsed
// token stream across separate inputs. When stdin isn't a terminal
// (piped input), the whole stream is read and run as a single program.
func runREPL() {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		runProgramFromReader(os.Stdin)
		return
	}

	fmt.Printf("minilang %s — interactive mode, blank line runs the buffer, Ctrl-D exits\n", VERSION)
	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if buf.Len() > 0 {
				runSnippet(buf.String())
				buf.Reset()
			}
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

func runSnippet(source string) {
	r, err := lexer.NewReader(source, "<repl>")
	if err != nil {
		reportError(err)
		return
	}
	it := interp.New(r, scope.New(), natives.NewRegistry(), os.Stdout, os.Stdin)
	if err := it.Run(); err != nil {
		reportError(err)
	}
}

func runProgramFromReader(f *os.File) {
	data, err := readAll(f)
	if err != nil {
		log.Fatalf("could not read stdin: %v", err)
	}
	r, err := lexer.NewReader(data, "<stdin>")
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	it := interp.New(r, scope.New(), natives.NewRegistry(), os.Stdout, os.Stdin)
	if err := it.Run(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func readAll(f *os.File) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return "", err
		}
	}
	return sb.String(), nil
}

// reportError prints a taxonomy error; OutOfMemoryError/SystemError
// carry a pkg/errors stack trace that langerr.Error.Error() already
// renders.
func reportError(err error) {
	var le *langerr.Error
	if ok := asLangErr(err, &le); ok {
		fmt.Fprintln(os.Stderr, le.Error())
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func asLangErr(err error, target **langerr.Error) bool {
	if le, ok := err.(*langerr.Error); ok {
		*target = le
		return true
	}
	return false
}

func showUsage() {
	fmt.Println("minilang — a tree-walking, indentation-sensitive scripting language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  minilang run <file>     Run a program                  (alias: r)")
	fmt.Println("                          -debug  report live-object count on exit")
	fmt.Println("  minilang repl           Start interactive mode         (alias: i)")
	fmt.Println("  minilang help           Show this help")
	fmt.Println("  minilang version        Show version information")
}

func showVersion() {
	fmt.Printf("minilang %s (built %s)\n", VERSION, BuildDate)
}
