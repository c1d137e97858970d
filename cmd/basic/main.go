/*
File: basic64/cmd/basic/main.go
*/

// Package main is the basic64 command-line driver: it reads a .bas source
// file, lexes and parses it, then runs it on either the tree-walking
// interpreter or the IR/stack-VM backend.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/astdump"
	"github.com/svdev6/basic64/interp"
	"github.com/svdev6/basic64/ir"
	"github.com/svdev6/basic64/lexer"
	"github.com/svdev6/basic64/parser"
	"github.com/svdev6/basic64/report"
	"github.com/svdev6/basic64/vm"
)

var (
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
)

type cliFlags struct {
	lexDump   bool
	astDump   string // "", "dot", or "txt"
	symDump   bool
	upper     bool
	arrayBase int
	parseOnly bool
	goNext    bool
	trace     bool
	tabWidth  int
	seed      int64
	hasSeed   bool
	stats     bool
	statsFile bool
	printFile bool
	inputFile string
	useVM     bool
}

func main() {
	flags, input := parseFlags()
	if input == "" {
		redColor.Fprintln(os.Stderr, "usage: basic [options] <input.bas>")
		os.Exit(2)
	}

	src, err := os.ReadFile(input)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %s: %v\n", input, err)
		os.Exit(2)
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	rep := report.StderrReporter()

	if flags.lexDump {
		dumpLex(string(src), base)
	}

	p := parser.NewParser(string(src), rep)
	prog := p.Parse()
	if p.HasErrors() {
		return // diagnostics already reported through rep
	}

	if flags.symDump {
		dumpSymbols(prog, base)
	}
	if flags.astDump != "" {
		dumpAST(prog, flags.astDump, base)
	}
	if flags.parseOnly {
		return
	}

	printOut, closePrint := openPrintSink(flags, base)
	defer closePrint()

	start := time.Now()
	if flags.useVM {
		runVM(prog, flags, rep, printOut)
	} else {
		inputSrc, closeInput := openInputSource(flags)
		defer closeInput()
		runTree(prog, flags, rep, printOut, inputSrc)
	}
	elapsed := time.Since(start)

	if flags.stats || flags.statsFile {
		writeStats(flags, base, elapsed)
	}
}

func parseFlags() (cliFlags, string) {
	var f cliFlags
	set := flag.NewFlagSet("basic", flag.ExitOnError)
	set.BoolVar(&f.lexDump, "l", false, "dump tokens to <base>.lex")
	set.StringVar(&f.astDump, "a", "", "dump AST graph: dot|txt")
	set.BoolVar(&f.symDump, "sym", false, "dump symbol table")
	set.BoolVar(&f.upper, "u", false, "uppercase INPUT values")
	set.IntVar(&f.arrayBase, "ar", 1, "array lower bound")
	set.Bool("sl", false, "enable string slicing (accepted; our grammar already keeps slicing and array indexing distinct, see DESIGN.md)")
	set.BoolVar(&f.parseOnly, "n", false, "parse only, do not run")
	set.BoolVar(&f.goNext, "g", false, "go-next on undefined GOTO target")
	set.BoolVar(&f.trace, "t", false, "trace executed line numbers")
	set.IntVar(&f.tabWidth, "tabs", 15, "PRINT comma tab width")
	seed := set.Int64("rn", 0, "seed the RNG")
	set.BoolVar(&f.stats, "p", false, "print stats on termination")
	set.BoolVar(&f.statsFile, "w", false, "write stats file <base>_stats.txt")
	set.BoolVar(&f.printFile, "of", false, "redirect PRINT output to <base>_print.txt")
	set.StringVar(&f.inputFile, "if", "", "read INPUT lines from file")
	set.BoolVar(&f.useVM, "vm", false, "execute via the IR/stack-VM backend instead of the tree interpreter")
	set.Parse(os.Args[1:])

	if *seed != 0 {
		f.seed = *seed
		f.hasSeed = true
	}
	args := set.Args()
	if len(args) == 0 {
		return f, ""
	}
	return f, args[0]
}

func dumpLex(src, base string) {
	lex := lexer.NewLexer(src)
	toks := lex.ConsumeTokens()
	out, err := os.Create(base + ".lex")
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not write lex dump: %v\n", err)
		return
	}
	defer out.Close()
	for _, tok := range toks {
		fmt.Fprintln(out, tok.String())
	}
}

// dumpSymbols lists every scalar, list, and table name that appears as a
// LET/READ/INPUT target, a FOR/NEXT variable, or a DIM item, plus every
// DEF FN name, gathered by walking the parsed tree rather than running it -
// the --sym flag is a static dump, not a post-run report. Variables that
// appear only inside expressions are not listed.
func dumpSymbols(prog *ast.Program, base string) {
	out, err := os.Create(base + ".sym")
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not write symbol dump: %v\n", err)
		return
	}
	defer out.Close()

	scalars := map[string]bool{}
	lists := map[string]bool{}
	tables := map[string]bool{}
	funcs := map[string]bool{}
	collectSymbols(prog, scalars, lists, tables, funcs)

	fmt.Fprintln(out, "Scalars:")
	for _, n := range sortedKeys(scalars) {
		fmt.Fprintln(out, " ", n)
	}
	fmt.Fprintln(out, "Lists:")
	for _, n := range sortedKeys(lists) {
		fmt.Fprintln(out, " ", n)
	}
	fmt.Fprintln(out, "Tables:")
	for _, n := range sortedKeys(tables) {
		fmt.Fprintln(out, " ", n)
	}
	fmt.Fprintln(out, "Functions:")
	for _, n := range sortedKeys(funcs) {
		fmt.Fprintln(out, " ", n)
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collectSymbols(prog *ast.Program, scalars, lists, tables, funcs map[string]bool) {
	note := func(v *ast.Variable) {
		switch {
		case v.Dim2 != nil:
			tables[v.Name] = true
		case v.Dim1 != nil:
			lists[v.Name] = true
		default:
			scalars[v.Name] = true
		}
	}
	for _, line := range prog.Order {
		switch s := prog.Lines[line].(type) {
		case *ast.LetStmt:
			note(s.Target)
		case *ast.ReadStmt:
			for _, v := range s.Vars {
				note(v)
			}
		case *ast.InputStmt:
			for _, v := range s.Vars {
				note(v)
			}
		case *ast.ForStmt:
			note(s.Var)
		case *ast.NextStmt:
			note(s.Var)
		case *ast.DimStmt:
			for _, v := range s.Vars {
				note(v)
			}
		case *ast.DefStmt:
			funcs[s.FName] = true
		}
	}
}

func dumpAST(prog *ast.Program, mode, base string) {
	format := astdump.Text
	ext := ".ast.txt"
	if mode == "dot" {
		format = astdump.Dot
		ext = ".ast.dot"
	}
	out, err := os.Create(base + ext)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not write AST dump: %v\n", err)
		return
	}
	defer out.Close()
	astdump.Dump(prog, format, out)
}

func openPrintSink(f cliFlags, base string) (io.Writer, func()) {
	if !f.printFile {
		w := bufio.NewWriter(os.Stdout)
		return w, func() { w.Flush() }
	}
	file, err := os.Create(base + "_print.txt")
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not create print file: %v\n", err)
		os.Exit(2)
	}
	w := bufio.NewWriter(file)
	return w, func() { w.Flush(); file.Close() }
}

func openInputSource(f cliFlags) (io.Reader, func()) {
	if f.inputFile == "" {
		return os.Stdin, func() {}
	}
	file, err := os.Open(f.inputFile)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not open input file: %v\n", err)
		os.Exit(2)
	}
	return file, func() { file.Close() }
}

func writeStats(f cliFlags, base string, elapsed time.Duration) {
	var mstat runtime.MemStats
	runtime.ReadMemStats(&mstat)
	text := fmt.Sprintf(
		"elapsed: %s\nheap bytes: %d\nallocations: %d\ngoroutines: %d\n",
		elapsed, mstat.HeapAlloc, mstat.Mallocs, runtime.NumGoroutine(),
	)
	if f.stats {
		greenColor.Fprint(os.Stdout, text)
	}
	if f.statsFile {
		os.WriteFile(base+"_stats.txt", []byte(text), 0o644)
	}
}

func runTree(prog *ast.Program, f cliFlags, rep *report.Reporter, out io.Writer, in io.Reader) {
	cfg := interp.DefaultConfig()
	cfg.ArrayBase = f.arrayBase
	cfg.TabWidth = f.tabWidth
	cfg.UppercaseInput = f.upper
	cfg.GoNext = f.goNext
	cfg.Trace = f.trace
	if f.hasSeed {
		cfg.Seed = f.seed
		cfg.HasSeed = true
	}
	engine := interp.New(prog, cfg, rep, out, in)
	engine.Run()
}

func runVM(prog *ast.Program, f cliFlags, rep *report.Reporter, out io.Writer) {
	mod, err := ir.Lower(prog, f.arrayBase)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[IR BACKEND] %v\n", err)
		redColor.Fprintln(os.Stderr, "this program needs a feature the IR/VM backend does not support; rerun without -vm")
		os.Exit(2)
	}
	seed := time.Now().UnixNano()
	if f.hasSeed {
		seed = f.seed
	}
	machine := vm.New(mod, out, f.tabWidth, seed)
	if err := machine.Run(); err != nil {
		rep.Report(report.RuntimeError, 0, 0, "%s", err)
	}
}
