// Package main is the ferritec smoke-test CLI (C13): it parses one or
// more Ferrite source files and reports the resulting diagnostic counts,
// optionally dumping a one-line-per-declaration summary of each file's
// Module.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
)

var (
	version = "0.1.0-alpha"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		dumpAST     = flag.Bool("dump-ast", false, "print a one-line-per-declaration summary of the parsed module")
		parallel    = flag.Bool("parallel", false, "parse multiple files concurrently via parser.ParseFiles")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("ferritec %s\n", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}

	if *parallel && len(args) > 1 {
		if err := parseParallel(args, *dumpAST); err != nil {
			log.Fatalf("parse failed: %v", err)
		}

		return
	}

	exitCode := 0

	for _, path := range args {
		errorCount, err := parseOne(path, *dumpAST)
		if err != nil {
			log.Printf("%s: %v", path, err)
			exitCode = 1

			continue
		}

		if errorCount > 0 {
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

func showUsage() {
	fmt.Println("ferritec - Ferrite parser smoke-test CLI")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    ferritec [OPTIONS] <FILE>...")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    -version   Show version information")
	fmt.Println("    -dump-ast  Print a one-line-per-declaration summary of each parsed module")
	fmt.Println("    -parallel  Parse multiple files concurrently via parser.ParseFiles")
}

func parseOne(path string, dump bool) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	toks := lexer.Tokenize(src)

	mod, sink := parser.ParseModule(toks, path, parser.WithOnMessage(report))

	fmt.Printf("%s: %d declaration(s), %d error(s), %d warning(s)\n",
		path, len(mod.Declarations), sink.ErrorCount(), sink.WarningCount())

	if dump {
		dumpModule(mod)
	}

	return sink.ErrorCount(), nil
}

func parseParallel(paths []string, dump bool) error {
	sources := make([]parser.Source, len(paths))

	for i, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: read: %w", path, err)
		}

		sources[i] = parser.Source{FileName: path, Tokens: lexer.Tokenize(src)}
	}

	mods, sinks, err := parser.ParseFiles(context.Background(), sources, parser.WithOnMessage(report))
	if err != nil {
		return err
	}

	for i, mod := range mods {
		sink := sinks[i]
		fmt.Printf("%s: %d declaration(s), %d error(s), %d warning(s)\n",
			paths[i], len(mod.Declarations), sink.ErrorCount(), sink.WarningCount())

		if dump {
			dumpModule(mod)
		}
	}

	return nil
}

func report(fileName string, line, column int, message string, isError bool) {
	kind := "warn"
	if isError {
		kind = "error"
	}

	fmt.Fprintf(os.Stderr, "%s(%d:%d)[%s]: %s\n", fileName, line, column, kind, message)
}

func dumpModule(mod *ast.Module) {
	if mod.ModuleDecl != nil {
		fmt.Printf("  module %v\n", mod.ModuleDecl.ModuleName)
	}

	for _, decl := range mod.Declarations {
		fmt.Printf("  %T @ %d:%d\n", decl, decl.Pos().Line, decl.Pos().Column)
	}
}
