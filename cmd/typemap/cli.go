package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/typemap/build"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// NewBuilder constructs the corpus pass. It is only called once a
	// parse actually has to run.
	NewBuilder func(c *ParseCmd) (*build.Builder, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every parsed document"`

	Parse  ParseCmd  `cmd:"" help:"Parse the reference corpus into a mapping file"`
	Lookup LookupCmd `cmd:"" help:"Print the mapping entry for an identifier"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Corpus      string `short:"c" default:"../referencedocs" env:"TYPEMAP_CORPUS" help:"Reference documentation directory"`
	Out         string `short:"o" default:"built/typemap.json" env:"TYPEMAP_OUT" help:"Mapping file to write"`
	Force       bool   `short:"f" help:"Reparse even if the mapping file exists"`
	CacheDB     string `name:"cache-db" env:"TYPEMAP_CACHE_DB" help:"SQLite per-document cache (empty disables)"`
	IgnoreFile  string `help:"File with gitignore-style patterns of documents to leave out"`
	Language    string `default:"JavaScript" help:"Language whose type names are selected from each notation"`
	Category    string `default:"DevLang:javascript" help:"Microsoft.Help.Category a document must carry to be parsed"`
	ListSkipped bool   `help:"Print every skipped document"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Identifier string `arg:"" help:"Fully-qualified identifier (case-insensitive)"`
	Map        string `short:"m" default:"built/typemap.json" env:"TYPEMAP_OUT" help:"Mapping file to read"`
	Text       bool   `short:"t" help:"Print a declaration summary instead of JSON"`
}
