// Package objfile holds the objfile CLI's subcommands, one per file.
package objfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/Manu343726/objfile/pkg/binfmt/cache"
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
)

// Color definitions shared by all subcommand output: addresses, hex
// dumps, section/symbol names, and error lines each get a distinct
// color.
var (
	colorAddr    = color.New(color.FgCyan)
	colorHex     = color.New(color.FgMagenta)
	colorName    = color.New(color.FgGreen)
	colorHeader  = color.New(color.FgWhite, color.Bold, color.Underline)
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow)
	colorType    = color.New(color.FgHiYellow)
	colorValue   = color.New(color.FgWhite, color.Bold)
)

// loadFile reads path, parses it as an ELF file, and opens its cache,
// populating the cache on a fresh (or mismatched) open.
func loadFile(path string) (*elf.File, *cache.Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := elf.ParseFile(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, sk := range file.SkippedSymbols {
		slog.Warn("skipped unreadable symbol entry",
			"path", path, "section", sk.Section, "entry", sk.Index, "error", sk.Err)
	}
	slog.Debug("parsed ELF file",
		"path", path, "class", file.Header.Class, "machine", file.Header.Machine,
		"sections", len(file.Sections), "segments", len(file.Segments), "symbols", len(file.Symbols))

	cachePath := cache.SiblingPath(path)
	if dir := viper.GetString("cache_dir"); dir != "" {
		cachePath = filepath.Join(dir, filepath.Base(cachePath))
	}

	c, err := cache.Open(cachePath, data)
	if err != nil {
		return file, nil, fmt.Errorf("opening cache for %s: %w", path, err)
	}

	if c.Fresh() {
		slog.Debug("cache rebuilt", "cache", cachePath)
		if err := c.Populate(file); err != nil {
			c.Close()
			return file, nil, fmt.Errorf("populating cache for %s: %w", path, err)
		}
	}

	return file, c, nil
}

// printErr renders an error to stderr in the error color and returns a
// non-zero-exit-friendly error for cobra's RunE.
func printErr(err error) error {
	colorError.Fprintln(os.Stderr, err.Error())
	return err
}
