package objfile

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Manu343726/objfile/pkg/binfmt/dwarf"
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/utils"
)

// ReplCmd opens an interactive query shell over one file: sections,
// symbols and DIEs can be listed and inspected without re-parsing the
// file between queries.
var ReplCmd = &cobra.Command{
	Use:   "repl <file>",
	Short: "Interactive query shell over an ELF file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, c, err := loadFile(args[0])
		if err != nil {
			return printErr(err)
		}
		defer c.Close()

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "objfile> ",
			HistoryFile:     "/tmp/objfile_repl_history",
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			AutoComplete: readline.NewPrefixCompleter(
				readline.PcItem("header"),
				readline.PcItem("sections"),
				readline.PcItem("segments"),
				readline.PcItem("symbols"),
				readline.PcItem("markers"),
				readline.PcItem("notes"),
				readline.PcItem("comment"),
				readline.PcItem("cus"),
				readline.PcItem("die"),
				readline.PcItem("type"),
				readline.PcItem("help"),
				readline.PcItem("exit"),
			),
		})
		if err != nil {
			return printErr(err)
		}
		defer rl.Close()

		session := &replSession{file: file}

		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}

			if err := session.run(line); err != nil {
				colorError.Println(err.Error())
			}
		}
	},
}

// replSession keeps the parsed file and the lazily decoded DWARF state
// alive between prompt lines.
type replSession struct {
	file     *elf.File
	units    []dwarf.CompileUnit
	resolver *dwarf.TypeResolver
	data     *dwarf.Data
}

// dwarfState decodes the DWARF sections on first use.
func (s *replSession) dwarfState() error {
	if s.units != nil {
		return nil
	}

	s.data = dwarf.FromFile(s.file)
	if !s.data.HasDebugInfo() {
		return fmt.Errorf("file carries no .debug_info/.debug_abbrev sections")
	}

	units, err := s.data.CompileUnits()
	if err != nil {
		return err
	}
	s.units = units
	s.resolver = dwarf.NewTypeResolver(dwarf.NewInfo(units))
	return nil
}

func (s *replSession) run(line string) error {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "help":
		fmt.Println("commands: header, sections [regex], segments, symbols [regex], markers, notes, comment, cus, die <offset>, type <offset>, exit")
		return nil

	case "header":
		printHeader(s.file.Header)
		return nil

	case "sections":
		q := elf.SectionQuery{OrderByAddress: true}
		if len(args) > 0 {
			re, err := regexp.Compile(args[0])
			if err != nil {
				return err
			}
			q.NameRe = re
		}
		for _, sec := range elf.QuerySections(s.file.Sections, q) {
			fmt.Printf("[%2d] %s %-24s %-14s size=0x%x flags=%s\n",
				sec.Index, colorAddr.Sprint(utils.FormatUintHex(sec.Addr, 8)),
				colorName.Sprint(sec.Name), sec.Type, sec.Size, sec.Flags)
		}
		return nil

	case "segments":
		printSegments(s.file)
		return nil

	case "symbols":
		q := elf.SymbolQuery{}
		if len(args) > 0 {
			re, err := regexp.Compile(args[0])
			if err != nil {
				return err
			}
			q.NameRe = re
		}
		for _, sym := range elf.QuerySymbols(s.file.Symbols, q) {
			printSymbolRow(&sym, "")
		}
		return nil

	case "markers":
		for _, sym := range elf.AbsoluteUnderscoreMarkers(s.file.Symbols) {
			printSymbolRow(&sym, "")
		}
		return nil

	case "notes", "comment":
		printNotes(s.file)
		return nil

	case "cus":
		if err := s.dwarfState(); err != nil {
			return err
		}
		for i := range s.units {
			cu := &s.units[i]
			fmt.Printf("CU %d at 0x%x: v%d, address size %d, %d DIEs\n",
				i, cu.Offset, cu.Version, cu.AddressSize, len(cu.DIEs))
		}
		return nil

	case "die":
		if len(args) != 1 {
			return fmt.Errorf("usage: die <offset>")
		}
		if err := s.dwarfState(); err != nil {
			return err
		}
		offset, err := strconv.ParseInt(args[0], 0, 64)
		if err != nil {
			return fmt.Errorf("bad DIE offset %q: %w", args[0], err)
		}
		for i := range s.units {
			cu := &s.units[i]
			if idx := cu.ByOffset(offset); idx >= 0 {
				fmt.Print(utils.AsciiTree(dieTreeNode(cu, idx, s.data)))
				return nil
			}
		}
		return fmt.Errorf("no DIE at offset 0x%x", offset)

	case "type":
		if len(args) != 1 {
			return fmt.Errorf("usage: type <offset>")
		}
		if err := s.dwarfState(); err != nil {
			return err
		}
		offset, err := strconv.ParseInt(args[0], 0, 64)
		if err != nil {
			return fmt.Errorf("bad DIE offset %q: %w", args[0], err)
		}
		fmt.Print(utils.AsciiTree(typeTreeNode(s.resolver.ResolveType(offset))))
		return nil

	default:
		return fmt.Errorf("unknown command %q (try help)", command)
	}
}
