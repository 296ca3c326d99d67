package objfile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/binfmt/elf/armattr"
	"github.com/Manu343726/objfile/pkg/utils"
)

var (
	inspectSymbols  bool
	inspectNotes    bool
	inspectSegments bool
)

// InspectCmd dumps the decoded model of an ELF file: header, sections,
// segments with their section mapping, symbols, notes, .comment text and
// ARM EABI attributes.
var InspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Dump the decoded header, sections, segments and symbols of an ELF file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, c, err := loadFile(args[0])
		if err != nil {
			return printErr(err)
		}
		defer c.Close()

		printHeader(file.Header)
		printSections(file.Sections)

		if inspectSegments {
			printSegments(file)
		}
		if inspectSymbols {
			printSymbols(file.Symbols)
		}
		if inspectNotes {
			printNotes(file)
		}

		if sec := file.SectionByName(".ARM.attributes"); sec != nil && sec.Image != nil {
			printARMAttributes(sec.Image)
		}

		return nil
	},
}

func init() {
	InspectCmd.Flags().BoolVar(&inspectSymbols, "symbols", true, "dump symbol tables")
	InspectCmd.Flags().BoolVar(&inspectNotes, "notes", true, "dump notes and .comment")
	InspectCmd.Flags().BoolVar(&inspectSegments, "segments", true, "dump program segments and section mapping")
}

func printHeader(h *elf.Header) {
	colorHeader.Println("ELF header")
	fmt.Printf("  Class:       %s\n", h.Class)
	fmt.Printf("  Data:        %s\n", h.Endianness)
	fmt.Printf("  OS/ABI:      %d (ABI version %d)\n", h.OSABI, h.ABIVersion)
	fmt.Printf("  Type:        %s\n", h.Type)
	fmt.Printf("  Machine:     %s\n", h.Machine)
	fmt.Printf("  Entry point: %s\n", colorAddr.Sprint(utils.FormatUintHex(h.EntryPoint, h.AddressSize()*2)))
	fmt.Printf("  Section headers: %d at offset 0x%x\n", h.SectionHdrNum, h.SectionHdrOff)
	fmt.Printf("  Program headers: %d at offset 0x%x\n", h.ProgramHdrNum, h.ProgramHdrOff)
	fmt.Println()
}

func printSections(sections []elf.Section) {
	colorHeader.Println("Sections")
	for i := range sections {
		s := &sections[i]
		fmt.Printf("  [%2d] %-24s %-14s %s size=%s flags=%s\n",
			s.Index,
			colorName.Sprint(s.Name),
			s.Type,
			colorAddr.Sprint(utils.FormatUintHex(s.Addr, 8)),
			colorHex.Sprint(utils.FormatUintHex(s.Size, 1)),
			s.Flags)
	}
	fmt.Println()
}

func printSegments(file *elf.File) {
	colorHeader.Println("Program segments")
	for i := range file.Segments {
		p := &file.Segments[i]
		fmt.Printf("  [%2d] %-14s %s vaddr=%s filesz=%s memsz=%s align=0x%x\n",
			p.Index, p.Type, p.Flags,
			colorAddr.Sprint(utils.FormatUintHex(p.VAddr, 8)),
			colorHex.Sprint(utils.FormatUintHex(p.FileSize, 1)),
			colorHex.Sprint(utils.FormatUintHex(p.MemSize, 1)),
			p.Align)

		var names []string
		for si, segs := range file.SectionToSegment {
			for _, pi := range segs {
				if pi == i {
					names = append(names, file.Sections[si].Name)
				}
			}
		}
		if len(names) > 0 {
			fmt.Printf("       sections: %s\n", utils.FormatSlice(names, " "))
		}
	}
	fmt.Println()
}

func printSymbols(symbols []elf.Symbol) {
	colorHeader.Println("Symbols")
	grouped := elf.QuerySymbolsGrouped(symbols, elf.SymbolQuery{})
	for _, section := range grouped.Order {
		fmt.Printf("  %s\n", colorName.Sprint(section))
		for _, sym := range grouped.Groups[section] {
			fmt.Printf("    %s %-8s %-8s %-10s size=%-6d %s\n",
				colorAddr.Sprint(utils.FormatUintHex(sym.Value, 8)),
				sym.Binding, sym.Type, sym.Visibility, sym.Size,
				colorValue.Sprint(sym.Name))
		}
	}
	fmt.Println()
}

func printNotes(file *elf.File) {
	if len(file.Notes) > 0 {
		colorHeader.Println("Notes")
		for _, n := range file.Notes {
			fmt.Printf("  %-24s type=%d producer=%s (%d descriptor bytes)\n",
				colorName.Sprint(n.SectionName), n.Type, colorValue.Sprint(n.Producer), len(n.Descriptor))
		}
		fmt.Println()
	}

	if file.Comment != "" {
		colorHeader.Println(".comment")
		fmt.Println(file.Comment)
		fmt.Println()
	}
}

func printARMAttributes(image []byte) {
	subsections, err := armattr.Parse(image)
	if err != nil {
		colorWarning.Printf("could not decode .ARM.attributes: %v\n", err)
		return
	}

	colorHeader.Println("ARM EABI attributes")
	for _, sub := range subsections {
		fmt.Printf("  vendor %s\n", colorName.Sprint(sub.Vendor))
		for _, attr := range sub.Attributes {
			name := attr.Name
			if !attr.Known {
				name = fmt.Sprintf("Tag_unknown_%d", attr.Tag)
			}
			switch {
			case attr.Kind == armattr.KindNTBS:
				fmt.Printf("    %-32s %s\n", name, colorValue.Sprint(attr.Text))
			case attr.Description != "":
				fmt.Printf("    %-32s %d (%s)\n", name, attr.Value, colorType.Sprint(attr.Description))
			default:
				fmt.Printf("    %-32s %d\n", name, attr.Value)
			}
		}
	}
	fmt.Println()
}
