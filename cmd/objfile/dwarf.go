package objfile

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Manu343726/objfile/pkg/binfmt/dwarf"
	"github.com/Manu343726/objfile/pkg/utils"
)

var (
	dwarfCU       int
	dwarfType     string
	dwarfLine     bool
	dwarfAranges  bool
	dwarfPubnames bool
)

// DwarfCmd decodes the DWARF debug sections of a file and dumps the DIE
// tree of a compilation unit, optionally resolving a type tree rooted at
// a given DIE offset, plus the line-number program, aranges and pubnames
// headers.
var DwarfCmd = &cobra.Command{
	Use:   "dwarf <file>",
	Short: "Dump the DWARF DIE tree and debug-section headers of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, c, err := loadFile(args[0])
		if err != nil {
			return printErr(err)
		}
		defer c.Close()

		data := dwarf.FromFile(file)
		if !data.HasDebugInfo() {
			return printErr(fmt.Errorf("%s carries no .debug_info/.debug_abbrev sections", args[0]))
		}

		units, err := data.CompileUnits()
		if err != nil {
			return printErr(err)
		}

		if err := c.PopulateDIEs(units); err != nil {
			slog.Warn("could not persist DIEs to cache", "error", err)
		}

		arangesHeaders, err := data.ArangesHeaders()
		if err != nil {
			slog.Warn("could not decode .debug_aranges headers", "error", err)
		}
		pubnamesHeaders, err := data.PubnamesHeaders()
		if err != nil {
			slog.Warn("could not decode .debug_pubnames headers", "error", err)
		}
		if err := c.PopulateDebugHeaders(arangesHeaders, pubnamesHeaders); err != nil {
			slog.Warn("could not persist debug-section headers to cache", "error", err)
		}

		if dwarfType != "" {
			offset, err := strconv.ParseInt(dwarfType, 0, 64)
			if err != nil {
				return printErr(fmt.Errorf("bad DIE offset %q: %w", dwarfType, err))
			}
			return dumpResolvedType(units, offset)
		}

		if dwarfLine {
			return dumpLinePrograms(data)
		}
		if dwarfAranges {
			return dumpAranges(data)
		}
		if dwarfPubnames {
			return dumpPubnames(data)
		}

		return dumpDIETree(units, data)
	},
}

func init() {
	DwarfCmd.Flags().IntVar(&dwarfCU, "cu", -1, "dump only the compilation unit at this index")
	DwarfCmd.Flags().StringVar(&dwarfType, "resolve-type", "", "resolve and dump the type tree rooted at this DIE offset")
	DwarfCmd.Flags().BoolVar(&dwarfLine, "line", false, "dump line-number program headers instead of the DIE tree")
	DwarfCmd.Flags().BoolVar(&dwarfAranges, "aranges", false, "dump .debug_aranges set headers")
	DwarfCmd.Flags().BoolVar(&dwarfPubnames, "pubnames", false, "dump .debug_pubnames set headers")
}

func dumpDIETree(units []dwarf.CompileUnit, data *dwarf.Data) error {
	for i := range units {
		if dwarfCU >= 0 && i != dwarfCU {
			continue
		}
		cu := &units[i]

		colorHeader.Printf("CU %d at 0x%x: DWARF v%d, address size %d, abbrev offset 0x%x\n",
			i, cu.Offset, cu.Version, cu.AddressSize, cu.AbbrevOffset)

		if len(cu.DIEs) == 0 {
			continue
		}

		root := dieTreeNode(cu, 0, data)
		fmt.Print(utils.AsciiTree(root))
		fmt.Println()
	}
	return nil
}

// dieTreeNode renders a DIE and, recursively, its children as tree
// nodes. Expression-carrying attributes are rendered through the
// describe mode of the expression machine.
func dieTreeNode(cu *dwarf.CompileUnit, idx int, data *dwarf.Data) *utils.TreeNode {
	die := &cu.DIEs[idx]

	node := utils.NewTreeNode("%s %s",
		colorAddr.Sprint(utils.FormatUintHex(uint64(die.Offset), 1)),
		colorType.Sprint(die.Tag))

	for _, attr := range die.Attributes {
		node.AddLabel("%s = %s", colorName.Sprint(attr.Attr), formatAttrValue(cu, attr, data))
	}

	for _, child := range die.Children {
		node.Add(dieTreeNode(cu, child, data))
	}

	return node
}

func formatAttrValue(cu *dwarf.CompileUnit, attr dwarf.Attribute, data *dwarf.Data) string {
	v := attr.Value

	switch {
	case attr.Form == dwarf.FormExprloc || (v.Block != nil && isLocationAttr(attr.Attr)):
		return colorHex.Sprint(dwarf.Describe(v.Block, cu.AddressSize, data.Order))
	case v.IsRef:
		return colorAddr.Sprint(utils.FormatUintHex(uint64(v.RefOffset), 1))
	case v.Str != "":
		return colorValue.Sprintf("%q", v.Str)
	case v.Block != nil:
		return colorHex.Sprintf("%d bytes", len(v.Block))
	case attr.Form == dwarf.FormFlag || attr.Form == dwarf.FormFlagPresent:
		return colorValue.Sprint(v.Flag)
	case attr.Form == dwarf.FormSdata || attr.Form == dwarf.FormImplicitConst:
		return colorValue.Sprint(v.Int)
	default:
		return colorValue.Sprintf("0x%x", v.Uint)
	}
}

func isLocationAttr(a dwarf.Attr) bool {
	switch a {
	case dwarf.AttrLocation, dwarf.AttrDataMemberLoc, dwarf.AttrFrameBase, dwarf.AttrReturnAddr:
		return true
	}
	return false
}

func dumpResolvedType(units []dwarf.CompileUnit, offset int64) error {
	resolver := dwarf.NewTypeResolver(dwarf.NewInfo(units))
	rec := resolver.ResolveType(offset)
	fmt.Print(utils.AsciiTree(typeTreeNode(rec)))
	return nil
}

func typeTreeNode(rec *dwarf.TypeRecord) *utils.TreeNode {
	if rec.IsCircular {
		return utils.NewTreeNode("%s", colorWarning.Sprintf("circular reference to %s %q", rec.Tag, rec.Name))
	}

	node := utils.NewTreeNode("%s %s",
		colorAddr.Sprint(utils.FormatUintHex(uint64(rec.Offset), 1)),
		colorType.Sprint(rec.Tag))

	for _, attr := range rec.Attributes {
		if attr.Type != nil {
			child := node.AddLabel("%s", colorName.Sprint(attr.Attr))
			child.Add(typeTreeNode(attr.Type))
			continue
		}
		if attr.Display != "" {
			node.AddLabel("%s = %s", colorName.Sprint(attr.Attr), colorValue.Sprint(attr.Display))
			continue
		}
		node.AddLabel("%s = %s", colorName.Sprint(attr.Attr), colorValue.Sprint(attr.Value.Uint))
	}

	for i := range rec.Children {
		node.Add(typeTreeNode(&rec.Children[i]))
	}

	return node
}

func dumpLinePrograms(data *dwarf.Data) error {
	headers, err := data.LineProgramHeaders()
	if err != nil {
		return printErr(err)
	}

	for i, h := range headers {
		colorHeader.Printf("Line program %d at 0x%x: v%d\n", i, h.Offset, h.Version)
		fmt.Printf("  min instruction length: %d, ops per instruction: %d\n", h.MinInstructionLength, h.MaxOpsPerInstruction)
		fmt.Printf("  default is_stmt: %v, line base: %d, line range: %d, opcode base: %d\n",
			h.DefaultIsStmt, h.LineBase, h.LineRange, h.OpcodeBase)
		if len(h.IncludeDirectories) > 0 {
			fmt.Printf("  include directories: %s\n", utils.FormatSlice(h.IncludeDirectories, ", "))
		}
		for _, f := range h.FileNames {
			fmt.Printf("  file %s (dir %d)\n", colorName.Sprint(f.Name), f.DirIdx)
		}
		fmt.Printf("  opcode stream: bytes [0x%x, 0x%x)\n", h.ProgramStart, h.ProgramEnd)
	}
	return nil
}

func dumpAranges(data *dwarf.Data) error {
	headers, err := data.ArangesHeaders()
	if err != nil {
		return printErr(err)
	}
	for i, h := range headers {
		fmt.Printf("aranges set %d at 0x%x: v%d, info offset 0x%x, address size %d, tuples [0x%x, 0x%x)\n",
			i, h.Offset, h.Version, h.DebugInfoOff, h.AddressSize, h.TuplesStart, h.TuplesEnd)
	}
	return nil
}

func dumpPubnames(data *dwarf.Data) error {
	headers, err := data.PubnamesHeaders()
	if err != nil {
		return printErr(err)
	}
	for i, h := range headers {
		fmt.Printf("pubnames set %d at 0x%x: v%d, info [0x%x, +0x%x), pairs [0x%x, 0x%x)\n",
			i, h.Offset, h.Version, h.DebugInfoOffset, h.DebugInfoLength, h.PairsStart, h.PairsEnd)
	}
	return nil
}
