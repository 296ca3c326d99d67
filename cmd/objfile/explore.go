package objfile

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/utils"
)

// ExploreCmd opens a terminal UI over one file: a section list on the
// left, section details and symbols on the right.
var ExploreCmd = &cobra.Command{
	Use:   "explore <file>",
	Short: "Browse the sections and symbols of an ELF file in a terminal UI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, c, err := loadFile(args[0])
		if err != nil {
			return printErr(err)
		}
		defer c.Close()

		return runExplorer(args[0], file)
	},
}

func runExplorer(path string, file *elf.File) error {
	app := tview.NewApplication()

	details := tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	details.SetBorder(true).SetTitle(" details ")

	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" %s ", path))

	for i := range file.Sections {
		sec := &file.Sections[i]
		label := fmt.Sprintf("[%2d] %s", sec.Index, sec.Name)
		list.AddItem(label, "", 0, nil)
	}

	list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		if index >= 0 && index < len(file.Sections) {
			details.SetText(sectionDetails(file, &file.Sections[index]))
			details.ScrollToBeginning()
		}
	})
	if len(file.Sections) > 0 {
		details.SetText(sectionDetails(file, &file.Sections[0]))
	}

	layout := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if list.HasFocus() {
				app.SetFocus(details)
			} else {
				app.SetFocus(list)
			}
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}

// sectionDetails renders one section's header fields, its segment
// membership and its symbols into tview markup.
func sectionDetails(file *elf.File, sec *elf.Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]%s[-]\n\n", sec.Name)
	fmt.Fprintf(&b, "type:      %s\n", sec.Type)
	fmt.Fprintf(&b, "flags:     %s\n", sec.Flags)
	fmt.Fprintf(&b, "address:   %s\n", utils.FormatUintHex(sec.Addr, 8))
	fmt.Fprintf(&b, "offset:    0x%x\n", sec.Offset)
	fmt.Fprintf(&b, "size:      0x%x\n", sec.Size)
	fmt.Fprintf(&b, "link/info: %d/%d\n", sec.Link, sec.Info)
	fmt.Fprintf(&b, "align:     %d, entsize: %d\n", sec.AddrAlign, sec.EntSize)

	if segs, ok := file.SectionToSegment[sec.Index]; ok && len(segs) > 0 {
		names := utils.Map(segs, func(pi int) string {
			return fmt.Sprintf("%d (%s)", pi, file.Segments[pi].Type)
		})
		fmt.Fprintf(&b, "segments:  %s\n", utils.FormatSlice(names, ", "))
	}

	symbols := elf.QuerySymbols(file.Symbols, elf.SymbolQuery{
		SectionNames: map[string]struct{}{sec.Name: {}},
	})
	if len(symbols) > 0 {
		fmt.Fprintf(&b, "\n[yellow]symbols[-]\n")
		for _, sym := range symbols {
			fmt.Fprintf(&b, "%s %-8s %-8s %s\n",
				utils.FormatUintHex(sym.Value, 8), sym.Binding, sym.Type, sym.Name)
		}
	}

	return b.String()
}
