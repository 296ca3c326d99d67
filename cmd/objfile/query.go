package objfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/utils"
)

var (
	querySymbols  bool
	queryNames    []string
	queryRegex    string
	queryFlags    string
	queryFlagsAny bool
	queryBindings []string
	queryTypes    []string
	queryByName   bool
	queryGrouped  bool
	queryMarkers  bool
	queryFile     string
)

// QueryCmd runs a section or symbol query against a file. The query can
// be given through flags or loaded from a YAML query file; flags win
// over the file on the dimensions both set.
var QueryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Query sections or symbols by name, regex, flags, binding or type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, c, err := loadFile(args[0])
		if err != nil {
			return printErr(err)
		}
		defer c.Close()

		spec := querySpec{}
		if queryFile != "" {
			if err := loadQuerySpec(queryFile, &spec); err != nil {
				return printErr(err)
			}
		}
		applyQueryFlags(&spec)

		if queryMarkers {
			return runMarkersQuery(file)
		}
		if querySymbols || spec.Symbols != nil {
			return runSymbolQuery(file, &spec)
		}
		return runSectionQuery(file, &spec)
	},
}

func init() {
	QueryCmd.Flags().BoolVar(&querySymbols, "symbols", false, "query symbols instead of sections")
	QueryCmd.Flags().StringSliceVar(&queryNames, "names", nil, "exact names to match")
	QueryCmd.Flags().StringVar(&queryRegex, "regex", "", "regular expression over names")
	QueryCmd.Flags().StringVar(&queryFlags, "flags", "", "section flag letters to match (e.g. WA, X, T)")
	QueryCmd.Flags().BoolVar(&queryFlagsAny, "any-flag", false, "match any of the given flags instead of all")
	QueryCmd.Flags().StringSliceVar(&queryBindings, "binding", nil, "symbol bindings (local, global, weak, gnu_unique)")
	QueryCmd.Flags().StringSliceVar(&queryTypes, "type", nil, "symbol types (notype, object, func, section, file, common, tls)")
	QueryCmd.Flags().BoolVar(&queryByName, "by-name", false, "order results by name")
	QueryCmd.Flags().BoolVar(&queryGrouped, "grouped", false, "group symbol results by section")
	QueryCmd.Flags().BoolVar(&queryMarkers, "markers", false, "list absolute underscore-prefixed NOTYPE markers")
	QueryCmd.Flags().StringVar(&queryFile, "query-file", "", "YAML file describing the query")
}

// querySpec is the YAML shape of a saved query. Either block may be
// absent; a present symbols block switches the query to symbol mode.
type querySpec struct {
	Sections *sectionSpec `yaml:"sections"`
	Symbols  *symbolSpec  `yaml:"symbols"`
}

type sectionSpec struct {
	Names          []string `yaml:"names"`
	NameRegex      string   `yaml:"name_regex"`
	Flags          string   `yaml:"flags"`
	FlagsAny       bool     `yaml:"flags_any"`
	OrderByAddress bool     `yaml:"order_by_address"`
}

type symbolSpec struct {
	SectionNames []string `yaml:"section_names"`
	NameRegex    string   `yaml:"name_regex"`
	Names        []string `yaml:"names"`
	Bindings     []string `yaml:"bindings"`
	AccessFlags  string   `yaml:"access_flags"`
	Types        []string `yaml:"types"`
	OrderByName  bool     `yaml:"order_by_name"`
	Grouped      bool     `yaml:"grouped"`
}

func loadQuerySpec(path string, spec *querySpec) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading query file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("parsing query file %s: %w", path, err)
	}
	return nil
}

// applyQueryFlags merges command-line flags into a (possibly file-loaded)
// spec; flags win on any dimension they set.
func applyQueryFlags(spec *querySpec) {
	if querySymbols || spec.Symbols != nil {
		if spec.Symbols == nil {
			spec.Symbols = &symbolSpec{}
		}
		s := spec.Symbols
		if queryRegex != "" {
			s.NameRegex = queryRegex
		}
		if len(queryNames) > 0 {
			s.Names = queryNames
		}
		if len(queryBindings) > 0 {
			s.Bindings = queryBindings
		}
		if len(queryTypes) > 0 {
			s.Types = queryTypes
		}
		if queryFlags != "" {
			s.AccessFlags = queryFlags
		}
		s.OrderByName = s.OrderByName || queryByName
		s.Grouped = s.Grouped || queryGrouped
		return
	}

	if spec.Sections == nil {
		spec.Sections = &sectionSpec{}
	}
	s := spec.Sections
	if queryRegex != "" {
		s.NameRegex = queryRegex
	}
	if len(queryNames) > 0 {
		s.Names = queryNames
	}
	if queryFlags != "" {
		s.Flags = queryFlags
	}
	s.FlagsAny = s.FlagsAny || queryFlagsAny
	if queryByName {
		s.OrderByAddress = false
	} else if queryFile == "" {
		s.OrderByAddress = true
	}
}

// parseFlagLetters turns a readelf-style flag string (e.g. "WAX") into a
// SectionFlags mask.
func parseFlagLetters(letters string) (elf.SectionFlags, error) {
	byLetter := map[rune]elf.SectionFlags{
		'W': elf.SHFWrite, 'A': elf.SHFAlloc, 'X': elf.SHFExecInstr,
		'M': elf.SHFMerge, 'S': elf.SHFStrings, 'I': elf.SHFInfoLink,
		'L': elf.SHFLinkOrder, 'O': elf.SHFOSNonconforming, 'G': elf.SHFGroup,
		'T': elf.SHFTLS, 'C': elf.SHFCompressed,
	}

	var mask elf.SectionFlags
	for _, letter := range strings.ToUpper(letters) {
		bit, ok := byLetter[letter]
		if !ok {
			return 0, fmt.Errorf("unknown section flag letter %q", letter)
		}
		mask |= bit
	}
	return mask, nil
}

func parseBindings(names []string) (map[elf.SymBinding]struct{}, error) {
	byName := map[string]elf.SymBinding{
		"local": elf.BindLocal, "global": elf.BindGlobal,
		"weak": elf.BindWeak, "gnu_unique": elf.BindGNUUnique,
	}

	out := make(map[elf.SymBinding]struct{}, len(names))
	for _, name := range names {
		b, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown symbol binding %q", name)
		}
		out[b] = struct{}{}
	}
	return out, nil
}

func parseSymTypes(names []string) (map[elf.SymType]struct{}, error) {
	byName := map[string]elf.SymType{
		"notype": elf.SymTypeNoType, "object": elf.SymTypeObject,
		"func": elf.SymTypeFunc, "section": elf.SymTypeSection,
		"file": elf.SymTypeFile, "common": elf.SymTypeCommon,
		"tls": elf.SymTypeTLS, "gnu_ifunc": elf.SymTypeGNUIFunc,
	}

	out := make(map[elf.SymType]struct{}, len(names))
	for _, name := range names {
		t, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown symbol type %q", name)
		}
		out[t] = struct{}{}
	}
	return out, nil
}

func runSectionQuery(file *elf.File, spec *querySpec) error {
	s := spec.Sections

	q := elf.SectionQuery{OrderByAddress: s.OrderByAddress}
	if len(s.Names) > 0 {
		q.Names = utils.MakeSet(s.Names)
	}
	if s.NameRegex != "" {
		re, err := regexp.Compile(s.NameRegex)
		if err != nil {
			return printErr(err)
		}
		q.NameRe = re
	}
	if s.Flags != "" {
		mask, err := parseFlagLetters(s.Flags)
		if err != nil {
			return printErr(err)
		}
		q.FlagMask = mask
		q.FlagAny = s.FlagsAny
	}

	for _, sec := range elf.QuerySections(file.Sections, q) {
		fmt.Printf("%s %-24s %-14s size=%s flags=%s\n",
			colorAddr.Sprint(utils.FormatUintHex(sec.Addr, 8)),
			colorName.Sprint(sec.Name), sec.Type,
			colorHex.Sprint(utils.FormatUintHex(sec.Size, 1)),
			sec.Flags)
	}
	return nil
}

func runSymbolQuery(file *elf.File, spec *querySpec) error {
	s := spec.Symbols

	q := elf.SymbolQuery{OrderByName: s.OrderByName}
	if len(s.SectionNames) > 0 {
		q.SectionNames = utils.MakeSet(s.SectionNames)
	}
	if len(s.Names) > 0 {
		q.ExactNames = utils.MakeSet(s.Names)
	}
	if s.NameRegex != "" {
		re, err := regexp.Compile(s.NameRegex)
		if err != nil {
			return printErr(err)
		}
		q.NameRe = re
	}
	if len(s.Bindings) > 0 {
		bindings, err := parseBindings(s.Bindings)
		if err != nil {
			return printErr(err)
		}
		q.Bindings = bindings
	}
	if len(s.Types) > 0 {
		types, err := parseSymTypes(s.Types)
		if err != nil {
			return printErr(err)
		}
		q.Types = types
	}
	if s.AccessFlags != "" {
		mask, err := parseFlagLetters(s.AccessFlags)
		if err != nil {
			return printErr(err)
		}
		q.AccessMask = mask
	}

	if s.Grouped {
		grouped := elf.QuerySymbolsGrouped(file.Symbols, q)
		for _, section := range grouped.Order {
			fmt.Printf("%s\n", colorName.Sprint(section))
			for _, sym := range grouped.Groups[section] {
				printSymbolRow(&sym, "  ")
			}
		}
		return nil
	}

	for _, sym := range elf.QuerySymbols(file.Symbols, q) {
		printSymbolRow(&sym, "")
	}
	return nil
}

func runMarkersQuery(file *elf.File) error {
	for _, sym := range elf.AbsoluteUnderscoreMarkers(file.Symbols) {
		printSymbolRow(&sym, "")
	}
	return nil
}

func printSymbolRow(sym *elf.Symbol, indent string) {
	fmt.Printf("%s%s %-8s %-8s %-18s %s\n",
		indent,
		colorAddr.Sprint(utils.FormatUintHex(sym.Value, 8)),
		sym.Binding, sym.Type,
		colorName.Sprint(sym.SectionName),
		colorValue.Sprint(sym.Name))
}
