package elf

import (
	"regexp"
	"sort"
)

// SectionQuery filters File.Sections. A nil/zero-value field
// means "don't filter on this dimension".
type SectionQuery struct {
	Names    map[string]struct{}
	NameRe   *regexp.Regexp
	FlagMask SectionFlags
	FlagAny  bool // true: match any bit of FlagMask; false: match all bits

	// OrderByAddress sorts the result by Addr, falling back to Index to
	// keep the ordering stable; otherwise the result is ordered by name.
	OrderByAddress bool
}

func (q *SectionQuery) matches(s *Section) bool {
	if q.Names != nil {
		if _, ok := q.Names[s.Name]; !ok {
			return false
		}
	}
	if q.NameRe != nil && !q.NameRe.MatchString(s.Name) {
		return false
	}
	if q.FlagMask != 0 {
		if q.FlagAny && !s.Flags.Any(q.FlagMask) {
			return false
		}
		if !q.FlagAny && !s.Flags.Has(q.FlagMask) {
			return false
		}
	}
	return true
}

// QuerySections returns the sections matching q, stably ordered by
// address or by name.
func QuerySections(sections []Section, q SectionQuery) []Section {
	var out []Section
	for i := range sections {
		if q.matches(&sections[i]) {
			out = append(out, sections[i])
		}
	}

	if q.OrderByAddress {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Addr != out[j].Addr {
				return out[i].Addr < out[j].Addr
			}
			return out[i].Index < out[j].Index
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	}

	return out
}

// SymbolQuery filters File.Symbols.
type SymbolQuery struct {
	SectionNames map[string]struct{}
	NameRe       *regexp.Regexp
	ExactNames   map[string]struct{}
	Bindings     map[SymBinding]struct{}
	AccessMask   SectionFlags
	Types        map[SymType]struct{}

	// OrderByName orders by Name; otherwise the default order is by
	// section then by value.
	OrderByName bool

	// GroupBySection is not read by QuerySymbols, which always returns a
	// flat slice; QuerySymbolsGrouped returns the results bucketed into an
	// insertion-ordered map.
	GroupBySection bool
}

func (q *SymbolQuery) matches(s *Symbol) bool {
	if q.SectionNames != nil {
		if _, ok := q.SectionNames[s.SectionName]; !ok {
			return false
		}
	}
	if q.NameRe != nil && !q.NameRe.MatchString(s.Name) {
		return false
	}
	if q.ExactNames != nil {
		if _, ok := q.ExactNames[s.Name]; !ok {
			return false
		}
	}
	if q.Bindings != nil {
		if _, ok := q.Bindings[s.Binding]; !ok {
			return false
		}
	}
	if q.AccessMask != 0 && !s.Access.Has(q.AccessMask) {
		return false
	}
	if q.Types != nil {
		if _, ok := q.Types[s.Type]; !ok {
			return false
		}
	}
	return true
}

// QuerySymbols returns the symbols matching q in flat form, ordered by
// section-then-value (the default) or by name.
func QuerySymbols(symbols []Symbol, q SymbolQuery) []Symbol {
	var out []Symbol
	for i := range symbols {
		if q.matches(&symbols[i]) {
			out = append(out, symbols[i])
		}
	}

	if q.OrderByName {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].SectionName != out[j].SectionName {
				return out[i].SectionName < out[j].SectionName
			}
			return out[i].Value < out[j].Value
		})
	}

	return out
}

// GroupedSymbols preserves section-name insertion order: the order in
// which each section name first appears in the query's ordered result.
type GroupedSymbols struct {
	Order  []string
	Groups map[string][]Symbol
}

// QuerySymbolsGrouped is QuerySymbols with GroupBySection semantics:
// results are bucketed by SectionName, each bucket internally ordered as
// QuerySymbols would order it, with buckets visited in first-seen order.
func QuerySymbolsGrouped(symbols []Symbol, q SymbolQuery) GroupedSymbols {
	flat := QuerySymbols(symbols, q)

	g := GroupedSymbols{Groups: make(map[string][]Symbol)}
	for _, s := range flat {
		if _, ok := g.Groups[s.SectionName]; !ok {
			g.Order = append(g.Order, s.SectionName)
		}
		g.Groups[s.SectionName] = append(g.Groups[s.SectionName], s)
	}
	return g
}

// AbsoluteUnderscoreMarkers returns the absolute
// symbols (SHNAbs) whose name is non-empty, starts with '_', and whose
// type is NOTYPE. These are compiler-generated markers (e.g. linker
// script symbols) widely consumed by downstream tooling.
func AbsoluteUnderscoreMarkers(symbols []Symbol) []Symbol {
	var out []Symbol
	for i := range symbols {
		s := &symbols[i]
		if s.SectionIndex != SHNAbs {
			continue
		}
		if s.Type != SymTypeNoType {
			continue
		}
		if len(s.Name) == 0 || s.Name[0] != '_' {
			continue
		}
		out = append(out, *s)
	}
	return out
}
