package dwarf

// Errors raised by this package are the sentinels declared in
// github.com/Manu343726/objfile/pkg/objerr (ErrUnknownForm, ErrUnknownAbbrev,
// ErrTruncated, ErrStackUnderflow, ErrUnknownOpcode, ErrUnsupported); match
// them with errors.Is/errors.As. Unknown tags are not an error here: they
// are kept as their numeric value.
