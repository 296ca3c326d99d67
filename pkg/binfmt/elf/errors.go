package elf

// This package raises errors through github.com/Manu343726/objfile/pkg/objerr's
// sentinel taxonomy (ErrBadMagic, ErrUnsupportedClass, ErrUnsupportedEndianness,
// ErrTruncated, ErrLebOverflow, ErrEncoding, ErrUnsupported); callers should
// match with errors.Is/errors.As against that package rather than against
// anything declared here.
