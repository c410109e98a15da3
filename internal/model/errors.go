package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for document and block processing.
var (
	ErrParse          = errors.New("invalid document syntax")
	ErrSchema         = errors.New("invalid document structure")
	ErrMalformedBlock = errors.New("malformed block")
	ErrBlockRender    = errors.New("block render failed")
)

// ParseError reports input that is not well-formed JSON.
type ParseError struct {
	Offset int64 // byte offset of the error, -1 when unknown
	Line   int   // 1-based, 0 when unknown
	Column int   // 1-based, 0 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d, column %d: %v", ErrParse, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaError reports a missing or mistyped top-level document field.
type SchemaError struct {
	Field  string // empty when the document itself has the wrong shape
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrSchema, e.Reason)
	}
	return fmt.Sprintf("%v: field %q %s", ErrSchema, e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// FieldError reports a missing or mistyped field inside a block.
// Path uses dotted notation with list indices, e.g. "choices[1].imgSrc".
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: field %q %s", ErrMalformedBlock, e.Path, e.Reason)
}

func (e *FieldError) Is(target error) bool { return target == ErrMalformedBlock }

// BlockRenderError records one block (or image run) that could not be
// rendered. It never aborts a compile; the compositor substitutes an inline
// error fragment and keeps going.
type BlockRenderError struct {
	BlockID string // first block_id of the failing run
	Index   int    // position of that block in the document
	Type    Type
	Err     error
}

func (e *BlockRenderError) Error() string {
	return fmt.Sprintf("%v: block %q (index %d, type %q): %v", ErrBlockRender, e.BlockID, e.Index, e.Type, e.Err)
}

func (e *BlockRenderError) Unwrap() error { return e.Err }

func (e *BlockRenderError) Is(target error) bool { return target == ErrBlockRender }
