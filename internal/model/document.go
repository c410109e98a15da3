package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Document is a parsed page description. Blocks are kept raw until the
// compositor decodes them one by one.
type Document struct {
	Project     string
	Description string
	Blocks      []RawBlock
}

// RawBlock is the undecoded JSON text of one block.
type RawBlock []byte

// Type returns the block discriminant, or "" when "type" is absent or not a
// string.
func (b RawBlock) Type() Type {
	r := gjson.GetBytes(b, "type")
	if r.Type != gjson.String {
		return ""
	}
	return Type(r.Str)
}

// ID returns the block_id when it is text, "" otherwise. It is used to label
// error fragments for blocks that fail to decode.
func (b RawBlock) ID() string {
	s, ok := textValue(gjson.GetBytes(b, "block_id"))
	if !ok {
		return ""
	}
	return s
}

// Decode validates the block and returns its typed variant. A block with an
// unrecognized discriminant decodes to *Unknown without further checks.
func (b RawBlock) Decode() (Block, error) {
	obj := gjson.ParseBytes(b)
	if !obj.IsObject() {
		return nil, &FieldError{Path: "(block)", Reason: "must be an object, got " + jsonKind(obj)}
	}

	tr, ok := lookupField(obj, "type")
	if !ok {
		return nil, &FieldError{Path: "type", Reason: "is missing"}
	}
	if tr.Type != gjson.String {
		return nil, &FieldError{Path: "type", Reason: "must be a string, got " + jsonKind(tr)}
	}
	t := Type(tr.Str)

	decode, known := decoders[t]
	if !known {
		return &Unknown{Header: Header{BlockID: b.ID()}, Type: t, Raw: b}, nil
	}

	f := &fields{obj: obj}
	h := Header{BlockID: f.text("block_id")}
	if f.err != nil {
		return nil, f.err
	}
	blk := decode(h, f)
	if f.err != nil {
		return nil, f.err
	}
	return blk, nil
}

func lookupField(obj gjson.Result, name string) (gjson.Result, bool) {
	f := &fields{obj: obj}
	return f.lookup(name)
}

// Parse validates the document envelope. Text that is not JSON yields a
// *ParseError; a missing, null or mistyped project, description or blocks
// yields a *SchemaError. Block contents are not inspected.
func Parse(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, syntaxError(data)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, &SchemaError{Reason: "document must be a JSON object"}
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}

	project, err := requiredString(env, "project")
	if err != nil {
		return nil, err
	}
	description, err := requiredString(env, "description")
	if err != nil {
		return nil, err
	}

	raw, ok := present(env, "blocks")
	if !ok {
		return nil, &SchemaError{Field: "blocks", Reason: "is missing"}
	}
	var items []json.RawMessage
	if raw[0] != '[' {
		return nil, &SchemaError{Field: "blocks", Reason: "must be an array"}
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &SchemaError{Field: "blocks", Reason: err.Error()}
	}

	doc := &Document{
		Project:     project,
		Description: description,
		Blocks:      make([]RawBlock, len(items)),
	}
	for i, it := range items {
		doc.Blocks[i] = RawBlock(it)
	}
	return doc, nil
}

// present returns the trimmed raw value for key, treating null as absent.
func present(env map[string]json.RawMessage, key string) ([]byte, bool) {
	raw, ok := env[key]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

func requiredString(env map[string]json.RawMessage, key string) (string, error) {
	raw, ok := present(env, key)
	if !ok {
		return "", &SchemaError{Field: key, Reason: "is missing"}
	}
	if raw[0] != '"' {
		return "", &SchemaError{Field: key, Reason: "must be a string"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &SchemaError{Field: key, Reason: err.Error()}
	}
	if s == "" {
		return "", &SchemaError{Field: key, Reason: "is empty"}
	}
	return s, nil
}

// syntaxError builds a ParseError, locating the failure when the decoder
// reports an offset.
func syntaxError(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		err = errors.New("malformed JSON")
	}
	pe := &ParseError{Offset: -1, Err: err}
	if len(bytes.TrimSpace(data)) == 0 {
		pe.Err = errors.New("empty input")
		return pe
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		pe.Offset = se.Offset
		pe.Line, pe.Column = position(data, se.Offset)
	}
	return pe
}

// position converts a byte offset into a 1-based line and column. Columns
// count bytes.
func position(data []byte, offset int64) (line, col int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1) + 1
	return line, col
}

// String is used by inspect output and log fields.
func (d *Document) String() string {
	return fmt.Sprintf("%s - %s (%d blocks)", d.Project, d.Description, len(d.Blocks))
}
