// Package model defines the page-description document: a project header and
// an ordered list of typed content blocks.
//
// Parsing is split in two stages. Parse validates only the document envelope
// (project, description, blocks) and keeps each block as a RawBlock. Blocks
// are decoded one at a time by RawBlock.Decode, so a malformed block fails on
// its own without invalidating the document.
package model
