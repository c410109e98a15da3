package main

import (
	"io"
	"os"
	"time"

	detailpage "github.com/alnah/go-detailpage"
)

// PoolFactory creates the exporter pool used for PNG export.
type PoolFactory func(size int, opts ...detailpage.ExportOption) (Pool, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and browser pool creation.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	NewPool PoolFactory
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPool: newExporterPool,
	}
}

// newExporterPool adapts detailpage.NewExporterPool to PoolFactory.
func newExporterPool(size int, opts ...detailpage.ExportOption) (Pool, error) {
	p, err := detailpage.NewExporterPool(size, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}
