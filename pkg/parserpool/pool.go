// Package parserpool provides a pool of gnparser instances for concurrent
// parsing of species names. This is a pure package - parsing is
// computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances for concurrent parsing under one
// nomenclatural code.
type Pool interface {
	// Parse parses a scientific name string. It takes a parser from the
	// pool, parses the name and returns the parser back. Safe for
	// concurrent use.
	Parse(nameString string) parsed.Parsed

	// Code returns the nomenclatural code of the pool's parsers.
	Code() nomcode.Code

	// Close shuts down the pool. After calling Close, the pool should
	// not be used.
	Close()
}

type pool struct {
	ch   chan gnparser.GNparser
	code nomcode.Code
}

// NewPool creates a pool of jobsNum parsers for the given nomenclatural
// code. If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int, code nomcode.Code) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(code))
	return &pool{
		ch:   gnparser.NewPool(cfg, poolSize),
		code: code,
	}
}

// Parse blocks while all parsers are busy.
func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Code() nomcode.Code {
	return p.code
}

// Close closes the channel and drains remaining parsers.
func (p *pool) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
		p.ch = nil
	}
}
