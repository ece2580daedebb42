// Package output renders analysis results, list classifications and
// catalog statistics as text tables, CSV, TSV or JSON.
package output

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
)

// Format is the output format.
type Format int

const (
	FormatNone Format = iota
	Text
	CSV
	TSV
	CompactJSON
	PrettyJSON
)

var formats = map[string]Format{
	"text":    Text,
	"csv":     CSV,
	"tsv":     TSV,
	"compact": CompactJSON,
	"pretty":  PrettyJSON,
}

// NewFormat converts a format name to Format.
func NewFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if res, ok := formats[s]; ok {
		return res, nil
	}
	return FormatNone, FormatError(s)
}

// String returns the format name used in config and flags.
func (f Format) String() string {
	for k, v := range formats {
		if v == f {
			return k
		}
	}
	return "none"
}

func (f Format) sep() rune {
	if f == TSV {
		return '\t'
	}
	return ','
}

func (f Format) isJSON() bool {
	return f == CompactJSON || f == PrettyJSON
}

func FormatError(s string) error {
	msg := "Unknown output format <em>%s</em>, " +
		"use text, csv, tsv, compact or pretty"
	vars := []any{s}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format %q", fn, s),
	}
}
