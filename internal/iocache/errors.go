package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
)

func CacheOpenError(path string, err error) error {
	msg := "Cannot open catalog cache <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache: %w", fn, err),
	}
}

func CacheReadError(id string, err error) error {
	msg := "Cannot read catalog cache"
	var vars []any
	if id != "" {
		msg += " entry <em>%s</em>"
		vars = []any{id}
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read cache: %w", fn, err),
	}
}

func CacheWriteError(id string, err error) error {
	msg := "Cannot write catalog cache"
	var vars []any
	if id != "" {
		msg += " entry <em>%s</em>"
		vars = []any{id}
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write cache: %w", fn, err),
	}
}
