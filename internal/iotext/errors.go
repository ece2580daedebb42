package iotext

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
)

func CatalogNotFoundError(path string, err error) error {
	msg := "Catalog file <em>%s</em> does not exist"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot find catalog: %w", fn, err),
	}
}

func CatalogDecodeError(path string, err error) error {
	msg := "Cannot decode catalog <em>%s</em> as UTF-8 or Windows-1250"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode catalog: %w", fn, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func ListReadError(path string, err error) error {
	msg := "Cannot read species list <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ListReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read list: %w", fn, err),
	}
}

func ListDecodeError(source string, err error) error {
	msg := "Cannot decode species list <em>%s</em>. " +
		"Please use a UTF-8 or Windows-1250 encoded text file"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ListDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode list: %w", fn, err),
	}
}

func ListEmptyError(source string) error {
	msg := "No species names found in <em>%s</em>"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ListEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty species list %s", fn, source),
	}
}
