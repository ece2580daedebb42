package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
)

// OpenLogFileError is returned when the biotope log file cannot be opened
// for writing. Setting log.destination to stderr avoids the file.
func OpenLogFileError(path string, err error) error {
	var fn string
	if pc, _, _, ok := runtime.Caller(1); ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open log file <em>%s</em>, use log destination stderr to skip it",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot open log %s: %w", fn, path, err),
	}
}
