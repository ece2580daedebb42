package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	RemoveFileError

	// Config errors
	ReadConfigError
	WriteConfigError

	// Logging errors
	CreateLogFileError

	// Catalog errors
	CatalogNotFoundError
	CatalogDecodeError
	CatalogMalformedError

	// Species list errors
	ListReadError
	ListDecodeError
	ListEmptyError

	// Cache errors
	CacheOpenError
	CacheReadError
	CacheWriteError

	// Output errors
	OutputFormatError
)
