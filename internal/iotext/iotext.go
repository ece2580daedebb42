// Package iotext reads catalog and species-list files. Text is taken as
// UTF-8 when it is valid UTF-8, otherwise it is decoded as Windows-1250,
// the encoding the catalog is distributed in.
package iotext

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is the name of a supported text encoding.
type Encoding string

const (
	UTF8        Encoding = "utf-8"
	Windows1250 Encoding = "windows-1250"
)

// ErrUndecodable means the data is neither UTF-8 nor Windows-1250.
var ErrUndecodable = errors.New("text is neither utf-8 nor windows-1250")

var bom = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw bytes to a string and reports the encoding that was
// used. A UTF-8 byte order mark is dropped.
func Decode(data []byte) (string, Encoding, error) {
	if utf8.Valid(data) {
		data = bytes.TrimPrefix(data, bom)
		return string(data), UTF8, nil
	}

	res, err := charmap.Windows1250.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", err
	}
	// bytes without a Windows-1250 mapping come out as U+FFFD
	if bytes.ContainsRune(res, utf8.RuneError) {
		return "", "", ErrUndecodable
	}
	return string(res), Windows1250, nil
}

// ReadCatalog reads and decodes the catalog file.
func ReadCatalog(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", CatalogNotFoundError(path, err)
	}
	if err != nil {
		return "", "", ReadFileError(path, err)
	}

	text, enc, err := Decode(data)
	if err != nil {
		return "", "", CatalogDecodeError(path, err)
	}
	return text, enc, nil
}

// ReadList reads and decodes a species list file.
func ReadList(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ListReadError(path, err)
	}
	return DecodeList(path, data)
}

// DecodeList decodes species list data. The source is used in error
// messages only.
func DecodeList(source string, data []byte) (string, error) {
	text, _, err := Decode(data)
	if err != nil {
		return "", ListDecodeError(source, err)
	}
	return text, nil
}

// Lines splits text into trimmed non-empty lines.
func Lines(text string) []string {
	var res []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line != "" {
			res = append(res, line)
		}
	}
	return res
}
