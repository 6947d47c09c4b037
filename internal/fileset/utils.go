package fileset

import (
	"bytes"
	"errors"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned by Load for content that is not UTF-8.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
)

// normalizeCRLF replaces every \r\n with \n; a lone \r stays.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

func removeBOM(content []byte) ([]byte, bool) {
	rest, ok := bytes.CutPrefix(content, utf8BOM)
	return rest, ok
}

// normalizeNFC composes the text so that "e" + U+0301 and "é" scan the same.
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// relativePath is path relative to baseDir, both made absolute first.
func relativePath(path, baseDir string) (string, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, p)
	return filepath.ToSlash(rel), err
}
