// Package tabular reads and writes the delimited files the voucher tool
// exchanges with banks and spreadsheets: archive tables, statement rows and
// generated voucher lines. Input files come from Chinese bank and ERP
// exports, so decoding tries an ordered list of candidate encodings until
// one succeeds.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUndecodable = errors.New("tabular: file not decodable as UTF-8, UTF-16 or GB18030")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decode converts raw file bytes to a UTF-8 string. Candidates are tried in
// order: UTF-16 when a BOM says so, then plain UTF-8, then GB18030. First
// success wins; a file matching none of them yields one aggregate error.
func decode(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, bomUTF16BE) || bytes.HasPrefix(raw, bomUTF16LE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		return string(out), nil
	}

	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, bomUTF8)), nil
	}

	out, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	// The decoder substitutes U+FFFD for byte sequences it cannot map, so
	// a mangled file "succeeds" with garbage. Treat substitution as the
	// final decode failure.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", ErrUndecodable
	}
	return string(out), nil
}

// ReadAll decodes r and parses it as delimited records. Rows may have
// ragged column counts; higher layers treat missing cells as empty.
func ReadAll(r io.Reader, delim rune) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(text))
	if delim != 0 {
		cr.Comma = delim
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: parse: %w", err)
	}
	return records, nil
}
