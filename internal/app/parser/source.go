package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceFormat identifies how a roster export is laid out on disk
type SourceFormat string

const (
	FormatText     SourceFormat = "text"
	FormatWorkbook SourceFormat = "xlsx"
)

const utf8BOM = "\ufeff"

// DetectFormat picks the source format from a file extension
func DetectFormat(path string) SourceFormat {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatWorkbook
	}
	return FormatText
}

// ReadSource reads the trimmed, non-blank lines of a roster export
func ReadSource(r io.Reader, format SourceFormat) ([]string, error) {
	switch format {
	case FormatWorkbook:
		return ReadWorkbookLines(r)
	case FormatText, "":
		return ReadLines(r)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", format)
	}
}

// ReadLines reads UTF-8 text, trimming every line and dropping blank ones.
// A leading byte order mark is discarded. Line length is not bounded.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var lines []string
	first := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if first {
				line = strings.TrimPrefix(line, utf8BOM)
				first = false
			}
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster lines: %w", err)
		}
	}
}

// ReadWorkbookLines reads the first sheet of an .xlsx export row by row.
// Every non-blank cell, left to right, becomes one line, so a roster pasted
// into a single column reads exactly like the text export.
func ReadWorkbookLines(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	var lines []string
	for _, row := range rows {
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			lines = append(lines, cell)
		}
	}
	return lines, nil
}
