package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
)

// Format is an export file format.
type Format string

const (
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// ParseFormat accepts "xlsx", "excel" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "xlsx", "excel", "":
		return XLSX, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (use xlsx or pdf)", s)
}

// FilenameDateLayout renders the date part of export file names, e.g.
// 05-Apr-25.
const FilenameDateLayout = "02-Jan-06"

// Filename returns <entity>_<kind>_<DD-MMM-YY>.<ext>.
func Filename(entity, kind string, at time.Time, f Format) string {
	return fmt.Sprintf("%s_%s_%s.%s", slug(entity), slug(kind), at.Format(FilenameDateLayout), f)
}

func slug(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			return r
		case unicode.IsSpace(r), r == '_':
			return '_'
		}
		return -1
	}, strings.TrimSpace(s))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '_' }), "_")
	if s == "" {
		return "export"
	}
	return s
}

// Write encodes t in format f.
func Write(f Format, path string, t Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	switch f {
	case PDF:
		return WritePDF(file, t)
	case XLSX:
		return WriteSpreadsheet(file, t)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// Save writes t under dir and reports whether it succeeded. Failures are
// logged, not retried, and leave no partial file behind.
func Save(dir, name string, f Format, t Table) (string, bool) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("export failed", "dir", dir, "error", err)
		return "", false
	}

	path := filepath.Join(dir, name)
	if err := Write(f, path, t); err != nil {
		log.Error("export failed", "path", path, "format", f, "error", err)
		_ = os.Remove(path)
		return "", false
	}

	log.Info("export saved", "path", path, "rows", len(t.Rows))
	return path, true
}
