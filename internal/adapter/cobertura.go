package adapter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	m "covreport.dev/pkg/covreport/internal/model"
)

const (
	packageElement = "package"
	classElement   = "class"

	filenameAttr     = "filename"
	lineRateAttr     = "line-rate"
	linesValidAttr   = "lines-valid"
	linesCoveredAttr = "lines-covered"
)

var (
	errEmptyDocument  = errors.New("no element found")
	errJunkAfterRoot  = errors.New("junk after document element")
	errTextBeforeRoot = errors.New("text before document element")
)

// ReportParser turns a coverage report into its class counters.
type ReportParser interface {
	ParseReport(path m.Path) (m.Report, error)
}

// CoberturaParser reads Cobertura XML reports through a ReportFSAdapter.
type CoberturaParser struct {
	fs ReportFSAdapter
}

// NewCoberturaParser creates a CoberturaParser.
func NewCoberturaParser(fs ReportFSAdapter) *CoberturaParser {
	return &CoberturaParser{fs: fs}
}

// ParseReport opens and decodes the report at path. The file is closed before
// returning, whether decoding succeeded or not.
func (p *CoberturaParser) ParseReport(path m.Path) (m.Report, error) {
	r, err := p.fs.OpenReport(path)
	if err != nil {
		return m.Report{}, err
	}

	defer func() {
		_ = r.Close()
	}()

	classes, err := DecodeCobertura(r)
	if err != nil {
		return m.Report{}, err
	}

	return m.Report{Path: path, Classes: classes}, nil
}

// DecodeCobertura collects every class element nested (at any depth) inside a
// package element, in document order. Classes without a filename are skipped.
// Any syntax error, duplicated attribute, content outside the single root
// element or non-numeric counter fails the whole document.
func DecodeCobertura(r io.Reader) ([]m.ClassCoverage, error) {
	decoder := xml.NewDecoder(r)

	var classes []m.ClassCoverage

	depth := 0
	packageDepth := 0
	sawRoot := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 && sawRoot {
				return nil, fmt.Errorf("line %d: %w", lineOf(decoder), errJunkAfterRoot)
			}

			if err := checkDuplicateAttrs(el); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineOf(decoder), err)
			}

			sawRoot = true
			depth++

			switch el.Name.Local {
			case packageElement:
				packageDepth++
			case classElement:
				if packageDepth == 0 {
					continue
				}

				class, ok, err := classFromAttrs(el.Attr)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineOf(decoder), err)
				}

				if ok {
					classes = append(classes, class)
				}
			}
		case xml.EndElement:
			depth--

			if el.Name.Local == packageElement {
				packageDepth--
			}
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(el)) > 0 {
				if sawRoot {
					return nil, fmt.Errorf("line %d: %w", lineOf(decoder), errJunkAfterRoot)
				}

				return nil, fmt.Errorf("line %d: %w", lineOf(decoder), errTextBeforeRoot)
			}
		}
	}

	if !sawRoot {
		return nil, errEmptyDocument
	}

	return classes, nil
}

func checkDuplicateAttrs(el xml.StartElement) error {
	seen := make(map[xml.Name]struct{}, len(el.Attr))
	for _, attr := range el.Attr {
		if _, dup := seen[attr.Name]; dup {
			return fmt.Errorf("duplicate attribute %q on <%s>", attr.Name.Local, el.Name.Local)
		}

		seen[attr.Name] = struct{}{}
	}

	return nil
}

func classFromAttrs(attrs []xml.Attr) (m.ClassCoverage, bool, error) {
	values := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		values[attr.Name.Local] = attr.Value
	}

	filename := values[filenameAttr]
	if filename == "" {
		return m.ClassCoverage{}, false, nil
	}

	class := m.ClassCoverage{Filename: filename}

	var err error

	if class.LineRate, err = floatAttr(values, lineRateAttr); err != nil {
		return m.ClassCoverage{}, false, err
	}

	if class.LinesValid, err = intAttr(values, linesValidAttr); err != nil {
		return m.ClassCoverage{}, false, err
	}

	if class.LinesCovered, err = intAttr(values, linesCoveredAttr); err != nil {
		return m.ClassCoverage{}, false, err
	}

	return class, true, nil
}

func floatAttr(values map[string]string, name string) (float64, error) {
	raw, ok := values[name]
	if !ok {
		return 0, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}

	return v, nil
}

func intAttr(values map[string]string, name string) (int, error) {
	raw, ok := values[name]
	if !ok {
		return 0, nil
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}

	return v, nil
}

func lineOf(decoder *xml.Decoder) int {
	line, _ := decoder.InputPos()
	return line
}
