// Package report renders and parses the four-line comparison report.
//
// The report is the only thing the checker writes to stdout:
//
//	OK
//	3 total
//	3 correct
//	0 wrong
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/extcheck/compare"
)

// ErrInvalidReport is returned by Parse for input that is not a report.
var ErrInvalidReport = errors.New("report: invalid report")

// Write writes r in report format.
func Write(w io.Writer, r compare.Result) error {
	_, err := fmt.Fprintf(w, "%s\n%d total\n%d correct\n%d wrong\n", r.Verdict, r.Total, r.Correct, r.Wrong)
	return err
}

// Parse reads a report written by Write.
func Parse(r io.Reader) (compare.Summary, error) {
	var (
		s     compare.Summary
		lines []string
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return s, err
	}

	if len(lines) != 4 {
		return s, fmt.Errorf("%w: expected 4 lines, got %d", ErrInvalidReport, len(lines))
	}

	switch v := compare.Verdict(lines[0]); v {
	case compare.VerdictOK, compare.VerdictWrong:
		s.Verdict = v
	default:
		return s, fmt.Errorf("%w: unknown verdict %q", ErrInvalidReport, lines[0])
	}

	for i, f := range []struct {
		label string
		dst   *int
	}{
		{"total", &s.Total},
		{"correct", &s.Correct},
		{"wrong", &s.Wrong},
	} {
		n, err := counter(lines[i+1], f.label)
		if err != nil {
			return s, err
		}
		*f.dst = n
	}

	return s, nil
}

func counter(line, label string) (int, error) {
	num, name, ok := strings.Cut(line, " ")
	if !ok || name != label {
		return 0, fmt.Errorf("%w: expected %q line, got %q", ErrInvalidReport, label, line)
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad %s count %q", ErrInvalidReport, label, num)
	}

	return n, nil
}
