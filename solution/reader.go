package solution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"
)

const defaultBufferSize = 64 * 1024

var (
	// ErrMalformed is matched by every ParseError.
	ErrMalformed = errors.New("malformed solution")

	// ErrEmpty is returned for input without any content.
	ErrEmpty = errors.New("empty solution")
)

// ParseError describes malformed solution input.
type ParseError struct {
	// Offset is the byte offset at which the problem was detected.
	Offset int64
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed solution at byte %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match ErrMalformed.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

type readerOptions struct {
	maxRecordBytes int
	bufferSize     int
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerOptions)

// WithMaxRecordBytes limits the length of a single record. 0 means unlimited.
func WithMaxRecordBytes(n int) ReaderOption {
	return func(o *readerOptions) {
		if n >= 0 {
			o.maxRecordBytes = n
		}
	}
}

// WithBufferSize sets the read buffer size.
func WithBufferSize(n int) ReaderOption {
	return func(o *readerOptions) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// Reader yields the raw bracketed records of a solution stream.
type Reader struct {
	br      *bufio.Reader
	opts    readerOptions
	offset  int64
	started bool
	multi   bool
	done    bool
	records int
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader, optFns ...ReaderOption) *Reader {
	opts := readerOptions{bufferSize: defaultBufferSize}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Reader{
		br:   bufio.NewReaderSize(r, opts.bufferSize),
		opts: opts,
	}
}

// Multi reports whether the stream was recognized as a list of extensions.
// It is meaningful once the first record has been read.
func (r *Reader) Multi() bool {
	return r.multi
}

// Records returns the number of records returned so far.
func (r *Reader) Records() int {
	return r.records
}

// Next returns the next record, including its brackets. It returns io.EOF
// once the stream is exhausted and a *ParseError on malformed input.
func (r *Reader) Next() (string, error) {
	if r.done {
		return "", io.EOF
	}

	start := r.offset
	chunk, err := r.br.ReadString(']')
	r.offset += int64(len(chunk))

	if err != nil && !errors.Is(err, io.EOF) {
		r.done = true
		return "", fmt.Errorf("read solution: %w", err)
	}

	if err != nil {
		return "", r.finish(chunk, start)
	}

	body := chunk[:len(chunk)-1]
	if !r.started {
		return r.first(body, start)
	}

	open := strings.IndexByte(body, '[')
	if open < 0 {
		if isBlank(body) {
			// Closing bracket of the extension list.
			r.done = true
			return "", io.EOF
		}
		return "", r.fail(start, "extension group without opening bracket")
	}

	if !onlySeparators(body[:open]) {
		return "", r.fail(start, "unexpected content between extensions")
	}

	return r.emit(body[open:], start+int64(open))
}

// All returns the remaining records as a sequence. Iteration stops after the
// first error.
func (r *Reader) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) first(body string, start int64) (string, error) {
	r.started = true

	open := strings.IndexByte(body, '[')
	if open < 0 {
		return "", r.fail(start, "missing opening bracket")
	}
	if !isBlank(body[:open]) {
		return "", r.fail(start, "content before first bracket")
	}

	inner := body[open+1:]
	if second := strings.IndexByte(inner, '['); second >= 0 {
		if !isBlank(inner[:second]) {
			return "", r.fail(start+int64(open+1), "unexpected content before first extension")
		}
		r.multi = true
		return r.emit(inner[second:], start+int64(open+1+second))
	}

	return r.emit(body[open:], start+int64(open))
}

// finish handles a trailing chunk that ended without ']'.
func (r *Reader) finish(chunk string, start int64) error {
	r.done = true

	if !r.started {
		if isBlank(chunk) {
			return &ParseError{Offset: start, Reason: "no content", Err: ErrEmpty}
		}
		if strings.IndexByte(chunk, '[') < 0 {
			return &ParseError{Offset: start, Reason: "missing opening bracket", Err: ErrMalformed}
		}
		return &ParseError{Offset: r.offset, Reason: "unterminated extension", Err: ErrMalformed}
	}

	if isBlank(chunk) {
		if r.multi {
			return &ParseError{Offset: r.offset, Reason: "unterminated extension list", Err: ErrMalformed}
		}
		return io.EOF
	}

	if strings.IndexByte(chunk, '[') >= 0 {
		return &ParseError{Offset: r.offset, Reason: "unterminated extension", Err: ErrMalformed}
	}
	return &ParseError{Offset: start, Reason: "unexpected trailing content", Err: ErrMalformed}
}

func (r *Reader) emit(group string, at int64) (string, error) {
	rec := group + "]"
	if r.opts.maxRecordBytes > 0 && len(rec) > r.opts.maxRecordBytes {
		return "", r.fail(at, fmt.Sprintf("extension exceeds %d bytes", r.opts.maxRecordBytes))
	}
	r.records++
	return rec, nil
}

func (r *Reader) fail(at int64, reason string) error {
	r.done = true
	return &ParseError{Offset: at, Reason: reason, Err: ErrMalformed}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func onlySeparators(s string) bool {
	for _, c := range s {
		if c != ',' && c != ':' && !unicode.IsSpace(c) {
			return false
		}
	}
	return true
}
