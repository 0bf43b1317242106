package wiredump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kdepim/akonadi.go/pkg/constants"
)

// DefaultMaxLiteralSize bounds a single literal unless configured otherwise.
const DefaultMaxLiteralSize = 64 << 20

// ErrLiteralTooLarge is returned for a literal announcing more than the
// reader's MaxLiteralSize bytes.
var ErrLiteralTooLarge = errors.New("literal exceeds size limit")

// ResponseReader splits a capture into whole server responses. A response
// announcing a "{n}" literal at the end of a line continues past that line.
type ResponseReader struct {
	// Largest literal accepted, in bytes
	MaxLiteralSize int

	r *bufio.Reader
}

func NewResponseReader(r io.Reader) *ResponseReader {
	return &ResponseReader{MaxLiteralSize: DefaultMaxLiteralSize, r: bufio.NewReader(r)}
}

// Next returns the next non-empty response without its final line break.
// It returns io.EOF once the input is exhausted.
func (rr *ResponseReader) Next() ([]byte, error) {
	for {
		resp, err := rr.next()
		if len(bytes.TrimSpace(resp)) > 0 {
			return resp, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (rr *ResponseReader) next() ([]byte, error) {
	var resp []byte
	for {
		line, err := rr.r.ReadBytes('\n')
		resp = append(resp, line...)
		if err != nil {
			if err == io.EOF && len(resp) > 0 {
				return trimEOL(resp), nil
			}
			return trimEOL(resp), err
		}

		size, ok := trailingLiteral(line)
		if !ok {
			return trimEOL(resp), nil
		}
		if size > rr.MaxLiteralSize {
			return nil, fmt.Errorf("%w: %d bytes announced, limit is %d", ErrLiteralTooLarge, size, rr.MaxLiteralSize)
		}
		// The buffer grows with the bytes actually read, not with the announced size.
		buf := bytes.NewBuffer(resp)
		if _, err := io.CopyN(buf, rr.r, int64(size)); err != nil {
			return nil, fmt.Errorf("%w: literal of %d bytes: %v", constants.ErrUnexpectedEnd, size, err)
		}
		resp = buf.Bytes()
	}
}

// trailingLiteral reports the size of a "{n}" literal announced at the end of line.
func trailingLiteral(line []byte) (int, bool) {
	line = trimEOL(line)
	if len(line) < 3 || line[len(line)-1] != '}' {
		return 0, false
	}
	open := bytes.LastIndexByte(line, '{')
	if open < 0 || open == len(line)-2 {
		return 0, false
	}
	n, err := strconv.Atoi(string(line[open+1 : len(line)-1]))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte("\n"))
	return bytes.TrimSuffix(b, []byte("\r"))
}
