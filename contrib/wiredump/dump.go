package wiredump

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	akonadi "github.com/kdepim/akonadi.go"
	"github.com/kdepim/akonadi.go/internal/codec"
	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/kdepim/akonadi.go/pkg/imapparser"
	"github.com/kdepim/akonadi.go/pkg/logger"
	"github.com/kdepim/akonadi.go/pkg/models"
)

// RecordKind tells which model a Record carries
type RecordKind string

const (
	RecordItem       RecordKind = "item"
	RecordCollection RecordKind = "collection"
)

// Record is one decoded server response
type Record struct {
	Kind RecordKind `json:"kind"`
	// Seq is the sequence number of a FETCH response
	Seq        int64              `json:"seq,omitempty"`
	Item       *models.Item       `json:"item,omitempty"`
	Collection *models.Collection `json:"collection,omitempty"`
}

// Summary counts what a run did with the responses it read
type Summary struct {
	Items       int `json:"items"`
	Collections int `json:"collections"`
	// Skipped counts responses that are neither items nor collections
	Skipped int `json:"skipped"`
	// Errors counts responses that looked like records but did not parse
	Errors int `json:"errors"`
}

// Records returns the number of records written.
func (s Summary) Records() int {
	return s.Items + s.Collections
}

type jsonMarshaler struct{}

var _ codec.Marshaler = jsonMarshaler{}

func (jsonMarshaler) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonMarshaler) NewEncoder(w io.Writer) codec.Encoder {
	return json.NewEncoder(w)
}

// MarshalerFor returns the record codec of format.
func MarshalerFor(format string) (codec.Marshaler, error) {
	switch format {
	case FormatJSON:
		return jsonMarshaler{}, nil
	case FormatCBOR:
		return models.CborMarshaler{}, nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Dumper turns captured responses into records
type Dumper struct {
	// Largest literal read from the capture; zero means DefaultMaxLiteralSize
	MaxLiteralSize int

	helper    *akonadi.ProtocolHelper
	marshaler codec.Marshaler
	log       logger.Logger
}

// New creates a Dumper decoding with helper and encoding with marshaler
func New(helper *akonadi.ProtocolHelper, marshaler codec.Marshaler, log logger.Logger) *Dumper {
	if log == nil {
		log = logger.Nop()
	}
	return &Dumper{helper: helper, marshaler: marshaler, log: log}
}

// Dump decodes every response read from r and writes the records to w.
// Responses that fail to parse are logged and counted; only read and write
// failures abort the run.
func (d *Dumper) Dump(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	var summary Summary
	reader := NewResponseReader(r)
	if d.MaxLiteralSize > 0 {
		reader.MaxLiteralSize = d.MaxLiteralSize
	}
	encoder := d.marshaler.NewEncoder(w)

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		resp, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, fmt.Errorf("reading response %d: %w", n, err)
		}

		record, ok, err := d.decode(resp)
		if err != nil {
			summary.Errors++
			d.log.Warn("failed to decode response", "response", n, "error", err.Error())
			continue
		}
		if !ok {
			summary.Skipped++
			d.log.Debug("skipping response", "response", n)
			continue
		}

		if err := encoder.Encode(record); err != nil {
			return summary, fmt.Errorf("writing record %d: %w", n, err)
		}
		switch record.Kind {
		case RecordItem:
			summary.Items++
		case RecordCollection:
			summary.Collections++
		}
	}
}

// decode returns the record carried by resp, or false if resp carries none.
func (d *Dumper) decode(resp []byte) (*Record, bool, error) {
	pos := imapparser.SkipWhitespace(resp, 0)
	if pos >= len(resp) || resp[pos] != '*' {
		return nil, false, nil
	}
	start := pos + 1

	seq, pos, err := imapparser.ParseNumber(resp, start)
	if err != nil {
		return nil, false, nil
	}

	next, _, err := imapparser.ParseString(resp, pos)
	if err != nil {
		return nil, false, nil
	}

	if string(next) == constants.KeyFetch {
		_, tokens, err := akonadi.SplitFetchResponse(resp)
		if err != nil {
			return nil, false, err
		}
		item := models.NewItem(models.InvalidID)
		if err := d.helper.ParseItemFetchResult(tokens, &item); err != nil {
			return nil, false, err
		}
		return &Record{Kind: RecordItem, Seq: seq, Item: &item}, true, nil
	}

	if _, err := imapparser.ToNumber(next); err != nil {
		return nil, false, nil
	}
	col, _, err := d.helper.ParseCollection(resp, start)
	if err != nil {
		return nil, false, err
	}
	return &Record{Kind: RecordCollection, Collection: &col}, true, nil
}
