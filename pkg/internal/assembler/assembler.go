// Package assembler builds a typed record from the tag events of one response document.
package assembler

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/tagstream"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/go-softwarelab/common/pkg/seq"
)

var (
	// ErrUnclosedField is returned when the events end while a field is still open.
	ErrUnclosedField = errors.New("field was never closed")

	// ErrParse wraps a failure reported by the event stream.
	ErrParse = errors.New("document could not be parsed")
)

// Result is the outcome of assembling one document.
type Result struct {
	Record    schema.Record
	Missing   []schema.Field
	Anomalies []schema.Anomaly
}

// Complete reports whether every field of the schema was found in the document.
func (r Result) Complete() bool {
	return len(r.Missing) == 0
}

// Assemble consumes the events and fills a record of the given schema.
// Each call owns its own parse state.
func Assemble(s *schema.Schema, events iter.Seq[tagstream.Event]) (Result, error) {
	state := newParseState(s)

	for event := range events {
		switch event.Kind {
		case tagstream.TagOpen:
			state.open(event.Name)
		case tagstream.Text:
			state.text(event.Text)
		case tagstream.TagClose:
			state.close(event.Name)
		case tagstream.Failure:
			return Result{}, fmt.Errorf("%w: %w", ErrParse, event.Err)
		}
	}

	if state.capturing {
		return Result{}, fmt.Errorf("%w: %q", ErrUnclosedField, state.current)
	}

	return state.result(), nil
}

type parseState struct {
	schema *schema.Schema

	capturing bool
	current   schema.Field
	buffer    strings.Builder

	values    map[schema.Field]string
	seen      map[schema.Field]struct{}
	anomalies []schema.Anomaly
}

func newParseState(s *schema.Schema) *parseState {
	return &parseState{
		schema: s,
		values: make(map[schema.Field]string, s.ExpectedFieldCount()),
		seen:   make(map[schema.Field]struct{}, s.ExpectedFieldCount()),
	}
}

func (p *parseState) open(tag string) {
	if p.capturing {
		return
	}
	field, ok := p.schema.Lookup(tag)
	if !ok {
		return
	}
	p.capturing = true
	p.current = field
	p.buffer.Reset()
}

func (p *parseState) text(content string) {
	if p.capturing {
		p.buffer.WriteString(content)
	}
}

func (p *parseState) close(tag string) {
	if !p.capturing {
		return
	}

	field, ok := p.schema.Lookup(tag)
	if !ok || field != p.current {
		p.addAnomaly(schema.AnomalyMisnestedField, p.current)
		p.idle()
		return
	}

	if _, repeated := p.seen[field]; repeated {
		p.addAnomaly(schema.AnomalyRepeatedField, field)
	}
	p.values[field] = p.buffer.String()
	p.seen[field] = struct{}{}
	p.idle()
}

func (p *parseState) idle() {
	p.capturing = false
	p.current = ""
	p.buffer.Reset()
}

func (p *parseState) addAnomaly(kind schema.AnomalyKind, field schema.Field) {
	p.anomalies = append(p.anomalies, schema.Anomaly{Kind: kind, Field: field})
}

func (p *parseState) result() Result {
	missing := seq.Filter(slices.Values(p.schema.Fields()), func(f schema.Field) bool {
		_, ok := p.seen[f]
		return !ok
	})

	return Result{
		Record:    schema.NewRecord(p.schema, p.values),
		Missing:   seq.Collect(missing),
		Anomalies: p.anomalies,
	}
}
