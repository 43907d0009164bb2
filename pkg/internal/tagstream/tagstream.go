// Package tagstream turns a response document into a lazy stream of tag and text events.
package tagstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync/atomic"

	"golang.org/x/net/html/charset"
)

// EventKind is the kind of event produced by the parser.
type EventKind int

const (
	TagOpen EventKind = iota + 1
	Text
	TagClose
	// Failure is terminal: no event follows it.
	Failure
)

func (k EventKind) String() string {
	switch k {
	case TagOpen:
		return "open"
	case Text:
		return "text"
	case TagClose:
		return "close"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a single step of the document scan.
// Name is set for TagOpen and TagClose, Text for Text and Err for Failure.
type Event struct {
	Kind EventKind
	Name string
	Text string
	Err  error
}

var (
	ErrMalformed       = errors.New("malformed document")
	ErrNoRootElement   = errors.New("document has no root element")
	ErrTextOutsideRoot = errors.New("text outside of the root element")
	ErrMultipleRoots   = errors.New("document has more than one root element")
	ErrAlreadyConsumed = errors.New("event stream can be consumed only once")
)

const byteOrderMark = "\ufeff"

// Parse returns the events of the document, left to right.
//
// The sequence is lazy and can be ranged over only once;
// ranging again yields a single Failure event.
// Entity references, including the HTML named entities, are decoded in text events.
// Documents declaring a non UTF-8 encoding are transcoded and a leading byte order mark is skipped.
func Parse(document string) iter.Seq[Event] {
	var consumed atomic.Bool

	return func(yield func(Event) bool) {
		if consumed.Swap(true) {
			yield(failure(ErrAlreadyConsumed))
			return
		}
		trimmed := strings.TrimPrefix(document, byteOrderMark)
		scan(newDecoder(strings.NewReader(trimmed)), yield)
	}
}

func newDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder
}

func scan(decoder *xml.Decoder, yield func(Event) bool) {
	depth := 0
	roots := 0

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			if roots == 0 {
				yield(failure(ErrNoRootElement))
			}
			return
		}
		if err != nil {
			yield(failure(fmt.Errorf("%w: %w", ErrMalformed, err)))
			return
		}

		var event Event
		switch t := token.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					yield(failure(ErrMultipleRoots))
					return
				}
			}
			depth++
			event = Event{Kind: TagOpen, Name: t.Name.Local}
		case xml.EndElement:
			depth--
			event = Event{Kind: TagClose, Name: t.Name.Local}
		case xml.CharData:
			if depth == 0 {
				if strings.TrimSpace(string(t)) != "" {
					yield(failure(ErrTextOutsideRoot))
					return
				}
				continue
			}
			event = Event{Kind: Text, Text: string(t)}
		default:
			// comments, processing instructions and directives carry no field data
			continue
		}

		if !yield(event) {
			return
		}
	}
}

func failure(err error) Event {
	return Event{Kind: Failure, Err: err}
}
