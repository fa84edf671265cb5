// Package dump reads line-delimited JSON dump files such as the Open Library
// author and works exports.
package dump

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

var (
	// ErrNoPayload is returned when a line carries no JSON object.
	ErrNoPayload = errors.New("line has no JSON payload")
	// ErrMalformed is returned when a payload cannot be decoded or lacks a required field.
	ErrMalformed = errors.New("malformed record")
)

// maxLineSize bounds a single dump line. Some works carry very long descriptions.
const maxLineSize = 16 << 20

// Line is one line of a dump file. Number is 1-based.
type Line struct {
	Number int
	Text   string
}

// Lines returns the lines of r as a lazy, finite sequence. The sequence
// consumes r and cannot be restarted.
func Lines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		n := 0
		for scanner.Scan() {
			n++
			text := strings.TrimSuffix(scanner.Text(), "\r")
			if !yield(Line{Number: n, Text: text}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Line{Number: n + 1}, fmt.Errorf("read line %d: %w", n+1, err))
		}
	}
}

// Payload returns the part of text starting at the first '{'. Anything before
// it (offsets, type markers, timestamps) is discarded.
func Payload(text string) (string, error) {
	i := strings.IndexByte(text, '{')
	if i < 0 {
		return "", ErrNoPayload
	}
	return text[i:], nil
}

// Parse decodes the JSON object carried by a dump line. Numbers are kept as
// json.Number so integer identifiers survive unchanged.
func Parse(text string) (Object, error) {
	payload, err := Payload(text)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var obj Object
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrMalformed)
	}
	return obj, nil
}

// StripKey removes a leading path prefix such as "/authors/" from an Open
// Library key.
func StripKey(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
