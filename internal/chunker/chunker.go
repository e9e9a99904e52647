// Package chunker splits extracted document text into word-bounded chunks.
//
// Text is split into sentences, and sentences are accumulated into a chunk
// until adding the next one would push the chunk past the word budget. Each
// new chunk is seeded with the trailing words of the previous one so that
// adjacent chunks share context.
package chunker

import (
	"regexp"
	"strings"
)

const (
	// DefaultSize is the default chunk budget in words.
	DefaultSize = 500

	// DefaultOverlap is the default number of trailing words carried into
	// the next chunk.
	DefaultOverlap = 50
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+`)
)

// Splitter chunks text by word count with sentence-aware boundaries.
type Splitter struct {
	size    int
	overlap int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithSize sets the chunk budget in words.
func WithSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithOverlap sets the number of words shared between adjacent chunks.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a Splitter with the given options.
// An overlap at or above the chunk size is clamped to a quarter of the size.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.overlap >= s.size {
		s.overlap = s.size / 4
	}
	return s
}

// Size returns the configured chunk budget in words.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the configured overlap in words.
func (s *Splitter) Overlap() int { return s.overlap }

// Split chunks the text. Blank or whitespace-only text yields zero chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	matches := sentenceRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		// No sentence punctuation at all. Fall back to plain word windows.
		return s.splitWords(strings.Fields(text))
	}

	sentences := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		sentences = append(sentences, text[m[0]:m[1]])
	}
	// Text after the last terminator is still document content; keep it as
	// a final sentence so no words are lost.
	if tail := strings.TrimSpace(text[matches[len(matches)-1][1]:]); tail != "" {
		sentences = append(sentences, tail)
	}

	var chunks []string
	var current []string
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(current) > 0 && len(current)+len(words) > s.size {
			chunks = append(chunks, strings.Join(current, " "))
			tail := current
			if len(tail) > s.overlap {
				tail = tail[len(tail)-s.overlap:]
			}
			current = append(append([]string(nil), tail...), words...)
			continue
		}
		current = append(current, words...)
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// splitWords produces fixed word windows with the configured overlap.
func (s *Splitter) splitWords(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	step := s.size - s.overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + s.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
