package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	if s.Size() != DefaultSize {
		t.Errorf("expected size %d, got %d", DefaultSize, s.Size())
	}
	if s.Overlap() != DefaultOverlap {
		t.Errorf("expected overlap %d, got %d", DefaultOverlap, s.Overlap())
	}
}

func TestNew_Options(t *testing.T) {
	t.Run("custom values", func(t *testing.T) {
		s := New(WithSize(100), WithOverlap(10))
		if s.Size() != 100 || s.Overlap() != 10 {
			t.Errorf("expected 100/10, got %d/%d", s.Size(), s.Overlap())
		}
	})

	t.Run("overlap clamped below size", func(t *testing.T) {
		s := New(WithSize(20), WithOverlap(20))
		if s.Overlap() != 5 {
			t.Errorf("expected overlap clamped to 5, got %d", s.Overlap())
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		s := New(WithSize(0), WithOverlap(-1))
		if s.Size() != DefaultSize || s.Overlap() != DefaultOverlap {
			t.Errorf("expected defaults, got %d/%d", s.Size(), s.Overlap())
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	s := New()
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		if chunks := s.Split(text); len(chunks) != 0 {
			t.Errorf("Split(%q): expected no chunks, got %d", text, len(chunks))
		}
	}
}

func TestSplit_ShortText_SingleChunk(t *testing.T) {
	s := New(WithSize(10), WithOverlap(2))
	chunks := s.Split("Cats are mammals. Dogs are mammals too.")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "Cats are mammals. Dogs are mammals too." {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}

func TestSplit_OverlapInvariant(t *testing.T) {
	// Twelve three-word sentences against a five-word budget forces
	// several chunk boundaries.
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "word%da word%db word%dc. ", i, i, i)
	}

	const overlap = 2
	s := New(WithSize(5), WithOverlap(overlap))
	chunks := s.Split(sb.String())

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		curr := strings.Fields(chunks[i])
		if len(prev) < overlap {
			continue
		}
		tail := prev[len(prev)-overlap:]
		head := curr[:overlap]
		for j := range tail {
			if tail[j] != head[j] {
				t.Errorf("chunk %d does not start with the last %d words of chunk %d: %v vs %v",
					i, overlap, i-1, head, tail)
				break
			}
		}
	}
}

func TestSplit_NormalisesWhitespace(t *testing.T) {
	s := New()
	chunks := s.Split("first  line\n\nsecond\tline.")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "first line second line." {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}

func TestSplit_NoPunctuation_WordWindows(t *testing.T) {
	words := make([]string, 23)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}

	s := New(WithSize(10), WithOverlap(2))
	chunks := s.Split(strings.Join(words, " "))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	// Windows advance by size-overlap words.
	if !strings.HasPrefix(chunks[1], "w8 ") {
		t.Errorf("second window should start at w8: %q", chunks[1])
	}
	if !strings.HasSuffix(chunks[2], "w22") {
		t.Errorf("last window should end at w22: %q", chunks[2])
	}
}

func TestSplit_EveryWordPreserved(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, "token%d alpha beta. ", i)
	}
	// A trailing fragment with no terminator must survive chunking too.
	sb.WriteString("final trailing fragment")

	s := New(WithSize(25), WithOverlap(5))
	chunks := s.Split(sb.String())

	joined := strings.Join(chunks, " ")
	for i := 0; i < 40; i++ {
		if !strings.Contains(joined, fmt.Sprintf("token%d", i)) {
			t.Errorf("token%d missing from chunks", i)
		}
	}
	if !strings.Contains(joined, "final trailing fragment") {
		t.Error("unterminated trailing text missing from chunks")
	}
}

func TestSplit_TrailingUnterminatedSentence(t *testing.T) {
	s := New(WithSize(10), WithOverlap(2))
	chunks := s.Split("Cats are mammals. Dogs are friendly companions without a period")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "Cats are mammals. Dogs are friendly companions without a period" {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}
