package slug

import (
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestGenerate_TruncatesToFiveWords(t *testing.T) {
	t.Parallel()

	s := Generate("One Two Three Four Five Six Seven")
	if !strings.HasPrefix(s, "one-two-three-four-five-") {
		t.Fatalf("expected prefix from first five words, got %s", s)
	}
	if strings.Contains(s, "six") {
		t.Fatalf("slug should drop words past the fifth: %s", s)
	}
}

func TestGenerate_LowercasesAndJoins(t *testing.T) {
	t.Parallel()

	s := Generate("Hello World Of Testing Today")
	if !strings.HasPrefix(s, "hello-world-of-testing-today-") {
		t.Fatalf("unexpected slug prefix: %s", s)
	}

	suffix := s[strings.LastIndex(s, "-")+1:]
	if !slugPattern.MatchString(suffix) {
		t.Fatalf("expected 8 hex chars suffix, got %q", suffix)
	}
}

func TestGenerate_IdenticalTitlesYieldDistinctSlugs(t *testing.T) {
	t.Parallel()

	a := Generate("Hello World")
	b := Generate("Hello World")
	if a == b {
		t.Fatalf("two slugs for the same title must differ: %s", a)
	}
}

func TestGenerate_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		s := Generate("repeat title")
		if _, exists := seen[s]; exists {
			t.Fatalf("duplicate slug generated in small batch: %s", s)
		}
		seen[s] = struct{}{}
	}
}

func TestGenerate_CollapsesWhitespace(t *testing.T) {
	t.Parallel()

	s := Generate("  spaced\tout   title ")
	if !strings.HasPrefix(s, "spaced-out-title-") {
		t.Fatalf("expected whitespace-delimited words joined with '-', got %s", s)
	}
}
