package moderation

import (
	"reflect"
	"testing"
)

func TestCheckerWordBoundaries(t *testing.T) {
	checker, err := NewChecker([]string{"ass", "badword"})
	if err != nil {
		t.Fatalf("failed to build checker: %v", err)
	}

	clean, _ := checker.Check("first day of class")
	if !clean {
		t.Fatalf("substring inside a word must not match")
	}

	clean, matches := checker.Check("what an Ass move")
	if clean {
		t.Fatalf("whole-word match was missed")
	}
	if !reflect.DeepEqual(matches, []string{"ass"}) {
		t.Fatalf("matches should be lowercased, got %v", matches)
	}
}

func TestCheckerDeduplicatesMatches(t *testing.T) {
	checker, err := NewChecker([]string{"spam"})
	if err != nil {
		t.Fatalf("failed to build checker: %v", err)
	}

	clean, matches := checker.Check("spam SPAM Spam")
	if clean {
		t.Fatalf("expected matches")
	}
	if !reflect.DeepEqual(matches, []string{"spam"}) {
		t.Fatalf("expected single deduplicated match, got %v", matches)
	}
}

func TestCheckerEmptyWordList(t *testing.T) {
	checker, err := NewChecker(nil)
	if err != nil {
		t.Fatalf("failed to build checker: %v", err)
	}

	if clean, matches := checker.Check("anything goes"); !clean || matches != nil {
		t.Fatalf("empty list must pass everything, got clean=%v matches=%v", clean, matches)
	}
}

func TestCheckerEscapesMetacharacters(t *testing.T) {
	checker, err := NewChecker([]string{"a+b"})
	if err != nil {
		t.Fatalf("failed to build checker: %v", err)
	}

	if clean, _ := checker.Check("aab"); !clean {
		t.Fatalf("regex metacharacters in the word list must be treated literally")
	}
}
