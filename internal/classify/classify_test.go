package classify

import "testing"

func TestFirstMatchWinsByDeclaredOrder(t *testing.T) {
	c, err := New([]Spec{
		{Name: "red", Pattern: "ERROR"},
		{Name: "yellow", Pattern: "WARN"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "WARN" appears first in the text, but "ERROR" is declared first.
	if got := c.Classify("WARNING ERROR"); got != 0 {
		t.Errorf("expected rule 0 (declared order, not substring position), got %d", got)
	}
}

func TestCaseInsensitive(t *testing.T) {
	c, err := New([]Spec{{Name: "err", Pattern: "error"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Classify("kernel: ERROR at 0x80"); got != 0 {
		t.Errorf("expected case-insensitive match, got %d", got)
	}
}

func TestNoMatch(t *testing.T) {
	c, err := New([]Spec{{Name: "err", Pattern: "ERROR"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Classify("all quiet"); got != NoStyle {
		t.Errorf("expected NoStyle, got %d", got)
	}
}

func TestEmptyRuleSet(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Classify("anything"); got != NoStyle {
		t.Errorf("expected NoStyle with no rules, got %d", got)
	}
}

func TestBadPattern(t *testing.T) {
	if _, err := New([]Spec{{Name: "broken", Pattern: "("}}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestClassifyIsPure(t *testing.T) {
	c, err := New([]Spec{{Name: "a", Pattern: "x"}, {Name: "b", Pattern: "y"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := c.Classify("y then x"); got != 0 {
			t.Errorf("call %d: expected stable result 0, got %d", i, got)
		}
	}
}
