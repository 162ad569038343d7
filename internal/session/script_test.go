package session

import (
	"testing"

	"github.com/vovakirdan/torus-snake/internal/core"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript(" 5:down, 9:Left,5:right ,")
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	if got := script[5]; len(got) != 2 || got[0] != core.ActionDown || got[1] != core.ActionRight {
		t.Errorf("tick 5 = %v, expected [Down Right]", got)
	}
	if got := script[9]; len(got) != 1 || got[0] != core.ActionLeft {
		t.Errorf("tick 9 = %v, expected [Left]", got)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []string{
		"5",
		"0:up",
		"x:up",
		"5:sideways",
		"-1:down",
	}

	for _, in := range tests {
		if _, err := ParseScript(in); err == nil {
			t.Errorf("ParseScript(%q) should fail", in)
		}
	}
}

func TestParseScriptEmpty(t *testing.T) {
	script, err := ParseScript("")
	if err != nil {
		t.Fatalf("ParseScript(\"\") failed: %v", err)
	}
	if len(script) != 0 {
		t.Errorf("expected empty script, got %v", script)
	}
}
