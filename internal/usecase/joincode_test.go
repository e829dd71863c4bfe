package usecase

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRandomJoinCode_Format(t *testing.T) {
	words := make(map[string]struct{}, len(joinCodeWords))
	for _, w := range joinCodeWords {
		words[w] = struct{}{}
	}
	colors := make(map[string]struct{}, len(joinCodeColors))
	for _, c := range joinCodeColors {
		colors[c] = struct{}{}
	}

	for i := 0; i < 50; i++ {
		code, err := randomJoinCode()
		if err != nil {
			t.Fatalf("random join code failed: %v", err)
		}

		parts := strings.Split(code, "-")
		if len(parts) != 3 {
			t.Fatalf("expected WORD-COLOR-N, got %q", code)
		}
		if _, ok := words[parts[0]]; !ok {
			t.Fatalf("unknown word %q in code %q", parts[0], code)
		}
		if _, ok := colors[parts[1]]; !ok {
			t.Fatalf("unknown color %q in code %q", parts[1], code)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			t.Fatalf("non-numeric suffix in code %q", code)
		}
		if n < 1 || n > 99 {
			t.Fatalf("suffix out of range in code %q", code)
		}
	}
}

func TestFallbackJoinCode(t *testing.T) {
	now := time.UnixMilli(1767225600123)
	code := fallbackJoinCode(now)
	if code != "ROOM-600123" {
		t.Fatalf("expected ROOM-600123, got %q", code)
	}
}
