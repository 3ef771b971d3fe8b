package custom

import (
	"context"
	"strings"
	"testing"
)

func TestLoadMapping_NothingToWrite(t *testing.T) {
	n, err := LoadMapping(context.Background(), nil, "media:mapping", strings.NewReader("a.jpg,\n,b.jpg\n"))
	if err != nil {
		t.Fatalf("LoadMapping: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestLoadMapping_BadRecord(t *testing.T) {
	if _, err := LoadMapping(context.Background(), nil, "media:mapping", strings.NewReader("a.jpg\n")); err == nil {
		t.Error("expected error for a record without stored filename")
	}
}
