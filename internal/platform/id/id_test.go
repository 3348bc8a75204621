package id

import (
	"strings"
	"testing"
)

func TestNew_PrefixAndUnique(t *testing.T) {
	a, b := New("dl"), New("dl")
	if !strings.HasPrefix(a, "dl_") {
		t.Fatalf("id=%s, want dl_ prefix", a)
	}
	if a == b {
		t.Fatalf("ids collide: %s", a)
	}
}
