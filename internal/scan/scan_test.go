package scan

import (
	"bytes"
	"strings"
	"testing"
)

func TestIndexByte(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty", "", 'a', -1},
		{"short hit", "abc", 'c', 2},
		{"short miss", "abc", 'x', -1},
		{"first chunk", "hello world", 'o', 4},
		{"second chunk", "aaaaaaaaaaab", 'b', 11},
		{"tail", strings.Repeat("x", 17) + "y", 'y', 17},
		{"high byte", "abcdefgh\xff", 0xff, 8},
		{"zero byte", "abcdefgh\x00ij", 0x00, 8},
		{"first of many", "zzzzzzzzzzazzzza", 'a', 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexByte([]byte(tt.haystack), tt.needle)
			if got != tt.want {
				t.Errorf("IndexByte(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

// TestIndexByteAgainstStdlib checks every needle position across chunk
// boundaries.
func TestIndexByteAgainstStdlib(t *testing.T) {
	for size := 0; size < 40; size++ {
		for pos := 0; pos < size; pos++ {
			b := bytes.Repeat([]byte{'.'}, size)
			b[pos] = '#'
			if got, want := IndexByte(b, '#'), bytes.IndexByte(b, '#'); got != want {
				t.Fatalf("size=%d pos=%d: got %d, want %d", size, pos, got, want)
			}
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     int
	}{
		{"hello world", "world", 6},
		{"hello world", "xyz", -1},
		{"aaaaaabaaaa", "aab", 4},
		{"abc", "", 0},
		{"ab", "abc", -1},
		{"abc:def", ":", 3},
		{"name: value\r\nnext", "\r\n", 11},
		{"\r\r\r\n", "\r\n", 2},
		{"GET /index.html HTTP/1.1", "HTTP/", 16},
		{"xxQab", "Qabc", -1},
		{"abQ", "bQ", 1},
		{"Qxx", "Qxxx", -1},
	}

	for _, tt := range tests {
		got := Index([]byte(tt.haystack), []byte(tt.needle))
		if got != tt.want {
			t.Errorf("Index(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
		}
		if std := strings.Index(tt.haystack, tt.needle); got != std {
			t.Errorf("Index(%q, %q) = %d, strings.Index = %d", tt.haystack, tt.needle, got, std)
		}
	}
}

// TestIndexAgainstStdlib places the needle at every offset so that the rare
// byte lands on both ends of the candidate window.
func TestIndexAgainstStdlib(t *testing.T) {
	for _, needle := range []string{"Zz", "zZ", "aZa", "Host:", "\r\n\r\n"} {
		for size := 0; size < 24; size++ {
			for pos := 0; pos+len(needle) <= size; pos++ {
				b := bytes.Repeat([]byte{'a'}, size)
				copy(b[pos:], needle)
				if got, want := Index(b, []byte(needle)), bytes.Index(b, []byte(needle)); got != want {
					t.Fatalf("Index(%q, %q) = %d, want %d", b, needle, got, want)
				}
			}
		}
	}
}

func TestRarest(t *testing.T) {
	tests := []struct {
		needle string
		want   int
	}{
		{"a", 0},
		{"eZe", 1},
		{"HTTP/", 3},
		{"  ", 1},
		{"\r\n", 1},
	}

	for _, tt := range tests {
		if got := rarest([]byte(tt.needle)); got != tt.want {
			t.Errorf("rarest(%q) = %d, want %d", tt.needle, got, tt.want)
		}
	}
}

func TestIndexTable(t *testing.T) {
	digits := NewTable([]byte("0123456789"))

	if !digits.Has('7') || digits.Has('a') {
		t.Fatal("table membership is wrong")
	}
	if got := IndexTable([]byte("status 404"), digits); got != 7 {
		t.Errorf("IndexTable = %d, want 7", got)
	}
	if got := IndexTable([]byte("none"), digits); got != -1 {
		t.Errorf("IndexTable = %d, want -1", got)
	}
	if got := IndexTable([]byte("123"), nil); got != -1 {
		t.Errorf("IndexTable(nil table) = %d, want -1", got)
	}
}
