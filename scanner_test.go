package copattern

import (
	"testing"
)

// TestScannersAgreeWithProbing runs each Until both with and without byte
// scanners and requires identical results.
func TestScannersAgreeWithProbing(t *testing.T) {
	inners := []struct {
		name    string
		pattern Pattern[byte]
	}{
		{"byte", Lit(":")},
		{"crlf", Lit("\r\n")},
		{"long literal", Lit("boundary--")},
		{"set", Set(" \t")},
		{"empty set", Set("")},
		{"choice", Alt(Lit("\r\n"), Lit("\n"))},
		{"nested choice", Alt(Lit("abcd"), Alt(Lit("bc"), Lit("d")))},
		{"overlapping choice", Alt(Lit("aab"), Lit("ab"))},
	}
	inputs := []string{
		"",
		":",
		"abc:def",
		"no separator here at all",
		"Host: localhost\r\n",
		"line one\nline two\r\n",
		"xxxxxxxxxxxxxxxx--boundary--tail",
		"a\tb c",
		"zzabcd",
		"zzzzzzzzzzzzzzzzbcd",
		"aaab",
		"\r\r\r\n",
	}

	for _, inner := range inners {
		fast, err := Compile(Until(inner.pattern), nil)
		if err != nil {
			t.Fatal(err)
		}
		slow, err := CompileWithConfig(Until(inner.pattern), nil, Config{EnableScanners: false})
		if err != nil {
			t.Fatal(err)
		}

		for _, in := range inputs {
			for begin := 0; begin <= len(in); begin++ {
				fastEnd, fastOK := fast.MatchAt([]byte(in), begin, len(in), nil)
				slowEnd, slowOK := slow.MatchAt([]byte(in), begin, len(in), nil)
				if fastEnd != slowEnd || fastOK != slowOK {
					t.Errorf("%s on %q at %d: scanner (%d, %v), probing (%d, %v)",
						inner.name, in, begin, fastEnd, fastOK, slowEnd, slowOK)
				}
			}
		}
		if slow.Stats().ScannerSearches != 0 {
			t.Errorf("%s: scanners ran with EnableScanners=false", inner.name)
		}
	}
}

func TestScannerSelection(t *testing.T) {
	tests := []struct {
		name  string
		inner Pattern[byte]
		want  string
	}{
		{"single byte", Lit(":"), "byte"},
		{"literal", Lit("\r\n"), "literal"},
		{"empty literal", Lit(""), "none"},
		{"set", Set("0123456789"), "table"},
		{"choice", Alt(Lit("a"), Lit("b")), "aho-corasick"},
		{"choice with empty literal", Alt(Lit("a"), Lit("")), "none"},
		{"choice with set", Alt(Lit("a"), Set("bc")), "none"},
		{"tagged literal", Tagged(Lit(":"), tagX), "none"},
		{"sequence", Seq(Lit("a"), Lit("b")), "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := "none"
			switch newScanner(tt.inner).(type) {
			case byteScanner:
				got = "byte"
			case literalScanner:
				got = "literal"
			case tableScanner:
				got = "table"
			case *acScanner:
				got = "aho-corasick"
			}
			if got != tt.want {
				t.Errorf("newScanner(%s) = %s, want %s", tt.inner, got, tt.want)
			}
		})
	}
}

func TestAhoCorasickThreshold(t *testing.T) {
	p := Until(Alt(Lit(";"), Lit("&")))
	in := []byte("a=1&b=2")

	config := DefaultConfig()
	config.MinAhoCorasickLiterals = 3
	g, err := CompileWithConfig(p, nil, config)
	if err != nil {
		t.Fatal(err)
	}
	if end, ok := g.Match(in, nil); !ok || end != 3 {
		t.Fatalf("Match = (%d, %v), want (3, true)", end, ok)
	}
	if got := g.Stats().ScannerSearches; got != 0 {
		t.Errorf("ScannerSearches = %d, want 0 below the threshold", got)
	}

	g = MustCompile(p, nil)
	if end, ok := g.Match(in, nil); !ok || end != 3 {
		t.Fatalf("Match = (%d, %v), want (3, true)", end, ok)
	}
	if got := g.Stats().ScannerSearches; got != 1 {
		t.Errorf("ScannerSearches = %d, want 1", got)
	}
}
