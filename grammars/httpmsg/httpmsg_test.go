package httpmsg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/coregx/copattern"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Message
	}{
		{
			name:  "request without headers",
			input: "GET /x HTTP/1.1\r\n\r\n",
			want: &Message{
				Major:   1,
				Minor:   1,
				Request: &Request{Method: "GET", Target: "/x"},
				Headers: map[string]string{},
			},
		},
		{
			name: "request with headers",
			input: "GET /hello.html HTTP/1.1\r\n" +
				"Host: localhost:8000\r\n" +
				"Connection: keep-alive\r\n" +
				"Accept: text/html\r\n" +
				"\r\n",
			want: &Message{
				Major:   1,
				Minor:   1,
				Request: &Request{Method: "GET", Target: "/hello.html"},
				Headers: map[string]string{
					"Host":       "localhost:8000",
					"Connection": "keep-alive",
					"Accept":     "text/html",
				},
			},
		},
		{
			name: "response with body",
			input: "HTTP/1.1 200 OK\r\n" +
				"Connection: Keep-Alive\r\n" +
				"Content-Type:text/html\r\n" +
				"Content-Length:      22\r\n" +
				"\r\n" +
				"<h1>Hello World!</h1>\n",
			want: &Message{
				Major:    1,
				Minor:    1,
				Response: &Response{StatusCode: "200", StatusMessage: "OK"},
				Headers: map[string]string{
					"Connection":     "Keep-Alive",
					"Content-Type":   "text/html",
					"Content-Length": "22",
				},
				Body: "<h1>Hello World!</h1>\n",
			},
		},
		{
			name:  "root target on HTTP/1.0",
			input: "GET / HTTP/1.0\r\n\r\n",
			want: &Message{
				Major:   1,
				Minor:   0,
				Request: &Request{Method: "GET", Target: "/"},
				Headers: map[string]string{},
			},
		},
		{
			name:  "empty status message",
			input: "HTTP/2.0 204 \r\n\r\n",
			want: &Message{
				Major:    2,
				Minor:    0,
				Response: &Response{StatusCode: "204", StatusMessage: ""},
				Headers:  map[string]string{},
			},
		},
		{
			name:  "repeated header keeps first value",
			input: "GET /a HTTP/1.1\r\nX: 1\r\nX: 2\r\n\r\n",
			want: &Message{
				Major:   1,
				Minor:   1,
				Request: &Request{Method: "GET", Target: "/a"},
				Headers: map[string]string{"X": "1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse([]byte(tt.input))
			if !ok {
				t.Fatalf("Parse(%q) did not match", tt.input)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreUnexported(Message{})); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	inputs := []string{
		"HTTP/1.0 2000 Invalid Status - Error intended\r\n\r\n",
		"HTTP/1.1 20x OK\r\n\r\n",
		"get / HTTP/1.1\r\n\r\n",
		"GET / HTTP/1.1\r\n",
		"GET / HTTP/x.1\r\n\r\n",
		"GET /\r\n\r\n",
		"",
	}

	for _, in := range inputs {
		if m, ok := Parse([]byte(in)); ok {
			t.Errorf("Parse(%q) = %+v, want no match", in, m)
		}
	}
}

// TestHooksSelectVariant checks that the response hook replaces the request
// variant prepared while the request line was being attempted.
func TestHooksSelectVariant(t *testing.T) {
	m := NewMessage()
	m.Request = &Request{Method: "stale"}

	if _, ok := Grammar().Match([]byte("HTTP/1.1 404 Not Found\r\n\r\n"), m); !ok {
		t.Fatal("no match")
	}
	if m.IsRequest() {
		t.Error("message still holds a request")
	}
	if m.Response == nil || m.Response.StatusCode != "404" || m.Response.StatusMessage != "Not Found" {
		t.Errorf("Response = %+v", m.Response)
	}
}

func TestCompileWithoutScanners(t *testing.T) {
	config := copattern.DefaultConfig()
	config.EnableScanners = false
	g, err := Compile(config)
	if err != nil {
		t.Fatal(err)
	}

	in := []byte("GET /hello.html HTTP/1.1\r\nHost: localhost:8000\r\n\r\n")
	slow, ok := ParseWith(g, in)
	if !ok {
		t.Fatal("no match without scanners")
	}
	fast, ok := Parse(in)
	if !ok {
		t.Fatal("no match with scanners")
	}
	if diff := cmp.Diff(fast, slow, cmpopts.IgnoreUnexported(Message{})); diff != "" {
		t.Errorf("results differ (-scanners +probing):\n%s", diff)
	}
	if g.Stats().ScannerSearches != 0 {
		t.Error("scanner used with EnableScanners=false")
	}
}

func TestPatternIsShared(t *testing.T) {
	if Pattern() != Grammar().Root() {
		t.Error("Pattern() differs from the shared grammar's root")
	}
	g, err := Compile(copattern.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if g.Root() != Pattern() {
		t.Error("Compile used a different root")
	}
}

func TestTrailingInputIsBody(t *testing.T) {
	in := []byte("GET / HTTP/1.1\r\n\r\nrest of input")
	end, ok := Grammar().Match(in, nil)
	if !ok || end != len(in) {
		t.Errorf("Match = (%d, %v), want (%d, true)", end, ok, len(in))
	}
}
