// Package httpmsg matches HTTP/1.x messages with a copattern grammar.
//
// The grammar recognizes a request line or a status line, up to 100 header
// fields, the blank line and the body:
//
//	message  = (request | response) header{0,100} "\r\n" body
//	request  = upper{1,100} " " until(" ") " " version "\r\n"
//	response = version " " digit{3} " " until("\r\n") "\r\n"
//	version  = "HTTP/" digit "." digit
//	header   = until(":") ":" " "{0,100} until("\r\n") "\r\n"
//	body     = rest
//
// It is a structural matcher, not a validating HTTP parser: header names
// are whatever precedes the first colon, and the body is the remaining
// input.
package httpmsg

import (
	"github.com/coregx/copattern"
)

// Tags of the HTTP grammar.
const (
	TagMajor copattern.Tag = iota + 1
	TagMinor
	TagMethod
	TagTarget
	TagRequest
	TagStatusCode
	TagStatusMessage
	TagResponse
	TagHeaderName
	TagHeaderValue
	TagHeader
	TagBody
)

// Request holds the fields of a request line.
type Request struct {
	Method string `json:"method" yaml:"method"`
	Target string `json:"target" yaml:"target"`
}

// Response holds the fields of a status line.
type Response struct {
	StatusCode    string `json:"status_code" yaml:"status_code"`
	StatusMessage string `json:"status_message" yaml:"status_message"`
}

// Message is the visitor that collects a matched HTTP message. Exactly one
// of Request and Response is set after a successful match.
type Message struct {
	Major    int               `json:"major" yaml:"major"`
	Minor    int               `json:"minor" yaml:"minor"`
	Request  *Request          `json:"request,omitempty" yaml:"request,omitempty"`
	Response *Response         `json:"response,omitempty" yaml:"response,omitempty"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
	Body     string            `json:"body" yaml:"body"`

	headerName  string
	headerValue string
}

// NewMessage returns an empty Message ready to be used as a visitor.
func NewMessage() *Message {
	return &Message{Headers: make(map[string]string)}
}

// IsRequest reports whether the start line was a request line.
func (m *Message) IsRequest() bool { return m.Request != nil }

// Visit implements copattern.Visitor.
//
// A header field that repeats a name already seen is ignored; the first
// occurrence wins.
func (m *Message) Visit(tag copattern.Tag, in []byte, begin, end int) {
	span := in[begin:end]
	switch tag {
	case TagMajor:
		m.Major = int(span[0] - '0')
	case TagMinor:
		m.Minor = int(span[0] - '0')
	case TagMethod:
		if m.Request != nil {
			m.Request.Method = string(span)
		}
	case TagTarget:
		if m.Request != nil {
			m.Request.Target = string(span)
		}
	case TagStatusCode:
		if m.Response != nil {
			m.Response.StatusCode = string(span)
		}
	case TagStatusMessage:
		if m.Response != nil {
			m.Response.StatusMessage = string(span)
		}
	case TagHeaderName:
		m.headerName = string(span)
	case TagHeaderValue:
		m.headerValue = string(span)
	case TagHeader:
		if m.Headers == nil {
			m.Headers = make(map[string]string)
		}
		if _, dup := m.Headers[m.headerName]; !dup {
			m.Headers[m.headerName] = m.headerValue
		}
		m.headerName, m.headerValue = "", ""
	case TagBody:
		m.Body = string(span)
	}
}

var (
	upper = copattern.Predicate(func(c byte) bool { return c >= 'A' && c <= 'Z' })
	digit = copattern.Set("0123456789")

	version = copattern.Seq(
		copattern.Lit("HTTP/"),
		copattern.Tagged(digit, TagMajor),
		copattern.Lit("."),
		copattern.Tagged(digit, TagMinor),
	)

	requestLine = copattern.Tagged(copattern.Seq(
		copattern.Tagged(copattern.Repeat(upper, 1, 100), TagMethod),
		copattern.Lit(" "),
		copattern.Tagged(copattern.Until(copattern.Lit(" ")), TagTarget),
		copattern.Lit(" "),
		version,
		copattern.Lit("\r\n"),
	), TagRequest)

	responseLine = copattern.Tagged(copattern.Seq(
		version,
		copattern.Lit(" "),
		copattern.Tagged(copattern.Exactly(digit, 3), TagStatusCode),
		copattern.Lit(" "),
		copattern.Tagged(copattern.Until(copattern.Lit("\r\n")), TagStatusMessage),
		copattern.Lit("\r\n"),
	), TagResponse)

	header = copattern.Tagged(copattern.Seq(
		copattern.Tagged(copattern.Until(copattern.Lit(":")), TagHeaderName),
		copattern.Lit(":"),
		copattern.Repeat(copattern.Lit(" "), 0, 100),
		copattern.Tagged(copattern.Until(copattern.Lit("\r\n")), TagHeaderValue),
		copattern.Lit("\r\n"),
	), TagHeader)

	message = copattern.Seq(
		copattern.Alt(requestLine, responseLine),
		copattern.Repeat(header, 0, 100),
		copattern.Lit("\r\n"),
		copattern.Tagged(copattern.ScanToEnd[byte](), TagBody),
	)
)

// Pattern returns the root pattern of the HTTP message grammar.
func Pattern() copattern.Pattern[byte] { return message }

// Hooks select the start-line variant of a Message before the fields of
// that line are visited.
func Hooks() copattern.Hooks[byte] {
	return copattern.Hooks[byte]{
		TagRequest: func(_ *copattern.TaggedPattern[byte], _ []byte, _, _ int, v copattern.Visitor[byte]) bool {
			if m, ok := v.(*Message); ok {
				m.Request, m.Response = &Request{}, nil
			}
			return true
		},
		TagResponse: func(_ *copattern.TaggedPattern[byte], _ []byte, _, _ int, v copattern.Visitor[byte]) bool {
			if m, ok := v.(*Message); ok {
				m.Request, m.Response = nil, &Response{}
			}
			return true
		},
	}
}

// Compile returns a Grammar for HTTP messages using config.
func Compile(config copattern.Config) (*copattern.Grammar[byte], error) {
	return copattern.CompileWithConfig(message, Hooks(), config)
}

var grammar = copattern.MustCompile(message, Hooks())

// Grammar returns the shared HTTP grammar compiled with the default
// configuration.
func Grammar() *copattern.Grammar[byte] { return grammar }

// Parse matches b as an HTTP message. It reports false if b does not match.
func Parse(b []byte) (*Message, bool) {
	return ParseWith(grammar, b)
}

// ParseWith is Parse using g, which must have been built by Compile.
func ParseWith(g *copattern.Grammar[byte], b []byte) (*Message, bool) {
	m := NewMessage()
	if _, ok := g.Match(b, m); !ok {
		return nil, false
	}
	return m, true
}
