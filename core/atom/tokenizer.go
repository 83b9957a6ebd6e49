// ABOUTME: Pull tokenizer abstraction the Atom parser is driven by
// ABOUTME: Adapts goxpp's XMLPullParser and decodes non-UTF-8 charsets

package atom

import (
	"encoding/xml"
	"io"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// TokenKind identifies what a Token carries
type TokenKind int

const (
	StartElement TokenKind = iota + 1
	EndElement
	CharData
	EndOfDocument
)

// Token is one event of the pull stream
type Token struct {
	Kind TokenKind

	// Name is the element's local name; namespaces are ignored
	Name string

	Text  string
	Attrs []xml.Attr
}

// Attr returns the value of the attribute with the given local name
func (t Token) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Tokenizer yields the token stream of one document. Comments, processing
// instructions and directives are not reported.
type Tokenizer interface {
	Next() (Token, error)
}

// NewTokenizer returns a goxpp-backed tokenizer reading r
func NewTokenizer(r io.Reader, strict bool, cr xpp.CharsetReader) Tokenizer {
	if cr == nil {
		cr = charset.NewReaderLabel
	}
	return &pullTokenizer{p: xpp.NewXMLPullParser(r, strict, cr)}
}

type pullTokenizer struct {
	p *xpp.XMLPullParser
}

func (t *pullTokenizer) Next() (Token, error) {
	for {
		event, err := t.p.Next()
		if err != nil {
			return Token{}, err
		}

		switch event {
		case xpp.StartTag:
			return Token{Kind: StartElement, Name: t.p.Name, Attrs: t.p.Attrs}, nil
		case xpp.EndTag:
			return Token{Kind: EndElement, Name: t.p.Name}, nil
		case xpp.Text:
			return Token{Kind: CharData, Text: t.p.Text}, nil
		case xpp.EndDocument:
			return Token{Kind: EndOfDocument}, nil
		}
	}
}
