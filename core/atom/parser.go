// ABOUTME: Streaming Atom parser that extracts id, title, alternate link and updated per entry
// ABOUTME: Unknown elements are skipped with their whole subtree by depth counting

package atom

import (
	"bytes"
	"io"
	"strings"
	"time"

	xpp "github.com/mmcdole/goxpp"

	"newsreader-app/core/domain"
	coreerrors "newsreader-app/core/errors"
	"newsreader-app/core/interfaces"
	timeutil "newsreader-app/pkg/utils/time"
)

const (
	elemFeed    = "feed"
	elemEntry   = "entry"
	elemID      = "id"
	elemTitle   = "title"
	elemLink    = "link"
	elemUpdated = "updated"

	relAlternate = "alternate"
)

type state int

const (
	expectRoot state = iota
	inFeed
	inEntry
	done
)

// Parser extracts entries from Atom documents. A Parser holds no per-document
// state and is safe for concurrent use.
type Parser struct {
	strict            bool
	lenientTimestamps bool
	charsetReader     xpp.CharsetReader
	logger            interfaces.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithStrict toggles strict XML well-formedness checking. Default true.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLenientTimestamps makes an unparseable <updated> fall back to common
// non-RFC 3339 layouts and then to the epoch instead of failing the document.
// Every fallback is logged at warn level.
func WithLenientTimestamps(logger interfaces.Logger) Option {
	return func(p *Parser) {
		p.lenientTimestamps = true
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCharsetReader replaces the default x/net charset decoder
func WithCharsetReader(cr xpp.CharsetReader) Option {
	return func(p *Parser) {
		p.charsetReader = cr
	}
}

// NewParser creates a parser with the given options
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		strict: true,
		logger: interfaces.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads an Atom document from rc and returns its entries in document
// order. rc is always closed.
func (p *Parser) Parse(rc io.ReadCloser) ([]domain.Entry, error) {
	defer rc.Close()
	return p.ParseTokens(NewTokenizer(rc, p.strict, p.charsetReader))
}

// ParseBytes parses an in-memory document
func (p *Parser) ParseBytes(data []byte) ([]domain.Entry, error) {
	return p.Parse(io.NopCloser(bytes.NewReader(data)))
}

// ParseTokens runs the state machine over an arbitrary token stream
func (p *Parser) ParseTokens(tz Tokenizer) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	current := domain.NewEntry()
	st := expectRoot

	for st != done {
		tok, err := tz.Next()
		if err != nil {
			return nil, malformed(err)
		}

		switch tok.Kind {
		case EndOfDocument:
			return nil, malformed(io.ErrUnexpectedEOF)

		case EndElement:
			switch st {
			case inEntry:
				entries = append(entries, current)
				st = inFeed
			case inFeed:
				st = done
			}

		case StartElement:
			switch st {
			case expectRoot:
				if tok.Name != elemFeed {
					return nil, &coreerrors.ParseError{Kind: coreerrors.UnexpectedRoot, Element: tok.Name}
				}
				st = inFeed
			case inFeed:
				if tok.Name != elemEntry {
					if err := skip(tz); err != nil {
						return nil, err
					}
					continue
				}
				current = domain.NewEntry()
				st = inEntry
			case inEntry:
				if err := p.readField(tz, tok, &current); err != nil {
					return nil, err
				}
			}
		}
	}

	return entries, nil
}

// readField consumes one child of <entry>, through its end tag
func (p *Parser) readField(tz Tokenizer, tok Token, entry *domain.Entry) error {
	switch tok.Name {
	case elemID:
		text, err := readText(tz)
		if err != nil {
			return err
		}
		entry.ID = orDefault(text, domain.DefaultID)

	case elemTitle:
		text, err := readText(tz)
		if err != nil {
			return err
		}
		entry.Title = orDefault(text, domain.DefaultTitle)

	case elemLink:
		if rel, _ := tok.Attr("rel"); rel == relAlternate {
			if href, ok := tok.Attr("href"); ok && href != "" {
				entry.Link = href
			}
		}
		return skip(tz)

	case elemUpdated:
		text, err := readText(tz)
		if err != nil {
			return err
		}
		updated, err := p.parseUpdated(text)
		if err != nil {
			return err
		}
		entry.Updated = updated

	default:
		return skip(tz)
	}

	return nil
}

func (p *Parser) parseUpdated(text string) (time.Time, error) {
	t, err := timeutil.ParseRFC3339(text)
	if err == nil {
		return t, nil
	}

	if !p.lenientTimestamps {
		return time.Time{}, &coreerrors.ParseError{
			Kind:    coreerrors.BadTimestamp,
			Element: elemUpdated,
			Value:   strings.TrimSpace(text),
			Cause:   err,
		}
	}

	fallback := timeutil.ParseWithDefault(text, domain.Epoch())
	p.logger.Warn("Unparseable entry timestamp", map[string]interface{}{
		"value":    strings.TrimSpace(text),
		"error":    err.Error(),
		"fallback": fallback.Format(time.RFC3339),
	})
	return fallback, nil
}

// readText collects the character data of the current element through its
// end tag. Child elements are skipped.
func readText(tz Tokenizer) (string, error) {
	var sb strings.Builder
	for {
		tok, err := tz.Next()
		if err != nil {
			return "", malformed(err)
		}

		switch tok.Kind {
		case CharData:
			sb.WriteString(tok.Text)
		case StartElement:
			if err := skip(tz); err != nil {
				return "", err
			}
		case EndElement:
			return sb.String(), nil
		case EndOfDocument:
			return "", malformed(io.ErrUnexpectedEOF)
		}
	}
}

// skip consumes the subtree of an element whose start tag was just read
func skip(tz Tokenizer) error {
	depth := 1
	for depth > 0 {
		tok, err := tz.Next()
		if err != nil {
			return malformed(err)
		}

		switch tok.Kind {
		case StartElement:
			depth++
		case EndElement:
			depth--
		case EndOfDocument:
			return malformed(io.ErrUnexpectedEOF)
		}
	}
	return nil
}

func malformed(cause error) error {
	return &coreerrors.ParseError{Kind: coreerrors.Malformed, Cause: cause}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
