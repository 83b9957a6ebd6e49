package atom

import (
	"io"
	"sync"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Error(string, map[string]interface{}) {}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

// scriptedTokenizer replays tokens and then fails with err
type scriptedTokenizer struct {
	tokens []Token
	err    error
}

func (s *scriptedTokenizer) Next() (Token, error) {
	if len(s.tokens) == 0 {
		return Token{}, s.err
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, nil
}
