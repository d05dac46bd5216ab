package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanText(t *testing.T, src string) ([]Token, *Sink) {
	t.Helper()
	sink := NewSink()
	s := NewSource("test.c", []byte(src))
	scanner := NewScanner(s, sink, StandardC23)
	return scanner.Scan(), sink
}

func TestScannerEmptyFileYieldsOneEOF(t *testing.T) {
	tokens, sink := scanText(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokEOF, tokens[0].Kind)
	assert.False(t, sink.HasErrors())
}

func TestScannerUnterminatedStringAtEOF(t *testing.T) {
	_, sink := scanText(t, `"hello`)
	assert.True(t, sink.HasErrors())
}

func TestScannerIsDeterministic(t *testing.T) {
	const src = `int add(int a, int b) { return a + b; }`
	first, _ := scanText(t, src)
	second, _ := scanText(t, src)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Kind, second[i].Kind)
		assert.Equal(t, first[i].String(), second[i].String())
	}
}

func TestScannerRoundTripsTokenText(t *testing.T) {
	const src = `x = 3 + 4;`
	tokens, sink := scanText(t, src)
	require.False(t, sink.HasErrors())
	var rendered string
	for _, tok := range tokens {
		if tok.Kind == TokEOF {
			continue
		}
		if rendered != "" {
			rendered += " "
		}
		rendered += tok.String()
	}
	assert.Equal(t, "x = 3 + 4 ;", rendered)
}

func TestScannerAcceptsUnicodeIdentifier(t *testing.T) {
	tokens, sink := scanText(t, `int café = 1;`)
	require.False(t, sink.HasErrors())
	var names []string
	for _, tok := range tokens {
		if tok.Kind == TokIdentifier {
			names = append(names, tok.Text)
		}
	}
	assert.Contains(t, names, "café")
}
