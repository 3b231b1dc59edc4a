package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the tokenizer behavior.
type Options struct {
	// Delimiter is the field separator. Default: ','
	Delimiter rune
	// Quoting enables Quote and Backslash tokens. When false, both characters
	// are ordinary text. Default: true
	Quoting bool
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		Quoting:   true,
	}
}

// NewTokenizer creates a line tokenizer with the default comma delimiter.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a line tokenizer with custom options.
//
// Matchers are tried in order:
// 1. Delimiter
// 2. Double quote and backslash (quoted mode only)
// 3. Text (any run of non-structural characters)
//
// Newlines are not structural: the line source has already removed the
// terminator, and a stray CR stays part of the text.
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	matchers := []tokenizer.Matcher{
		tokenizer.StringMatcherFunc(TokenDelimiter, string(opts.Delimiter)),
	}
	if opts.Quoting {
		matchers = append(matchers,
			tokenizer.StringMatcherFunc(TokenQuote, `"`),
			tokenizer.StringMatcherFunc(TokenBackslash, `\`),
		)
	}
	matchers = append(matchers, TextMatcher(opts))

	return tokenizer.NewTokenizerWithoutWhitespace(matchers...)
}

// NewLineTokenizer creates a tokenizer initialised with a single line.
func NewLineTokenizer(line string, opts Options) tokenizer.Tokenizer {
	tok := NewTokenizerWithOptions(opts)
	tok.InitializeFromStream(tokenizer.NewStream(line))
	return tok
}

// TextMatcher creates a matcher for text runs. A run stops at the delimiter
// and, in quoted mode, at a double quote or a backslash.
//
// Performance: Uses ByteStream for fast ASCII scanning when available.
func TextMatcher(opts Options) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if opts.Delimiter < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return textMatcherByte(byteStream, byte(opts.Delimiter), opts.Quoting)
			}
		}
		return textMatcherRune(stream, opts.Delimiter, opts.Quoting)
	}
}

func isStructuralByte(b, delim byte, quoting bool) bool {
	if b == delim {
		return true
	}
	return quoting && (b == '"' || b == '\\')
}

func isStructuralRune(r, delim rune, quoting bool) bool {
	if r == delim {
		return true
	}
	return quoting && (r == '"' || r == '\\')
}

// textMatcherByte uses ByteStream for optimal performance.
func textMatcherByte(stream tokenizer.ByteStream, delim byte, quoting bool) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || isStructuralByte(b, delim, quoting) {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenText, []rune(string(value)))
}

// textMatcherRune is the fallback rune-based implementation.
func textMatcherRune(stream tokenizer.Stream, delim rune, quoting bool) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || isStructuralRune(r, delim, quoting) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenText, value)
}
