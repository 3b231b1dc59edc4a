//go:build go1.18
// +build go1.18

package fields

import (
	"strings"
	"testing"
)

// FuzzSplitCountAgreement checks that CountSeparators and Split agree on every
// boundary and that Split loses no characters.
// Run with: go test -fuzz=FuzzSplitCountAgreement -fuzztime=30s ./internal/fields
func FuzzSplitCountAgreement(f *testing.F) {
	seeds := []string{
		"",
		",",
		`"`,
		`\`,
		`\\,`,
		"a,b,c",
		`"a,b",c`,
		`"a\",b",c`,
		`a\,b`,
		`"unterminated,x`,
		`,,"",\"`,
		"1\xff,a",
		"\"\xfe,\"\xc3,",
	}

	for _, s := range seeds {
		f.Add(s, true)
		f.Add(s, false)
	}

	f.Fuzz(func(t *testing.T, line string, quoting bool) {
		opts := Options{Delimiter: ',', Quoting: quoting}

		got := Split(line, opts)
		if n := CountSeparators(line, opts); n != len(got)-1 {
			t.Fatalf("CountSeparators(%q) = %d, len(Split)-1 = %d", line, n, len(got)-1)
		}
		if joined := strings.Join(got, ","); joined != line {
			t.Fatalf("Split(%q) rejoins to %q", line, joined)
		}
	})
}
