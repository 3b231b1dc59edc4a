package dialect

import (
	"testing"
)

func TestSnifferDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		expected rune
	}{
		{
			name:     "comma delimited",
			sample:   "a,b,c\n1,2,3\n4,5,6",
			expected: ',',
		},
		{
			name:     "tab delimited",
			sample:   "a\tb\tc\n1\t2\t3\n4\t5\t6",
			expected: '\t',
		},
		{
			name:     "semicolon delimited",
			sample:   "a;b;c\n1;2;3\n4;5;6",
			expected: ';',
		},
		{
			name:     "pipe delimited",
			sample:   "a|b|c\n1|2|3\n4|5|6",
			expected: '|',
		},
		{
			name:     "empty sample defaults to comma",
			sample:   "",
			expected: ',',
		},
		{
			name:     "no delimiter at all defaults to comma",
			sample:   "abc\ndef",
			expected: ',',
		},
		{
			name:     "mixed but more commas",
			sample:   "a,b,c\n1,2,3\n4;5;6",
			expected: ',',
		},
		{
			name:     "quoted commas ignored",
			sample:   "\"a,b\";c\n1;2",
			expected: ';',
		},
		{
			name:     "escaped commas ignored",
			sample:   "a\\,b|c\n1|2",
			expected: '|',
		},
		{
			name:     "tie goes to earlier candidate",
			sample:   "a,b;c\n1,2;3",
			expected: ',',
		},
		{
			name:     "blank and CRLF lines",
			sample:   "a;b\r\n\r\n1;2\r\n",
			expected: ';',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSniffer(tt.sample).DetectDelimiter()
			if got != tt.expected {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSnifferHasHeader(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		expected bool
	}{
		{
			name:     "clear header with identifiers",
			sample:   "name,age,email\nJohn,30,john@example.com",
			expected: true,
		},
		{
			name:     "numeric header looks like data",
			sample:   "123,456,789\n111,222,333",
			expected: false,
		},
		{
			name:     "snake_case header",
			sample:   "first_name,last_name,email_address\nJohn,Doe,john@example.com",
			expected: true,
		},
		{
			name:     "Title Case header",
			sample:   "First Name,Last Name,Email\nJohn,Doe,john@example.com",
			expected: true,
		},
		{
			name:     "single line",
			sample:   "a,b,c",
			expected: false,
		},
		{
			name:     "timestamps look like data",
			sample:   "00:00:01,ok,1\n00:00:02,ok,2",
			expected: false,
		},
		{
			name:     "quoted header names",
			sample:   "\"time\",\"value\"\n00:00:01,4",
			expected: true,
		},
		{
			name:     "tab separated header",
			sample:   "id\tname\n1\tJohn",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSniffer(tt.sample).HasHeader()
			if got != tt.expected {
				t.Errorf("HasHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSnifferAnalyzeCaching(t *testing.T) {
	sniffer := NewSniffer("a,b,c\n1,2,3")

	delim1 := sniffer.DetectDelimiter()
	header1 := sniffer.HasHeader()
	delim2 := sniffer.DetectDelimiter()
	header2 := sniffer.HasHeader()

	if delim1 != delim2 {
		t.Error("delimiter results should be consistent")
	}
	if header1 != header2 {
		t.Error("header results should be consistent")
	}
}
