package ingest

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "space runs collapsed",
			in:   "cell   biology \t basics",
			want: "cell biology basics",
		},
		{
			name: "blank lines collapsed",
			in:   "first\n\n\nsecond",
			want: "first\nsecond",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  \n notes \n ",
			want: "notes",
		},
		{
			name: "empty input",
			in:   "   \n\t  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
