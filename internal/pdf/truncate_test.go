package pdf

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short unchanged", "Client meeting", 70, "Client meeting"},
		{"exact length unchanged", "abcdefghij", 10, "abcdefghij"},
		{"over limit", "abcdefghijk", 10, "abcdefg..."},
		{"multibyte kept whole", "Réunion détaillée avec l'équipe", 10, "Réunion..."},
		{"cjk description", "プロジェクト設定とレビュー", 10, "プロジェクト設..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.max)
			}
		})
	}
}
