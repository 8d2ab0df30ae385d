package composer

import "testing"

func TestConvertConstraint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"caret", "^1.2.0", ">= 1.2.0"},
		{"caret short", "^7.2", ">= 7.2"},
		{"caret spaced", "^ 1.2", ">= 1.2"},
		{"gte unspaced", ">=1.0", ">= 1.0"},
		{"gte spaced", ">= 1.0", ">= 1.0"},
		{"lt", "<2.0", "< 2.0"},
		{"exact op", "=1.4.2", "= 1.4.2"},
		{"tilde", "~2.1", "~ 2.1"},
		{"bare version", "1.0", "1.0"},
		{"bare with range tail", "1.0 || 2.0", "1.0 || 2.0"},
		{"wildcard", "*", "*"},
		{"dev branch", "dev-master", "dev-master"},
		{"empty", "", ""},
		{"surrounding space", "  ^3.0  ", ">= 3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertConstraint(tt.input); got != tt.want {
				t.Errorf("ConvertConstraint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Caret ranges only keep their lower bound; recipes generated so far rely on it.
func TestConvertConstraintDropsCaretUpperBound(t *testing.T) {
	got := ConvertConstraint("^1.0")
	if got != ">= 1.0" {
		t.Errorf("ConvertConstraint(^1.0) = %q, want %q", got, ">= 1.0")
	}
}
