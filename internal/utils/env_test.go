package utils

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("FOCUSGROVE_TEST_STR", "from-env")
	if got := GetEnv("FOCUSGROVE_TEST_STR", "fallback", nil); got != "from-env" {
		t.Errorf("set variable = %q, want from-env", got)
	}
	if got := GetEnv("FOCUSGROVE_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Errorf("missing variable = %q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("FOCUSGROVE_TEST_INT", "42")
	t.Setenv("FOCUSGROVE_TEST_BAD_INT", "forty-two")

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"set", "FOCUSGROVE_TEST_INT", 42},
		{"missing", "FOCUSGROVE_TEST_INT_MISSING", 7},
		{"unparsable", "FOCUSGROVE_TEST_BAD_INT", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetEnvAsInt(tt.key, 7, nil); got != tt.want {
				t.Errorf("GetEnvAsInt(%s) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}
