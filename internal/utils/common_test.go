package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{" , ,", []string{}},
		{"01/01/2024", []string{"01/01/2024"}},
	}
	for _, tt := range tests {
		got := SplitAndTrim(tt.in, ",")
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitAndTrim(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"Six_Month":    "six-month",
		" six month ":  "six-month",
		"ONE-MONTH":    "one-month",
		"complete":     "complete",
		"":             "",
		"three  month": "three-month",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"#":                      "",
		"#/tasks/0/start_date":   "tasks[0].start_date",
		"/tasks/12":              "tasks[12]",
		"#/name":                 "name",
		"#/a~1b/c~0d":            "a/b.c~d",
	}
	for in, want := range tests {
		if got := JSONPointerToPath(in); got != want {
			t.Errorf("JSONPointerToPath(%q): got %q, want %q", in, got, want)
		}
	}
}
