package plan

import (
	"encoding/json"
	"testing"
)

func TestNormalizeDeps(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"blanks removed", []string{"", "  ", "a"}, []string{"a"}},
		{"dedupe keeps first-seen order", []string{"b", "a", "b", "a"}, []string{"b", "a"}},
		{"trims whitespace", []string{" a ", "a"}, []string{"a"}},
		{"all blank collapses to nil", []string{"", " "}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDeps(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeDeps(%v) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeDeps(%v)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDependsOn_UnmarshalLegacyForms(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{"null", `null`, nil},
		{"legacy single string", `"t1"`, []string{"t1"}},
		{"legacy empty string", `""`, nil},
		{"list", `["t1","t2"]`, []string{"t1", "t2"}},
		{"list with junk", `["t1","","t1"]`, []string{"t1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DependsOn
			if err := json.Unmarshal([]byte(tt.json), &d); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.json, err)
			}
			if len(d) != len(tt.want) {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tt.json, d, tt.want)
			}
			for i := range d {
				if d[i] != tt.want[i] {
					t.Errorf("Unmarshal(%s)[%d] = %q, want %q", tt.json, i, d[i], tt.want[i])
				}
			}
		})
	}
}

func TestDependsOn_MarshalEmptyAsNull(t *testing.T) {
	data, err := json.Marshal(DependsOn(nil))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %s, want null", data)
	}

	data, err = json.Marshal(DependsOn{"a", "b"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf("Marshal() = %s, want [\"a\",\"b\"]", data)
	}
}

func TestNormalizeHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#A7C7E7", "#A7C7E7"},
		{"a7c7e7", "#A7C7E7"},
		{" #ffd1dc ", "#FFD1DC"},
		{"", ""},
		{"   ", ""},
		{"#fff", ""},
		{"#GGGGGG", ""},
		{"red", ""},
		{"#A7C7E7FF", ""},
	}
	for _, tt := range tests {
		if got := NormalizeHexColor(tt.in); got != tt.want {
			t.Errorf("NormalizeHexColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
