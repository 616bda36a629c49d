package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "Answer_ID,Answer_Text"},
		{name: "empty content", content: ""},
		{name: "long content", content: "COLOR_RED,Red,COLOR,80,20,50,10,90\nCOLOR_BLUE,Blue,COLOR,20,80,50,10,90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent([]byte(tt.content))
			id2 := IDFromContent([]byte(tt.content))

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent([]byte("catalog one"))
	id2 := IDFromContent([]byte("catalog two"))

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestParseAlignmentType(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    AlignmentType
		wantErr bool
	}{
		{name: "upper case", raw: "SYNERGY", want: AlignmentSynergy},
		{name: "lower case normalized", raw: "harmony", want: AlignmentHarmony},
		{name: "mixed case with spaces", raw: "  Polarity ", want: AlignmentPolarity},
		{name: "resonance", raw: "RESONANCE", want: AlignmentResonance},
		{name: "solo", raw: "solo", want: AlignmentSolo},
		{name: "unknown type", raw: "FRICTION", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlignmentType(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAlignmentType(%q) error = nil, want error", tt.raw)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseAlignmentType(%q) error = %v, want nil", tt.raw, err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseAlignmentType(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAlignmentType_OrderSensitive(t *testing.T) {
	tests := []struct {
		typ  AlignmentType
		want bool
	}{
		{AlignmentSynergy, true},
		{AlignmentHarmony, true},
		{AlignmentResonance, false},
		{AlignmentPolarity, false},
		{AlignmentSolo, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.OrderSensitive(); got != tt.want {
				t.Errorf("%s.OrderSensitive() = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestAlignment_HasAnyCategory(t *testing.T) {
	alignment := &Alignment{
		ID:         "POLARITY_RED_BLUE",
		Categories: []string{"COLOR", "NAV"},
	}

	if !alignment.HasAnyCategory(map[string]struct{}{"COLOR": {}}) {
		t.Errorf("HasAnyCategory() = false for overlapping set, want true")
	}
	if alignment.HasAnyCategory(map[string]struct{}{"SCENT": {}}) {
		t.Errorf("HasAnyCategory() = true for disjoint set, want false")
	}
	if alignment.HasAnyCategory(nil) {
		t.Errorf("HasAnyCategory() = true for empty set, want false")
	}
}
