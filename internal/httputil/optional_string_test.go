package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalString_TriState(t *testing.T) {
	type payload struct {
		Icon OptionalString `json:"icon"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{
			name:        "field absent",
			body:        `{}`,
			wantPresent: false,
		},
		{
			name:        "field null",
			body:        `{"icon": null}`,
			wantPresent: true,
			wantValue:   nil,
		},
		{
			name:        "field set",
			body:        `{"icon": "📁"}`,
			wantPresent: true,
			wantValue:   strPtr("📁"),
		},
		{
			name:        "field empty string",
			body:        `{"icon": ""}`,
			wantPresent: true,
			wantValue:   strPtr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.body, err)
			}

			if p.Icon.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.Icon.Present, tt.wantPresent)
			}
			switch {
			case tt.wantValue == nil && p.Icon.Value != nil:
				t.Errorf("Value = %q, want nil", *p.Icon.Value)
			case tt.wantValue != nil && p.Icon.Value == nil:
				t.Errorf("Value = nil, want %q", *tt.wantValue)
			case tt.wantValue != nil && p.Icon.Value != nil && *p.Icon.Value != *tt.wantValue:
				t.Errorf("Value = %q, want %q", *p.Icon.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalString_RejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Error("Unmarshal(42) succeeded, want error")
	}
}

func strPtr(s string) *string {
	return &s
}
