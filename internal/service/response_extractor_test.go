package service

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want any
	}{
		{
			name: "json fence",
			text: "Sure, here you go:\n```json\n{\"currency\": \"USD\"}\n```\nAnything else?",
			key:  "currency",
			want: "USD",
		},
		{
			name: "json fence without newline",
			text: "```json {\"currency\": \"EUR\"}```",
			key:  "currency",
			want: "EUR",
		},
		{
			name: "untagged fence",
			text: "```\n{\"warranty\": \"2 years\"}\n```",
			key:  "warranty",
			want: "2 years",
		},
		{
			name: "bare object in prose",
			text: "The result is {\"paymentTerms\": \"Net 45\"} as requested.",
			key:  "paymentTerms",
			want: "Net 45",
		},
		{
			name: "numbers stay exact",
			text: `{"totalBudget": 50000.50}`,
			key:  "totalBudget",
			want: json.Number("50000.50"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ExtractJSON(tt.text)
			if err != nil {
				t.Fatalf("ExtractJSON() error = %v", err)
			}
			if got := obj[tt.key]; got != tt.want {
				t.Errorf("obj[%q] = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no json", "I could not process this request."},
		{"empty", ""},
		{"malformed object", "```json\n{\"items\": [1, 2,}\n```"},
		{"array fence", "```json\n[1, 2, 3]\n```"},
		{"two objects", `{"a": 1} and then {"b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.text)
			if !errors.Is(err, ErrExtractionFailed) {
				t.Fatalf("ExtractJSON() error = %v, want ErrExtractionFailed", err)
			}
		})
	}
}

func TestExtractJSONInto(t *testing.T) {
	var v struct {
		Notes string `json:"notes"`
	}
	if err := ExtractJSONInto("```json\n{\"notes\": \"ok\"}\n```", &v); err != nil {
		t.Fatalf("ExtractJSONInto() error = %v", err)
	}
	if v.Notes != "ok" {
		t.Errorf("Notes = %q, want ok", v.Notes)
	}

	if err := ExtractJSONInto("nothing here", &v); !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("ExtractJSONInto() error = %v, want ErrExtractionFailed", err)
	}
}
