package ai

import (
	"errors"
	"testing"
)

func TestParseRecognition(t *testing.T) {
	cases := []struct {
		name     string
		reply    string
		wantName string
		wantErr  bool
	}{
		{
			name:     "bare object",
			reply:    `{"name":"Brake Pad","description":"Ceramic front brake pad."}`,
			wantName: "Brake Pad",
		},
		{
			name:     "wrapped in prose",
			reply:    "Sure! Here is the item:\n{\"name\":\"Oil Filter\",\"description\":\"Spin-on filter.\"}\nHope that helps.",
			wantName: "Oil Filter",
		},
		{
			name:     "markdown fence",
			reply:    "```json\n{\"name\":\"Spark Plug\",\"description\":\"Iridium plug.\"}\n```",
			wantName: "Spark Plug",
		},
		{
			name:    "no object",
			reply:   "I could not identify the product.",
			wantErr: true,
		},
		{
			name:    "malformed object",
			reply:   `{"name": "Brake Pad"`,
			wantErr: true,
		},
		{
			name:    "missing name",
			reply:   `{"description":"something"}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := parseRecognition(tc.reply)
			if tc.wantErr {
				if !errors.Is(err, ErrUnparsableReply) {
					t.Fatalf("expected ErrUnparsableReply, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Name != tc.wantName {
				t.Errorf("name = %q, want %q", rec.Name, tc.wantName)
			}
		})
	}
}

func TestDataURIPrefixStripping(t *testing.T) {
	in := "data:image/png;base64,AAAA"
	got := dataURIPrefix.ReplaceAllString(in, "")
	if got != "AAAA" {
		t.Errorf("stripped = %q, want %q", got, "AAAA")
	}

	bare := "AAAA"
	if got := dataURIPrefix.ReplaceAllString(bare, ""); got != bare {
		t.Errorf("bare input changed: %q", got)
	}
}
