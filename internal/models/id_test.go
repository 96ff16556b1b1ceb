package models

import (
	"encoding/json"
	"testing"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    FlexID
		wantErr bool
	}{
		{"number", `{"worker_id": 42}`, "42", false},
		{"string", `{"worker_id": "42"}`, "42", false},
		{"padded string", `{"worker_id": " 7 "}`, "7", false},
		{"null", `{"worker_id": null}`, "", false},
		{"missing", `{}`, "", false},
		{"text", `{"worker_id": "abc"}`, "abc", false},
		{"bool", `{"worker_id": true}`, "", true},
		{"object", `{"worker_id": {}}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req WorkerIDRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if !tt.wantErr && req.WorkerID != tt.want {
				t.Errorf("got %q, want %q", req.WorkerID, tt.want)
			}
		})
	}
}

func TestFlexIDInt64(t *testing.T) {
	tests := []struct {
		in   FlexID
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"9000", 9000, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"1.5", 0, false},
		{"12abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.in.Int64()
		if got != tt.want || ok != tt.ok {
			t.Errorf("FlexID(%q).Int64() = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProfileUsesFullNameKey(t *testing.T) {
	w := &Worker{ID: 1, FullName: "Ada Lovelace", Email: "ada@example.com", PasswordHash: "secret"}

	raw, err := json.Marshal(w.Profile())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out["fullName"] != "Ada Lovelace" {
		t.Errorf("fullName = %v", out["fullName"])
	}
	if _, ok := out["full_name"]; ok {
		t.Error("full_name must not appear in the profile")
	}
	if _, ok := out["password"]; ok {
		t.Error("password must not appear in the profile")
	}
}
