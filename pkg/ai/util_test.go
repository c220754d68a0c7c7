package ai

import (
	"reflect"
	"testing"
)

type sampleOut struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sampleOut
	}{
		{
			name:  "standard json",
			input: `{"name": "test", "count": 2}`,
			want:  sampleOut{Name: "test", Count: 2},
		},
		{
			name:  "double encoded",
			input: `"{\"name\": \"test\", \"count\": 2}"`,
			want:  sampleOut{Name: "test", Count: 2},
		},
		{
			name:  "malformed but repairable",
			input: `{name: "test", count: 2}`,
			want:  sampleOut{Name: "test", Count: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sampleOut
			if err := UnmarshalFlexible(tt.input, &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected result: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalFlexibleUnrecoverable(t *testing.T) {
	var got sampleOut
	if err := UnmarshalFlexible("not json at all", &got); err == nil {
		t.Fatal("expected error for unparseable input")
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []sampleOut
	}{
		{
			name:  "bare array",
			input: `[{"name": "a", "count": 1}]`,
			want:  []sampleOut{{Name: "a", Count: 1}},
		},
		{
			name:  "array wrapped in prose",
			input: "Here is the result:\n[{\"name\": \"a\", \"count\": 1}]\nLet me know if you need more.",
			want:  []sampleOut{{Name: "a", Count: 1}},
		},
		{
			name:  "array in markdown fence",
			input: "```json\n[{\"name\": \"a\", \"count\": 1}, {\"name\": \"b\", \"count\": 2}]\n```",
			want:  []sampleOut{{Name: "a", Count: 1}, {Name: "b", Count: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []sampleOut
			if err := ExtractJSONArray(tt.input, &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected result: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractJSONArrayNotAnArray(t *testing.T) {
	var got []sampleOut
	if err := ExtractJSONArray("the model refused to answer", &got); err == nil {
		t.Fatal("expected error for response without an array")
	}
}
