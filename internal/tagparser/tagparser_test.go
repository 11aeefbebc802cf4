package tagparser

import (
	"testing"
)

func TestParseGraphQLTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want ParsedTag
		str  string
	}{
		{
			name: "simple field",
			tag:  "name",
			want: ParsedTag{FieldName: "name"},
			str:  "name",
		},
		{
			name: "field with arguments",
			tag:  "height(unit: METER)",
			want: ParsedTag{FieldName: "height", Arguments: "unit: METER"},
			str:  "height(unit: METER)",
		},
		{
			name: "alias",
			tag:  "node1: node",
			want: ParsedTag{FieldName: "node", Alias: "node1"},
			str:  "node1: node",
		},
		{
			name: "alias with arguments",
			tag:  `owner: user(id: "VXNlcjox")`,
			want: ParsedTag{FieldName: "user", Alias: "owner", Arguments: `id: "VXNlcjox"`},
			str:  `owner: user(id: "VXNlcjox")`,
		},
		{
			name: "whitespace",
			tag:  "  alias :  field ( first: 5 )  ",
			want: ParsedTag{FieldName: "field", Alias: "alias", Arguments: "first: 5"},
			str:  "alias: field(first: 5)",
		},
		{
			name: "colons in arguments",
			tag:  `search(filter: {name: "x"})`,
			want: ParsedTag{FieldName: "search", Arguments: `filter: {name: "x"}`},
			str:  `search(filter: {name: "x"})`,
		},
		{
			name: "nested parentheses",
			tag:  "field(arg: fn(1))",
			want: ParsedTag{FieldName: "field", Arguments: "arg: fn(1)"},
			str:  "field(arg: fn(1))",
		},
		{
			name: "fragment",
			tag:  "...   on   Droid",
			want: ParsedTag{IsFragment: true, TypeName: "Droid"},
			str:  "... on Droid",
		},
		{
			name: "skip",
			tag:  "-",
			want: ParsedTag{Skip: true},
		},
		{
			name: "empty",
			tag:  "",
			want: ParsedTag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGraphQLTag(tt.tag)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if tt.str != "" && got.String() != tt.str {
				t.Errorf("got String() %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestParseGraphQLTag_Errors(t *testing.T) {
	for _, tag := range []string{
		"field)(",
		"...",
		"... on ",
		"alias: (x: 1)",
	} {
		if _, err := ParseGraphQLTag(tag); err == nil {
			t.Errorf("tag %q: got nil error, want non-nil", tag)
		}
	}
}
