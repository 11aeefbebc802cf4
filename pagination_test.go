package graphql

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/llehouerou/crudl-graphql/types"
)

func TestContinue(t *testing.T) {
	tests := []struct {
		name string
		data string
		root string
		want Continuation
	}{
		{
			name: "next page",
			data: `{"allCategories": {"pageInfo": {"hasNextPage": true, "endCursor": "YXJyYXljb25uZWN0aW9uOjk="}, "edges": []}}`,
			root: "allCategories",
			want: Continuation{Type: "continuous", Next: cursorAfter("YXJyYXljb25uZWN0aW9uOjk=")},
		},
		{
			name: "last page",
			data: `{"allCategories": {"pageInfo": {"hasNextPage": false, "endCursor": "YXJyYXljb25uZWN0aW9uOjM="}}}`,
			root: "allCategories",
			want: Continuation{Type: "continuous"},
		},
		{
			name: "single root inferred",
			data: `{"allTags": {"pageInfo": {"hasNextPage": true, "endCursor": "abc"}}}`,
			want: Continuation{Type: "continuous", Next: cursorAfter("abc")},
		},
		{
			name: "named root among several",
			data: `{"allTags": {"pageInfo": {"hasNextPage": false}}, "allUsers": {"pageInfo": {"hasNextPage": true, "endCursor": "u"}}}`,
			root: "allUsers",
			want: Continuation{Type: "continuous", Next: cursorAfter("u")},
		},
		{
			name: "next page without endCursor",
			data: `{"allTags": {"pageInfo": {"hasNextPage": true, "endCursor": null}}}`,
			root: "allTags",
			want: Continuation{Type: "continuous", Next: &Cursor{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Continue([]byte(tt.data), tt.root)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Continue() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContinue_errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		root string
		want error
	}{
		{"not an object", `[1]`, "", ErrMalformedResponse},
		{"null data", `null`, "", ErrMalformedResponse},
		{"missing root", `{"allTags": {}}`, "allUsers", ErrMalformedResponse},
		{"null root", `{"allTags": null}`, "allTags", ErrMalformedResponse},
		{"no pageInfo", `{"allTags": {"edges": []}}`, "allTags", ErrMalformedResponse},
		{"ambiguous", `{"a": {}, "b": {}}`, "", ErrAmbiguousRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Continue([]byte(tt.data), tt.root)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestContinueResponse(t *testing.T) {
	body := `{"data": {"allEntries": {"pageInfo": {"hasNextPage": true, "endCursor": "e1"}}}}`
	got, err := ContinueResponse([]byte(body), "allEntries")
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasNext() || got.Next.After == nil || *got.Next.After != "e1" {
		t.Errorf("got %+v, want next after e1", got)
	}
	if _, err := ContinueResponse([]byte(`{"data": null}`), ""); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("got error %v, want %v", err, ErrMalformedResponse)
	}
}

func TestContinuation_JSON(t *testing.T) {
	tests := []struct {
		c    Continuation
		want string
	}{
		{Continuation{Type: types.ContinuousPagination}, `{"type":"continuous","next":false}`},
		{Continuation{Type: types.ContinuousPagination, Next: cursorAfter("abc")}, `{"type":"continuous","next":{"after":"abc"}}`},
		{Continuation{Type: types.ContinuousPagination, Next: &Cursor{}}, `{"type":"continuous","next":{"after":null}}`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.c)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tt.want {
			t.Errorf("got %s, want %s", b, tt.want)
		}

		var back Continuation
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.c, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestContinuation_PageArgs(t *testing.T) {
	last := Continuation{Type: types.ContinuousPagination}
	if last.PageArgs().Len() != 0 || last.HasNext() {
		t.Error("last page has page args")
	}
	next := Continuation{Type: types.ContinuousPagination, Next: cursorAfter("c")}
	if v, _ := next.PageArgs().Get("after"); v != "c" {
		t.Errorf("got after %v, want c", v)
	}
	unknown := Continuation{Type: types.ContinuousPagination, Next: &Cursor{}}
	if v, ok := unknown.PageArgs().Get("after"); !ok || v != nil {
		t.Errorf("got after %v (present %v), want nil", v, ok)
	}
	if args, err := FormatArgs(unknown.PageArgs()); err != nil || args != "(after: null)" {
		t.Errorf("got %q, %v, want (after: null)", args, err)
	}
}

func cursorAfter(cursor string) *Cursor {
	return &Cursor{After: &cursor}
}
