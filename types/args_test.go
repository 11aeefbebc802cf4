package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestArgs_SetKeepsFirstPosition(t *testing.T) {
	var a Args
	a.Set("a", 1)
	a.Set("b", 2)
	a.Set("a", 3)

	if got, want := a.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got keys %v, want %v", got, want)
	}
	if v, _ := a.Get("a"); v != 3 {
		t.Errorf("got a=%v, want 3", v)
	}
}

func TestMergeArgs_LastWriteWins(t *testing.T) {
	static := NewArgs("active", true, "first", 5)
	page := NewArgs("first", 10, "after", "abc")
	filters := NewArgs("name", "x")

	merged := MergeArgs(static, page, filters)

	if got, want := merged.Keys(), []string{"active", "first", "after", "name"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got keys %v, want %v", got, want)
	}
	if v, _ := merged.Get("first"); v != 10 {
		t.Errorf("got first=%v, want 10", v)
	}
	// sources are left untouched
	if v, _ := static.Get("first"); v != 5 {
		t.Errorf("static args were modified: first=%v", v)
	}
}

func TestMergeArgs_Empty(t *testing.T) {
	merged := MergeArgs(Args{}, Args{})
	if merged.Len() != 0 {
		t.Errorf("got %d entries, want 0", merged.Len())
	}
}

func TestArgs_Delete(t *testing.T) {
	a := NewArgs("a", 1, "b", 2, "c", 3)
	c := a.Clone()
	a.Delete("b")
	a.Delete("missing")

	if got, want := a.Keys(), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got keys %v, want %v", got, want)
	}
	if got, want := c.Keys(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("clone changed: got keys %v, want %v", got, want)
	}
}

func TestArgs_JSONRoundTripKeepsOrder(t *testing.T) {
	a := NewArgs("z", 1, "a", "two", "m", []int{3})
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"z":1,"a":"two","m":[3]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	var back Args
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if got, want := back.Keys(), []string{"z", "a", "m"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got keys %v, want %v", got, want)
	}
	if v, _ := back.Get("z"); v != json.Number("1") {
		t.Errorf("got z=%#v, want json.Number(1)", v)
	}
}

func TestArgs_UnmarshalRejectsNonObject(t *testing.T) {
	var a Args
	if err := json.Unmarshal([]byte(`[1,2]`), &a); err == nil {
		t.Error("got nil error, want non-nil")
	}
}

func TestNewArgs_PanicsOnOddPairs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewArgs("a")
}

func TestEnum_Literal(t *testing.T) {
	var l Literal = Enum("DESC")
	if got := l.GraphQLLiteral(); got != "DESC" {
		t.Errorf("got %q, want DESC", got)
	}
}
