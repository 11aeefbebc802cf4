package graphql

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/llehouerou/crudl-graphql/types"
)

type createTagInput struct {
	Name    string `json:"name"`
	Counter int    `json:"counter"`
}

func (createTagInput) GetGraphQLType() string { return "CreateTagInput" }

func TestMutation_Build(t *testing.T) {
	m := Mutation{Name: "createTag", Payload: FieldName("tag { id, name }, errors")}

	query, variables, err := m.Build(createTagInput{Name: "go", Counter: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := `mutation ($input: CreateTagInput!) {
    createTag(input: $input) {
        tag { id, name }, errors
    }
}`
	if query != want {
		t.Errorf("got:\n%s\nwant:\n%s", query, want)
	}

	input, ok := variables["input"].(types.Args)
	if !ok {
		t.Fatalf("got input %T, want types.Args", variables["input"])
	}
	if got, want := input.Keys(), []string{"name", "counter", ClientMutationIDField}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got keys %v, want %v", got, want)
	}
	id, _ := input.Get(ClientMutationIDField)
	if _, err := uuid.Parse(id.(string)); err != nil {
		t.Errorf("got clientMutationId %v, want a uuid: %v", id, err)
	}
}

func TestMutation_Build_keepsClientMutationID(t *testing.T) {
	m := Mutation{Name: "deleteTag", InputType: "DeleteTagInput", Payload: FieldName("deleted")}
	source := types.NewArgs("id", "VGFnOjE=", ClientMutationIDField, "abc")

	_, variables, err := m.Build(source)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(variables)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"input":{"id":"VGFnOjE=","clientMutationId":"abc"}}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMutation_Build_doesNotMutateInput(t *testing.T) {
	m := Mutation{Name: "createTag", InputType: "CreateTagInput"}
	source := types.NewArgs("name", "go")
	if _, _, err := m.Build(source); err != nil {
		t.Fatal(err)
	}
	if _, ok := source.Get(ClientMutationIDField); ok {
		t.Error("input args were modified")
	}
}

func TestMutation_Build_mapInput(t *testing.T) {
	m := Mutation{Name: "changeTag", InputType: "ChangeTagInput", Payload: FieldName("errors")}
	_, variables, err := m.Build(map[string]any{"name": "go", "id": "VGFnOjE="})
	if err != nil {
		t.Fatal(err)
	}
	input := variables["input"].(types.Args)
	if got := strings.Join(input.Keys(), ","); got != "id,name,clientMutationId" {
		t.Errorf("got keys %s", got)
	}
}

func TestMutation_Build_errors(t *testing.T) {
	tests := []struct {
		name  string
		m     Mutation
		input any
	}{
		{"no name", Mutation{InputType: "X"}, nil},
		{"no input type", Mutation{Name: "x"}, types.Args{}},
		{"not an object", Mutation{Name: "x", InputType: "X"}, []int{1}},
		{"unencodable", Mutation{Name: "x", InputType: "X"}, make(chan int)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.m.Build(tt.input); err == nil {
				t.Error("got error: nil, want: non-nil")
			}
		})
	}
}
