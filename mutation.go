package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/llehouerou/crudl-graphql/types"
)

// ClientMutationIDField is the input field Relay uses to correlate a
// mutation with its payload.
const ClientMutationIDField = "clientMutationId"

// Mutation describes a Relay ClientIDMutation taking a single $input
// variable, e.g.
//
//	mutation ($input: CreateCategoryInput!) {
//	    createCategory(input: $input) {
//	        category { id, name }, errors
//	    }
//	}
type Mutation struct {
	// Name is the mutation field, e.g. "createCategory".
	Name string
	// InputType is the GraphQL input type name. When empty it is taken
	// from an input implementing types.GraphQLType.
	InputType string
	// Payload is the selection of the mutation payload.
	Payload FieldSpec
}

const mutationFormat = `mutation (%s) {
    %s(input: $input) {
        %s
    }
}`

// Build returns the mutation document and its variables for input.
//
// input is either types.Args, or any value that encodes to a JSON object.
// A fresh clientMutationId is added unless input already carries one.
func (m Mutation) Build(input any) (string, map[string]any, error) {
	if m.Name == "" {
		return "", nil, errors.New("mutation name is empty")
	}
	args, err := inputArgs(input)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build mutation %s: %w", m.Name, err)
	}
	if _, ok := args.Get(ClientMutationIDField); !ok {
		args.Set(ClientMutationIDField, uuid.NewString())
	}

	inputType := m.InputType
	if inputType == "" {
		if t, ok := input.(types.GraphQLType); ok {
			inputType = t.GetGraphQLType()
		}
	}
	if inputType == "" {
		return "", nil, fmt.Errorf("failed to build mutation %s: unknown input type", m.Name)
	}

	var decl strings.Builder
	writeVariableDeclaration(&decl, "input", inputType, true)

	query := fmt.Sprintf(mutationFormat, decl.String(), m.Name, selectionOf(m.Payload))
	return query, map[string]any{"input": args}, nil
}

// writeVariableDeclaration writes "$name: Type" to w.
// If required is true, then "!" is written at the end of the type.
func writeVariableDeclaration(w io.Writer, name, typeName string, required bool) {
	_, _ = io.WriteString(w, "$")
	_, _ = io.WriteString(w, name)
	_, _ = io.WriteString(w, ": ")
	_, _ = io.WriteString(w, typeName)
	if required {
		_, _ = io.WriteString(w, "!")
	}
}

func inputArgs(input any) (types.Args, error) {
	switch v := input.(type) {
	case nil:
		return types.Args{}, nil
	case types.Args:
		return v.Clone(), nil
	case map[string]any:
		// plain maps have no order; keep it stable
		return mapArgs(v), nil
	}
	data, err := json.Marshal(input)
	if err != nil {
		return types.Args{}, err
	}
	var args types.Args
	if err := json.Unmarshal(data, &args); err != nil {
		return types.Args{}, fmt.Errorf("input must encode to a JSON object: %w", err)
	}
	return args, nil
}
