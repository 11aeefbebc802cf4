// Package tagparser parses the graphql struct tags used to derive field
// selections from Go types.
package tagparser

import (
	"fmt"
	"strings"
)

// ParsedTag represents a parsed GraphQL struct tag.
type ParsedTag struct {
	// FieldName is the GraphQL field name (after alias if present).
	FieldName string
	// Arguments contains the content inside parentheses, if any.
	Arguments string
	// Alias is the field alias (before the colon), if any.
	Alias string
	// Skip is set for the "-" tag.
	Skip bool
	// IsFragment indicates an inline fragment ("... on TypeName").
	IsFragment bool
	// TypeName is the typename for fragments.
	TypeName string
}

// ParseGraphQLTag parses a GraphQL struct tag value.
// Examples:
//   - "name" -> {FieldName: "name"}
//   - "height(unit: METER)" -> {FieldName: "height", Arguments: "unit: METER"}
//   - "node1: node(id: $id)" -> {FieldName: "node", Alias: "node1", Arguments: "id: $id"}
//   - "... on Droid" -> {IsFragment: true, TypeName: "Droid"}
func ParseGraphQLTag(tag string) (ParsedTag, error) {
	tag = strings.TrimSpace(tag)

	var parsed ParsedTag
	switch {
	case tag == "":
		return parsed, nil
	case tag == "-":
		parsed.Skip = true
		return parsed, nil
	case strings.HasPrefix(tag, "..."):
		parsed.IsFragment = true
		rest := strings.TrimSpace(tag[3:])
		if strings.HasPrefix(rest, "on ") {
			parsed.TypeName = strings.TrimSpace(rest[3:])
		}
		if parsed.TypeName == "" {
			return parsed, fmt.Errorf("fragment tag %q has no type condition", tag)
		}
		return parsed, nil
	}

	fieldPart := tag
	if open := strings.IndexByte(tag, '('); open != -1 {
		end := strings.LastIndexByte(tag, ')')
		if end < open {
			return parsed, fmt.Errorf("unbalanced parentheses in tag %q", tag)
		}
		parsed.Arguments = strings.TrimSpace(tag[open+1 : end])
		fieldPart = strings.TrimSpace(tag[:open])
	}

	if colon := strings.IndexByte(fieldPart, ':'); colon != -1 {
		parsed.Alias = strings.TrimSpace(fieldPart[:colon])
		parsed.FieldName = strings.TrimSpace(fieldPart[colon+1:])
	} else {
		parsed.FieldName = fieldPart
	}
	if parsed.FieldName == "" {
		return parsed, fmt.Errorf("tag %q has no field name", tag)
	}
	return parsed, nil
}

// String renders the tag back as a selection, e.g. "node1: node(id: $id)"
// or "... on Droid".
func (p ParsedTag) String() string {
	if p.IsFragment {
		return "... on " + p.TypeName
	}
	var b strings.Builder
	if p.Alias != "" {
		b.WriteString(p.Alias)
		b.WriteString(": ")
	}
	b.WriteString(p.FieldName)
	if p.Arguments != "" {
		b.WriteByte('(')
		b.WriteString(p.Arguments)
		b.WriteByte(')')
	}
	return b.String()
}
