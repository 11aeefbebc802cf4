package blog

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
)

// NewSchema parses Schema with resolvers reading and writing s.
func NewSchema(s *Store) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, &Resolver{store: s})
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema(s *Store) *graphql.Schema {
	return graphql.MustParseSchema(Schema, &Resolver{store: s})
}

// Handler serves schema over HTTP POST and, for websocket upgrades, over
// the graphql-ws protocol.
func Handler(schema *graphql.Schema) http.Handler {
	return graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})
}
