// Package graphql assembles the root schema from the feature modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/volunteerhub/backend/graphql/modules/directory"
	"github.com/volunteerhub/backend/internal/services"
)

// CreateSchema builds the root query schema over the service layer
func CreateSchema(orgs *services.OrganizationService, vols *services.VolunteerService) (graphql.Schema, error) {
	resolvers := &directory.Resolvers{Organizations: orgs, Volunteers: vols}

	fields := graphql.Fields{}
	for name, field := range directory.GetQueryFields(resolvers) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
