// Package directory defines the GraphQL queries for the organization directory.
package directory

import (
	"github.com/graphql-go/graphql"

	"github.com/volunteerhub/backend/internal/query"
	"github.com/volunteerhub/backend/restapi/modules/auth"
)

func listOptions(p graphql.ResolveParams) query.Options {
	opts := query.Options{}

	if status, ok := p.Args["status"].(string); ok && status != "" {
		opts.Equals = map[string]string{"status": status}
	}
	if search, ok := p.Args["search"].(string); ok {
		opts.Search = search
	}
	if field, ok := p.Args["sort"].(string); ok && field != "" {
		order, _ := p.Args["order"].(string)
		opts.Sort = &query.Sort{Field: field, Descending: order == "desc"}
	}

	page, hasPage := p.Args["page"].(int)
	limit, hasLimit := p.Args["limit"].(int)
	if hasPage || hasLimit {
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = query.DefaultLimit
		}
		opts.Pagination = &query.Pagination{Page: page, Limit: limit}
	}

	return opts
}

var listArgs = graphql.FieldConfigArgument{
	"status": &graphql.ArgumentConfig{Type: graphql.String},
	"search": &graphql.ArgumentConfig{Type: graphql.String},
	"sort":   &graphql.ArgumentConfig{Type: graphql.String},
	"order":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "asc"},
	"page":   &graphql.ArgumentConfig{Type: graphql.Int},
	"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
}

// GetQueryFields returns the directory queries to be mounted in the root schema
func GetQueryFields(r *Resolvers) graphql.Fields {
	return graphql.Fields{
		"organizations": &graphql.Field{
			Type: OrganizationPageType,
			Args: listArgs,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.ResolveOrganizations(p.Context, listOptions(p))
			},
		},
		"organization": &graphql.Field{
			Type: OrganizationType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				return r.ResolveOrganization(p.Context, id, auth.ActorFromContext(p.Context))
			},
		},
		"organizationSummary": &graphql.Field{
			Type: OrganizationSummaryType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				return r.ResolveOrganizationSummary(p.Context, id, auth.ActorFromContext(p.Context))
			},
		},
		"volunteers": &graphql.Field{
			Type: VolunteerPageType,
			Args: mergeArgs(listArgs, graphql.FieldConfigArgument{
				"organization_id": &graphql.ArgumentConfig{Type: graphql.String},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				orgID, _ := p.Args["organization_id"].(string)
				return r.ResolveVolunteers(p.Context, orgID, listOptions(p), auth.ActorFromContext(p.Context))
			},
		},
	}
}

func mergeArgs(groups ...graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	merged := graphql.FieldConfigArgument{}
	for _, group := range groups {
		for name, arg := range group {
			merged[name] = arg
		}
	}
	return merged
}
