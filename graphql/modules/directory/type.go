// Package directory defines the GraphQL types for the organization directory.
package directory

import (
	"github.com/graphql-go/graphql"
)

// AddressType represents a structured postal address
var AddressType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Address",
	Fields: graphql.Fields{
		"street":      &graphql.Field{Type: graphql.String},
		"city":        &graphql.Field{Type: graphql.String},
		"province":    &graphql.Field{Type: graphql.String},
		"postal_code": &graphql.Field{Type: graphql.String},
		"country":     &graphql.Field{Type: graphql.String},
	},
})

// OrganizationType represents one organization in the directory
var OrganizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Organization",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.String},
		"name":           &graphql.Field{Type: graphql.String},
		"slug":           &graphql.Field{Type: graphql.String},
		"description":    &graphql.Field{Type: graphql.String},
		"address":        &graphql.Field{Type: AddressType},
		"contact_email":  &graphql.Field{Type: graphql.String},
		"contact_phone":  &graphql.Field{Type: graphql.String},
		"website":        &graphql.Field{Type: graphql.String},
		"digest_enabled": &graphql.Field{Type: graphql.Boolean},
		"status":         &graphql.Field{Type: graphql.String},
		"created_at":     &graphql.Field{Type: graphql.DateTime},
		"updated_at":     &graphql.Field{Type: graphql.DateTime},
	},
})

// OrganizationPageType represents one page of the organization directory
var OrganizationPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrganizationPage",
	Fields: graphql.Fields{
		"data":  &graphql.Field{Type: graphql.NewList(OrganizationType)},
		"total": &graphql.Field{Type: graphql.Int},
		"page":  &graphql.Field{Type: graphql.Int},
		"limit": &graphql.Field{Type: graphql.Int},
	},
})

// OrganizationSummaryType aggregates an organization's dependent records
var OrganizationSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrganizationSummary",
	Fields: graphql.Fields{
		"id":                    &graphql.Field{Type: graphql.String},
		"name":                  &graphql.Field{Type: graphql.String},
		"total_events":          &graphql.Field{Type: graphql.Int},
		"total_volunteers":      &graphql.Field{Type: graphql.Int},
		"total_donations":       &graphql.Field{Type: graphql.Int},
		"total_donation_amount": &graphql.Field{Type: graphql.Float},
	},
})

// VolunteerType represents one volunteer on an organization's roster
var VolunteerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Volunteer",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.String},
		"organization_id": &graphql.Field{Type: graphql.String},
		"first_name":      &graphql.Field{Type: graphql.String},
		"last_name":       &graphql.Field{Type: graphql.String},
		"email":           &graphql.Field{Type: graphql.String},
		"phone":           &graphql.Field{Type: graphql.String},
		"skills":          &graphql.Field{Type: graphql.NewList(graphql.String)},
		"status":          &graphql.Field{Type: graphql.String},
		"created_at":      &graphql.Field{Type: graphql.DateTime},
		"updated_at":      &graphql.Field{Type: graphql.DateTime},
	},
})

// VolunteerPageType represents one page of an organization's roster
var VolunteerPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VolunteerPage",
	Fields: graphql.Fields{
		"data":  &graphql.Field{Type: graphql.NewList(VolunteerType)},
		"total": &graphql.Field{Type: graphql.Int},
		"page":  &graphql.Field{Type: graphql.Int},
		"limit": &graphql.Field{Type: graphql.Int},
	},
})
