package config

import "testing"

func TestGraphQLURL(t *testing.T) {
	o := &Options{StoreDomain: "example.myshopify.com", APIVersion: "2024-01"}
	want := "https://example.myshopify.com/api/2024-01/graphql.json"
	if got := o.GraphQLURL(); got != want {
		t.Errorf("GraphQLURL = %q; want %q", got, want)
	}
}

func TestAdminURL(t *testing.T) {
	o := &Options{StoreDomain: "example.myshopify.com", APIVersion: "2024-01"}
	want := "https://example.myshopify.com/admin/api/2024-01"
	if got := o.AdminURL(); got != want {
		t.Errorf("AdminURL = %q; want %q", got, want)
	}
}
