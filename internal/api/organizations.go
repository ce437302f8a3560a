package api

import (
	"context"

	"hubctl/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// maxOrganizationRequests limits concurrent requests of ForAllOrganizations.
const maxOrganizationRequests = 4

// Organization is an account organization.
type Organization struct {
	OrganizationID   string `json:"organizationId"`
	Name             string `json:"name"`
	Label            string `json:"label,omitempty"`
	IsDefaultUserOrg bool   `json:"isDefaultUserOrg,omitempty"`
}

// ListOrganizations returns the organizations the user belongs to.
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	return list[Organization](ctx, c, "organizations", nil)
}

// ForAllOrganizations runs fn once per organization with a client scoped to
// it and concatenates the results in organization order. The first error
// cancels the remaining requests.
func ForAllOrganizations[T any](ctx context.Context, c *Client, fn func(ctx context.Context, orgClient *Client, org Organization) ([]T, error)) ([]T, error) {
	orgs, err := c.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	logging.Debug("API", "querying %d organizations", len(orgs))

	results := make([][]T, len(orgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOrganizationRequests)
	for i, org := range orgs {
		g.Go(func() error {
			items, err := fn(gctx, c.WithOrganization(org.OrganizationID), org)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []T
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}
