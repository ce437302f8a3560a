// Package api is the REST client for the hub API.
//
// Client sends JSON requests authenticated with a static bearer token and
// retries transient failures. Every request carries a fresh X-Request-Id so
// failures can be matched with server logs; StatusError reports it.
//
// List endpoints are paginated by the server. The client follows the
// _links.next reference until the last page.
//
// ForAllOrganizations fans a request out to every organization the user
// belongs to with a bounded number of concurrent requests.
package api
