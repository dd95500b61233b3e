package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a stored response.
type Key struct {
	// Resource is the request path (e.g., "/users")
	Resource string

	// Query holds query parameters, if any
	Query url.Values
}

// String generates a deterministic key string.
// Format: directory:resource:query1=val1:query2=val2
//
// Example:
//
//	directory:users
func (k Key) String() string {
	parts := []string{"directory"}

	if resource := strings.Trim(k.Resource, "/"); resource != "" {
		parts = append(parts, resource)
	}

	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, k.Query.Get(name)))
		}
	}

	return strings.Join(parts, ":")
}
