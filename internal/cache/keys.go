package cache

import "strings"

// Key builds a cache key from a resource name and its parameters, e.g.
// Key("admin.roles", "list") or Key("revenue.quotes", "detail", quoteID).
// Prefix invalidation relies on this layout: InvalidatePrefix of
// "admin.roles|list" drops every filtered variant of the role list.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	return resource + "|" + strings.Join(params, "|")
}
