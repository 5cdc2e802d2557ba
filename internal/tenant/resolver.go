// Package tenant decides, from a request's host name, whether the request
// targets the main platform site or one business's micro-site.
//
// Resolution is pure: no storage or network access. Whether the extracted slug
// belongs to an approved business is decided later by the page layer.
package tenant

import (
	"strings"
)

// Kind is the result class of a host classification.
type Kind int

const (
	// MainSite is the multi-tenant platform itself.
	MainSite Kind = iota
	// TenantSite is a single business's micro-site.
	TenantSite
)

func (k Kind) String() string {
	if k == TenantSite {
		return "tenant"
	}
	return "main"
}

// Classification is the outcome of Resolve. Slug is set only for TenantSite.
type Classification struct {
	Kind Kind
	Slug string
}

// IsTenant reports whether the classification names a tenant micro-site.
func (c Classification) IsTenant() bool {
	return c.Kind == TenantSite
}

// DefaultReserved are the labels that always address the main site.
var DefaultReserved = []string{"www", "api"}

// Resolver classifies host names against the platform root domain.
// The zero value is not useful; construct with NewResolver.
type Resolver struct {
	rootLabels []string
	reserved   map[string]struct{}
}

// NewResolver builds a Resolver for rootDomain (e.g. "example.com").
// Labels in reserved always classify as MainSite when they appear directly
// under the root domain. Matching is case-insensitive.
func NewResolver(rootDomain string, reserved []string) *Resolver {
	root := normalizeHost(rootDomain)
	var labels []string
	if root != "" {
		labels = strings.Split(root, ".")
	}

	set := make(map[string]struct{}, len(reserved))
	for _, l := range reserved {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			set[l] = struct{}{}
		}
	}
	return &Resolver{rootLabels: labels, reserved: set}
}

// RootDomain returns the normalised root domain.
func (r *Resolver) RootDomain() string {
	return strings.Join(r.rootLabels, ".")
}

// Reserved reports whether label is a reserved subdomain label.
func (r *Resolver) Reserved(label string) bool {
	_, ok := r.reserved[strings.ToLower(label)]
	return ok
}

// Resolve classifies host. It is total: malformed or foreign hosts classify
// as MainSite.
//
//	"shop1.example.com" → TenantSite{shop1}
//	"www.example.com"   → MainSite
//	"example.com"       → MainSite
//	"shop.other.com"    → MainSite
func (r *Resolver) Resolve(host string) Classification {
	host = normalizeHost(host)
	if host == "" || len(r.rootLabels) == 0 {
		return Classification{Kind: MainSite}
	}

	labels := strings.Split(host, ".")
	if len(labels) <= len(r.rootLabels) {
		return Classification{Kind: MainSite}
	}

	// the host must end with every label of the root domain
	offset := len(labels) - len(r.rootLabels)
	for i, l := range r.rootLabels {
		if labels[offset+i] != l {
			return Classification{Kind: MainSite}
		}
	}

	leftmost := labels[0]
	if leftmost == "" || r.Reserved(leftmost) {
		return Classification{Kind: MainSite}
	}
	return Classification{Kind: TenantSite, Slug: leftmost}
}

// normalizeHost lowercases host, strips a numeric ":port" suffix and a
// trailing root dot.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if idx := strings.LastIndex(host, ":"); idx != -1 && isPort(host[idx+1:]) {
		host = host[:idx]
	}
	return strings.TrimSuffix(host, ".")
}

func isPort(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
