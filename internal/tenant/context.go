package tenant

import "context"

type ctxKey struct{}

// WithClassification returns a copy of ctx carrying c.
func WithClassification(ctx context.Context, c Classification) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the classification stored by WithClassification.
// Requests that were never classified report MainSite.
func FromContext(ctx context.Context) Classification {
	c, ok := ctx.Value(ctxKey{}).(Classification)
	if !ok {
		return Classification{Kind: MainSite}
	}
	return c
}
