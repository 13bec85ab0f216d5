package logging

import "context"

type ownerKey struct{}

// OwnerKey is the attribute name under which the context owner is logged.
const OwnerKey = "owner_id"

// WithOwner returns a copy of ctx whose log records carry owner_id.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	if ownerID == "" {
		return ctx
	}
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFrom reports the owner set by WithOwner.
func OwnerFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(ownerKey{}).(string)
	return id, ok
}

func withContextAttrs(ctx context.Context, args []any) []any {
	id, ok := OwnerFrom(ctx)
	if !ok {
		return args
	}
	return append([]any{OwnerKey, id}, args...)
}
