package pricing

import "context"

type contextKey struct{}

// Location is the resolved region and profile carried through a request.
type Location struct {
	Region  Region
	Profile Profile
}

// DefaultLocation is used when no resolution ran for the request.
func DefaultLocation() Location {
	return Location{Region: RegionOther, Profile: ProfileFor(RegionOther)}
}

func WithLocation(ctx context.Context, loc Location) context.Context {
	return context.WithValue(ctx, contextKey{}, loc)
}

// FromContext returns the resolved location, falling back to the default
// profile when resolution never ran.
func FromContext(ctx context.Context) Location {
	if loc, ok := ctx.Value(contextKey{}).(Location); ok {
		return loc
	}
	return DefaultLocation()
}
