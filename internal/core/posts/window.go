package posts

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Window is a cursor pagination request. Before and After are post ids
// marking exclusive boundaries and may not both be set.
type Window struct {
	Before *string
	After  *string
	Limit  int
}

// Validate rejects malformed windows before any store access
func (w Window) Validate() error {
	if w.Limit < 0 {
		return NewValidationError("limit", "must be positive")
	}
	if w.Before != nil && w.After != nil {
		return NewValidationError("cursor", "before and after are mutually exclusive")
	}
	if w.Before != nil && *w.Before == "" {
		return NewValidationError("before", "must not be empty")
	}
	if w.After != nil && *w.After == "" {
		return NewValidationError("after", "must not be empty")
	}
	return nil
}

// Normalize applies the default and maximum page size
func (w Window) Normalize() Window {
	if w.Limit <= 0 {
		w.Limit = DefaultPageLimit
	}
	if w.Limit > MaxPageLimit {
		w.Limit = MaxPageLimit
	}
	return w
}

// Backward reports whether rows preceding the cursor are requested
func (w Window) Backward() bool {
	return w.Before != nil
}
