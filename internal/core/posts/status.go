package posts

// Status is a post's lifecycle state.
//
//	PENDING --finalize(author)--> APPROVED
//
// APPROVED is terminal. Only APPROVED posts are listed, commented on, reacted
// to, or counted.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

// InitialStatus is PENDING when the post declares images and APPROVED otherwise
func InitialStatus(images []string) Status {
	if len(images) > 0 {
		return StatusPending
	}
	return StatusApproved
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

// CanTransitionTo reports whether next is a legal successor of s
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next == StatusApproved
}

// AcceptsComments reports whether a post in this state may be replied to
func (s Status) AcceptsComments() bool {
	return s == StatusApproved
}

// Listable reports whether posts in this state appear in feeds and listings
func (s Status) Listable() bool {
	return s == StatusApproved
}
