package model

import "github.com/google/uuid"

// Viewer is the requesting identity for an access check.
// Zero value is the anonymous viewer.
type Viewer struct {
	ID            uuid.UUID
	Authenticated bool
}

// Anonymous is the unauthenticated viewer.
func Anonymous() Viewer {
	return Viewer{}
}

// IsOwner reports whether the viewer owns the biography.
func (v Viewer) IsOwner(b *Biography) bool {
	return v.Authenticated && v.ID == b.OwnerID
}

// CanView: owner always, everyone else only when the biography is public.
// Pure function, never errors; the boundary maps false to an HTTP failure.
func (b *Biography) CanView(v Viewer) bool {
	return b.IsPublic || v.IsOwner(b)
}

// CanEdit: owner only.
func (b *Biography) CanEdit(v Viewer) bool {
	return v.IsOwner(b)
}
