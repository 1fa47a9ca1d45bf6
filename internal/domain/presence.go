package domain

// Role is the permission tier of an occupant.
type Role string

const (
	RolePlayer    Role = "player"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// PresenceEntry holds the room-visible profile of a connected occupant.
type PresenceEntry struct {
	DisplayName string `json:"display_name"`
	EloRating   int    `json:"elo_rating"`
	Avatar      string `json:"avatar"`
	Title       string `json:"title,omitempty"`
	Role        Role   `json:"role"`
	IsBot       bool   `json:"is_bot"`
	IsGuest     bool   `json:"is_guest"`
	Ready       bool   `json:"ready"`
}

// PresenceTable maps connection identities to their presence entries.
// Keys are exactly the currently connected identities; entries are
// reconciled synchronously by the command pipeline, never swept.
type PresenceTable struct {
	entries map[string]PresenceEntry
}

// Upsert inserts or replaces the entry for the given identity.
func (t *PresenceTable) Upsert(id string, entry PresenceEntry) {
	if t.entries == nil {
		t.entries = make(map[string]PresenceEntry)
	}
	t.entries[id] = entry
}

// Remove deletes the entry for the given identity. Removing an absent
// identity is a no-op: disconnects race with teardown and must not fail.
func (t *PresenceTable) Remove(id string) {
	delete(t.entries, id)
}

// Get returns the entry for the given identity, if present.
func (t *PresenceTable) Get(id string) (PresenceEntry, bool) {
	entry, ok := t.entries[id]
	return entry, ok
}

// Len returns the number of connected occupants.
func (t *PresenceTable) Len() int {
	return len(t.entries)
}

// Snapshot returns a copy of the table keyed by identity.
func (t *PresenceTable) Snapshot() map[string]PresenceEntry {
	out := make(map[string]PresenceEntry, len(t.entries))
	for id, entry := range t.entries {
		out[id] = entry
	}
	return out
}
