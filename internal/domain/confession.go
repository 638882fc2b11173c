package domain

import "time"

// RemoteStatus is a single item as returned by the remote feed service.
// ID and Text are authoritative; nothing local ever overrides them.
type RemoteStatus struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Confession represents a posted item plus the metadata tracked locally.
type Confession struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
	Tags          []string  `json:"tags"`
	AuthorID      string    `json:"author,omitempty"`
	AllowComments bool      `json:"allowComments"`
}

// EnrichedConfession is a Confession joined with its engagement counters.
// Counters are derived at read time, never stored on the confession.
type EnrichedConfession struct {
	Confession
	LikeCount    int64 `json:"likes"`
	CommentCount int64 `json:"comments"`
}

// ConfessionMeta is the locally-owned slice of a confession: everything
// the remote feed service doesn't know about.
type ConfessionMeta struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author,omitempty"`
	Tags          []string  `json:"tags"`
	AllowComments bool      `json:"allowComments"`
	CreatedAt     time.Time `json:"created_at"`
}

// LocalState is the per-item engagement join used when merging the remote
// feed. Absent items default to empty tags, comments allowed, zero counts.
type LocalState struct {
	Meta         ConfessionMeta
	LikeCount    int64
	CommentCount int64
}

// DefaultLocalState returns the state reported for ids the engagement
// store has never seen.
func DefaultLocalState() LocalState {
	return LocalState{
		Meta: ConfessionMeta{
			Tags:          []string{},
			AllowComments: true,
		},
	}
}
