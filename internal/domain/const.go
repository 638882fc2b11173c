package domain

type ctxKey string

const (
	// RequesterIDCtxKey carries the verified user id of the requester.
	RequesterIDCtxKey ctxKey = "gb-requesterId"
	// RequesterGhostCtxKey carries the requester's ghost name when known.
	RequesterGhostCtxKey ctxKey = "gb-requesterGhost"
)

const (
	// MaxConfessionLength is the hard cap on raw confession text.
	MaxConfessionLength = 280
	// MaxTagLength caps each normalized tag.
	MaxTagLength = 15
	// MaxTags caps how many tags a confession carries.
	MaxTags = 3
)
