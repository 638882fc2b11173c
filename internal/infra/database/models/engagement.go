package models

import (
	"time"
)

// ConfessionMeta is the locally tracked side of a posted confession.
// The id comes from the remote feed service and is immutable.
type ConfessionMeta struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text"`
	AuthorID      string    `json:"author" gorm:"type:text;index"`
	Tags          string    `json:"tags" gorm:"type:text"`
	AllowComments bool      `json:"allowComments" gorm:"type:boolean;not null;default:true"`
	CDate         time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Like is one (confession, user) membership pair. The composite primary
// key keeps a user from appearing twice in a confession's like set.
type Like struct {
	ConfessionID string    `json:"confessionId" gorm:"type:text;primaryKey"`
	UserID       string    `json:"userId" gorm:"type:text;primaryKey"`
	CDate        time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Comment is append-only; there is no edit or delete path.
type Comment struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ConfessionID string    `json:"confessionId" gorm:"type:text;index"`
	UserID       string    `json:"userId" gorm:"type:text"`
	Text         string    `json:"text" gorm:"type:text"`
	CDate        time.Time `json:"cdate" gorm:"type:timestamp with time zone;not null"`
}

// Bookmark is keyed from the user side for cheap "list my bookmarks".
type Bookmark struct {
	UserID       string    `json:"userId" gorm:"type:text;primaryKey;index"`
	ConfessionID string    `json:"confessionId" gorm:"type:text;primaryKey"`
	CDate        time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
