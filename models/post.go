package models

import "time"

// PostTextMaxLength bounds Post.Text in runes.
const PostTextMaxLength = 200

// Post is a single publication. PubDate is assigned on insert and never
// updated.
type Post struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"autoCreateTime;index;<-:create"`
	Image    string    `gorm:"size:255"`
	AuthorID uint      `gorm:"not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uint     `gorm:"index"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// String returns the first 15 characters of the text.
func (p Post) String() string {
	return truncate(p.Text, 15)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
