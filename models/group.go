package models

// GroupTitleMaxLength bounds Group.Title in runes.
const GroupTitleMaxLength = 200

// Group is a named category posts may belong to.
type Group struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:200;not null"`
	Slug        *string `gorm:"uniqueIndex;size:50"`
	Description *string `gorm:"type:text"`
}

// SlugValue returns the slug or an empty string when unset.
func (g Group) SlugValue() string {
	if g.Slug == nil {
		return ""
	}
	return *g.Slug
}

// DescriptionValue returns the description or an empty string when unset.
func (g Group) DescriptionValue() string {
	if g.Description == nil {
		return ""
	}
	return *g.Description
}

func (g Group) String() string {
	return g.Title
}

// TableName avoids the GROUPS window keyword.
func (Group) TableName() string {
	return "post_groups"
}
