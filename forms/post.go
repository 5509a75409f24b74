package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"unicode/utf8"

	"yatube/media"
	"yatube/models"
)

// GroupFinder resolves a group id submitted with a post.
type GroupFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Group, error)
}

// Upload is a submitted file, read fully into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PostForm carries the fields of the new/edit post page.
type PostForm struct {
	Text     string
	GroupRaw string
	Image    *Upload
	Errors   Errors

	group *models.Group
}

// NewPostForm binds text and group from submitted values.
func NewPostForm(values url.Values, image *Upload) *PostForm {
	return &PostForm{
		Text:     values.Get("text"),
		GroupRaw: values.Get("group"),
		Image:    image,
		Errors:   Errors{},
	}
}

// PostFormFrom prefills the form from an existing post for editing.
func PostFormFrom(p *models.Post) *PostForm {
	f := &PostForm{Text: p.Text, Errors: Errors{}}
	if p.GroupID != nil {
		f.GroupRaw = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	return f
}

// Valid checks every field and records the failures. notFound is the error
// groups returns for a missing group; any other lookup error is returned.
func (f *PostForm) Valid(ctx context.Context, groups GroupFinder, notFound error) (bool, error) {
	f.Errors = Errors{}

	switch {
	case f.Text == "":
		f.Errors.Add("text", MsgRequired)
	case utf8.RuneCountInString(f.Text) > models.PostTextMaxLength:
		f.Errors.Add("text", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).",
			models.PostTextMaxLength, utf8.RuneCountInString(f.Text)))
	}

	f.group = nil
	if f.GroupRaw != "" {
		id, err := strconv.ParseUint(f.GroupRaw, 10, 64)
		if err != nil {
			f.Errors.Add("group", MsgInvalidGroup)
		} else {
			group, err := groups.FindByID(ctx, uint(id))
			switch {
			case errors.Is(err, notFound):
				f.Errors.Add("group", MsgInvalidGroup)
			case err != nil:
				return false, err
			default:
				f.group = group
			}
		}
	}

	if f.Image != nil && !IsImage(f.Image.Data) {
		f.Errors.Add("image", MsgInvalidImage)
	}

	return !f.Errors.Any(), nil
}

// Apply copies validated text and group onto p.
func (f *PostForm) Apply(p *models.Post) {
	p.Text = f.Text
	p.GroupID = nil
	p.Group = nil
	if f.group != nil {
		p.GroupID = &f.group.ID
		p.Group = f.group
	}
}

// SelectedGroup reports whether id is the submitted group, for rendering.
func (f *PostForm) SelectedGroup(id uint) bool {
	return f.GroupRaw == strconv.FormatUint(uint64(id), 10)
}

// IsImage sniffs data and reports whether it is an image the media store
// accepts.
func IsImage(data []byte) bool {
	_, ok := media.ImageExtension(data)
	return ok
}
