package forms

import "net/url"

// CommentForm carries the text of a new comment. The post comes from the
// route, never from the submitted values.
type CommentForm struct {
	Text   string
	Errors Errors
}

func NewCommentForm(values url.Values) *CommentForm {
	return &CommentForm{Text: values.Get("text"), Errors: Errors{}}
}

func (f *CommentForm) Valid() bool {
	f.Errors = Errors{}
	if f.Text == "" {
		f.Errors.Add("text", MsgRequired)
	}
	return !f.Errors.Any()
}
