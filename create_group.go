package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"unicode/utf8"

	"yatube/models"
	"yatube/repositories"
)

// createGroup implements `yatube create-group -title T [-slug S] [-description D]`.
func createGroup(ctx context.Context, groups repositories.GroupRepository, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-group", flag.ContinueOnError)
	fs.SetOutput(out)
	title := fs.String("title", "", "group title (required)")
	slug := fs.String("slug", "", "URL slug; derived from the title when empty")
	description := fs.String("description", "", "group description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return errors.New("-title is required")
	}
	if utf8.RuneCountInString(*title) > models.GroupTitleMaxLength {
		return fmt.Errorf("-title is longer than %d characters", models.GroupTitleMaxLength)
	}

	group := &models.Group{Title: *title}
	if *slug != "" {
		if !models.ValidSlug(*slug) {
			return fmt.Errorf("invalid slug %q", *slug)
		}
		group.Slug = slug
	}
	if *description != "" {
		group.Description = description
	}

	if err := groups.Create(ctx, group); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created group %q at /group/%s/\n", group.Title, group.SlugValue())
	return nil
}
