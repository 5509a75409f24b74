package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/models"
	"yatube/pagination"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	return translate(err, "failed to create post")
}

// Update writes the editable fields only; author and pub_date never change.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(post).
		Select("text", "image", "group_id").
		Updates(map[string]any{
			"text":     post.Text,
			"image":    post.Image,
			"group_id": post.GroupID,
		})
	if res.Error == nil && res.RowsAffected == 0 {
		res.Error = gorm.ErrRecordNotFound
	}
	return translate(res.Error, "failed to update post %d", post.ID)
}

// FindByAuthor returns post id only when it was written by username.
func (r *postRepository) FindByAuthor(ctx context.Context, username string, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		First(&post).Error
	if err != nil {
		return nil, translate(err, "failed to get post %d by %q", id, username)
	}
	return &post, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, translate(err, "failed to count posts")
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, translate(err, "failed to count posts of user %d", authorID)
}

func (r *postRepository) List(ctx context.Context, page int) (*pagination.Page[models.Post], error) {
	return r.page(ctx, page, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, page int) (*pagination.Page[models.Post], error) {
	return r.page(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.group_id = ?", groupID)
	})
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, page int) (*pagination.Page[models.Post], error) {
	return r.page(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id = ?", authorID)
	})
}

// ListFollowed composes the feed of userID: posts by every author they
// follow, newest first. An empty follow set yields an empty page.
func (r *postRepository) ListFollowed(ctx context.Context, userID uint, page int) (*pagination.Page[models.Post], error) {
	return r.page(ctx, page, func(db *gorm.DB) *gorm.DB {
		followed := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Follow{}).
			Select("author_id").
			Where("user_id = ?", userID)
		return db.Where("posts.author_id IN (?)", followed)
	})
}

// Delete removes the post and its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "failed to delete post %d", id)
}

// page counts the filtered posts, clamps the requested page and loads it.
func (r *postRepository) page(ctx context.Context, number int, filter func(*gorm.DB) *gorm.DB) (*pagination.Page[models.Post], error) {
	var count int64
	if err := filter(r.db.WithContext(ctx).Model(&models.Post{})).Count(&count).Error; err != nil {
		return nil, translate(err, "failed to count posts")
	}

	w := pagination.Resolve(count, pagination.PerPage, number)
	posts := make([]models.Post, 0, w.Limit)
	err := filter(r.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date DESC").
		Order("posts.id DESC").
		Limit(w.Limit).
		Offset(w.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err, "failed to list posts")
	}
	return pagination.NewPage(posts, w), nil
}
