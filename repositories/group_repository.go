package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yatube/models"
)

// ErrEmptySlug is returned when no slug was given and none can be derived
// from the title.
var ErrEmptySlug = errors.New("group slug cannot be derived from title")

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create stores the group, deriving the slug from the title when unset.
func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.SlugValue() == "" {
		slug := models.Slugify(group.Title)
		if slug == "" {
			return ErrEmptySlug
		}
		group.Slug = &slug
	}
	err := r.db.WithContext(ctx).Create(group).Error
	return translate(err, "failed to create group %q", group.SlugValue())
}

func (r *groupRepository) FindByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, "failed to get group %d", id)
	}
	return &group, nil
}

func (r *groupRepository) FindBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, translate(err, "failed to get group %q", slug)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, translate(err, "failed to list groups")
}

// Delete removes the group with its posts and their comments.
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groupPosts := tx.Model(&models.Post{}).Select("id").Where("group_id = ?", id)
		if err := tx.Where("post_id IN (?)", groupPosts).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "failed to delete group %d", id)
}
