package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(tweet *model.Tweet) error
	FindByID(tweetID uint64) (*model.Tweet, error)
	ListByOwner(ownerID uint64) ([]model.Tweet, error)
	UpdateContent(tweetID uint64, content string) (int64, error)
	Delete(tweetID uint64) (int64, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *tweetRepository) FindByID(tweetID uint64) (*model.Tweet, error) {
	var result model.Tweet
	err := r.db.Preload("Owner").First(&result, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tweetRepository) ListByOwner(ownerID uint64) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) UpdateContent(tweetID uint64, content string) (int64, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", tweetID).Update("content", content)
	return result.RowsAffected, result.Error
}

func (r *tweetRepository) Delete(tweetID uint64) (int64, error) {
	result := r.db.Delete(&model.Tweet{}, tweetID)
	return result.RowsAffected, result.Error
}
