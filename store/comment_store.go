package store

import (
	"tasknest/apperr"
	"tasknest/models"
)

func (s *Store) CreateComment(comment *models.Comment) error {
	if err := s.db.Create(comment).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Store) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, wrapRead(err, KindComment, id)
	}
	return &comment, nil
}

// ListCommentsByTask returns a task's comments in chronological order
// with author names attached
func (s *Store) ListCommentsByTask(taskID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("timestamp ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

func (s *Store) DeleteComment(id uint) error {
	if err := s.db.Delete(&models.Comment{}, id).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// CountCommentsByTask counts the comment rows for taskID
func (s *Store) CountCommentsByTask(taskID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).Where("task_id = ?", taskID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}
