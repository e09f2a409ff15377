package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agoraun/internal/domain"
)

type commentService struct {
	commentRepo domain.CommentRepository
	userRepo    domain.UserRepository
}

func NewCommentService(commentRepo domain.CommentRepository, userRepo domain.UserRepository) domain.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) Create(ctx context.Context, userID, message string) (*domain.Comment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	comment := &domain.Comment{
		UserID:    userID,
		Message:   message,
		Status:    domain.CommentStatusPublished,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, status string) ([]*domain.Comment, error) {
	switch status {
	case "", domain.CommentStatusPublished, domain.CommentStatusPending, domain.CommentStatusRejected:
	default:
		return nil, domain.ErrInvalidInput
	}
	comments, err := s.commentRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return comments, nil
}
