package notice

import (
	"context"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

type ListResult struct {
	Items []*Notice `json:"items"`
	Total int64     `json:"total"`
	Page  int64     `json:"page"`
	Limit int64     `json:"limit"`
}

func (s *Service) List(ctx context.Context, search string, page, limit int64) (*ListResult, error) {
	items, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Notice{}
	}
	return &ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Create(ctx context.Context, req CreateNoticeRequest, principal *auth.Principal) (*Notice, error) {
	now := time.Now()
	n := &Notice{
		ID:            primitive.NewObjectID(),
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		Attachments:   req.Attachments,
		AudienceRoles: req.AudienceRoles,
		PublishedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if n.Category == "" {
		n.Category = "general"
	}
	if req.IsPinned != nil {
		n.IsPinned = *req.IsPinned
	}
	if req.PublishedAt != nil {
		n.PublishedAt = *req.PublishedAt
	}
	if principal != nil {
		if creator, err := primitive.ObjectIDFromHex(principal.ID); err == nil {
			n.CreatedBy = creator
		}
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, req UpdateNoticeRequest) (*Notice, error) {
	set := bson.M{"updated_at": time.Now()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Attachments != nil {
		set["attachments"] = req.Attachments
	}
	if req.IsPinned != nil {
		set["is_pinned"] = *req.IsPinned
	}
	if req.AudienceRoles != nil {
		set["audience_roles"] = req.AudienceRoles
	}
	if req.PublishedAt != nil {
		set["published_at"] = *req.PublishedAt
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("Notice not found")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
