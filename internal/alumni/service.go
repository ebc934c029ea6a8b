package alumni

import (
	"context"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const searchResultCap = 20

type Service struct {
	repo   *Repository
	logger *zap.Logger
}

func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type ListResult struct {
	Items []*Alumni `json:"items"`
	Total int64     `json:"total"`
	Page  int64     `json:"page"`
	Limit int64     `json:"limit"`
}

func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *Service) Search(ctx context.Context, f ListFilter) ([]*Alumni, error) {
	return s.repo.Search(ctx, f, searchResultCap)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) Detail(ctx context.Context, id primitive.ObjectID) (*Alumni, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("Alumni not found")
	}
	return a, nil
}

// Create registers the caller's own directory entry. One profile per
// account; the unique user_id index backstops the pre-check.
func (s *Service) Create(ctx context.Context, p *auth.Principal, req CreateAlumniRequest) (*Alumni, error) {
	userID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid session")
	}
	existing, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("You already have an alumni profile")
	}

	now := time.Now()
	a := &Alumni{
		ID:              primitive.NewObjectID(),
		Name:            req.Name,
		Email:           auth.NormalizeEmail(req.Email),
		GraduationYear:  req.GraduationYear,
		Degree:          req.Degree,
		Department:      req.Department,
		CurrentCompany:  req.CurrentCompany,
		CurrentPosition: req.CurrentPosition,
		Location:        req.Location,
		Phone:           req.Phone,
		LinkedIn:        req.LinkedIn,
		Achievements:    req.Achievements,
		IsActive:        true,
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("alumni profile created", zap.String("email", a.Email), zap.Int("graduation_year", a.GraduationYear))
	return a, nil
}

func (s *Service) canModify(p *auth.Principal, a *Alumni) bool {
	return p.Role == auth.RoleAdmin || a.UserID.Hex() == p.ID
}

func (s *Service) Update(ctx context.Context, p *auth.Principal, id primitive.ObjectID, req UpdateAlumniRequest) (*Alumni, error) {
	a, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canModify(p, a) {
		return nil, apperr.Forbidden("You can only modify your own alumni profile")
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = auth.NormalizeEmail(*req.Email)
	}
	if req.GraduationYear != nil {
		set["graduation_year"] = *req.GraduationYear
	}
	if req.Degree != nil {
		set["degree"] = *req.Degree
	}
	if req.Department != nil {
		set["department"] = *req.Department
	}
	if req.CurrentCompany != nil {
		set["current_company"] = *req.CurrentCompany
	}
	if req.CurrentPosition != nil {
		set["current_position"] = *req.CurrentPosition
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.LinkedIn != nil {
		set["linkedin"] = *req.LinkedIn
	}
	if req.Achievements != nil {
		set["achievements"] = req.Achievements
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	return s.repo.Update(ctx, id, set)
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id primitive.ObjectID) error {
	a, err := s.Detail(ctx, id)
	if err != nil {
		return err
	}
	if !s.canModify(p, a) {
		return apperr.Forbidden("You can only delete your own alumni profile")
	}
	return s.repo.Delete(ctx, id)
}
