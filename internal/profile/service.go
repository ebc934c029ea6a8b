package profile

import (
	"context"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserDirectory is the slice of the credential store the profile flows need:
// creating placeholder accounts, editing identity on linked accounts, and
// cascading deletes.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
	Create(ctx context.Context, user *auth.User) error
	UpdateIdentity(ctx context.Context, id primitive.ObjectID, name, email string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Service struct {
	students *StudentRepository
	faculty  *FacultyRepository
	users    UserDirectory
	logger   *zap.Logger
}

func NewService(students *StudentRepository, faculty *FacultyRepository, users UserDirectory, logger *zap.Logger) *Service {
	return &Service{students: students, faculty: faculty, users: users, logger: logger}
}

func (s *Service) linkedUser(ctx context.Context, id primitive.ObjectID) *LinkedUser {
	user, err := s.users.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil
	}
	return &LinkedUser{ID: user.ID.Hex(), Name: user.Name, Email: user.Email, Role: user.Role}
}

type StudentListResult struct {
	Items []*StudentView `json:"items"`
	Total int64          `json:"total"`
	Page  int64          `json:"page"`
	Limit int64          `json:"limit"`
}

func (s *Service) ListStudents(ctx context.Context, search string, page, limit int64) (*StudentListResult, error) {
	profiles, total, err := s.students.List(ctx, search, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*StudentView, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, &StudentView{StudentProfile: p, User: s.linkedUser(ctx, p.UserID)})
	}
	return &StudentListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) StudentDetail(ctx context.Context, id primitive.ObjectID) (*StudentView, error) {
	p, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Student not found")
	}
	return &StudentView{StudentProfile: p, User: s.linkedUser(ctx, p.UserID)}, nil
}

// CreateStudent provisions a placeholder account plus profile. The account
// has no usable password until its owner completes OTP registration or a
// password reset.
func (s *Service) CreateStudent(ctx context.Context, req CreateStudentRequest) (*StudentView, error) {
	email := auth.NormalizeEmail(req.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	now := time.Now()
	user := &auth.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     email,
		Role:      auth.RoleStudent,
		Status:    auth.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	p := &StudentProfile{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		RollNo:    req.RollNo,
		Semester:  req.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.DepartmentID != "" {
		deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			return nil, apperr.Validation("Invalid departmentId")
		}
		p.DepartmentID = deptID
	}
	if err := s.students.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("student profile created", zap.String("email", email), zap.String("roll_no", req.RollNo))
	return &StudentView{StudentProfile: p, User: s.linkedUser(ctx, user.ID)}, nil
}

func (s *Service) UpdateStudent(ctx context.Context, id primitive.ObjectID, req UpdateStudentRequest) (*StudentView, error) {
	set := bson.M{"updated_at": time.Now()}
	if req.RollNo != nil {
		set["roll_no"] = *req.RollNo
	}
	if req.Semester != nil {
		set["semester"] = *req.Semester
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.DepartmentID != nil {
		deptID, err := primitive.ObjectIDFromHex(*req.DepartmentID)
		if err != nil {
			return nil, apperr.Validation("Invalid departmentId")
		}
		set["department_id"] = deptID
	}
	updated, err := s.students.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	return &StudentView{StudentProfile: updated, User: s.linkedUser(ctx, updated.UserID)}, nil
}

func (s *Service) DeleteStudent(ctx context.Context, id primitive.ObjectID) error {
	return s.students.Delete(ctx, id)
}

func (s *Service) ListFaculty(ctx context.Context) ([]*FacultyView, error) {
	profiles, err := s.faculty.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*FacultyView, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, &FacultyView{FacultyProfile: p, User: s.linkedUser(ctx, p.UserID)})
	}
	return items, nil
}

// CreateFaculty reuses an existing account for the email or provisions one
// with the teacher role.
func (s *Service) CreateFaculty(ctx context.Context, req CreateFacultyRequest) (*FacultyView, error) {
	email := auth.NormalizeEmail(req.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if user == nil {
		var passwordHash string
		if req.Password != "" {
			passwordHash, err = auth.HashPassword(req.Password)
			if err != nil {
				return nil, err
			}
		}
		user = &auth.User{
			ID:           primitive.NewObjectID(),
			Name:         req.Name,
			Email:        email,
			PasswordHash: passwordHash,
			Role:         auth.RoleTeacher,
			Status:       auth.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	p := &FacultyProfile{
		ID:          primitive.NewObjectID(),
		UserID:      user.ID,
		Designation: req.Designation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.DepartmentID != "" {
		deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			return nil, apperr.Validation("Invalid departmentId")
		}
		p.DepartmentID = deptID
	}
	if err := s.faculty.Create(ctx, p); err != nil {
		return nil, err
	}
	return &FacultyView{FacultyProfile: p, User: s.linkedUser(ctx, user.ID)}, nil
}

func (s *Service) UpdateFaculty(ctx context.Context, id primitive.ObjectID, req UpdateFacultyRequest) (*FacultyView, error) {
	p, err := s.faculty.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Faculty not found")
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Designation != nil {
		set["designation"] = *req.Designation
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.DepartmentID != nil {
		deptID, err := primitive.ObjectIDFromHex(*req.DepartmentID)
		if err != nil {
			return nil, apperr.Validation("Invalid departmentId")
		}
		set["department_id"] = deptID
	}
	updated, err := s.faculty.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}

	var name, email string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if name != "" || email != "" {
		if err := s.users.UpdateIdentity(ctx, updated.UserID, name, email); err != nil {
			return nil, err
		}
	}
	return &FacultyView{FacultyProfile: updated, User: s.linkedUser(ctx, updated.UserID)}, nil
}

// DeleteFaculty removes the profile and its linked account.
func (s *Service) DeleteFaculty(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.faculty.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("Faculty not found")
	}
	if err := s.faculty.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, p.UserID); err != nil {
		return err
	}
	s.logger.Info("faculty profile and linked user removed", zap.String("profile_id", id.Hex()))
	return nil
}
