package student

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	studenterrors "github.com/eliezerb2/presence/internal/student/errors"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory is the read side the attendance engine depends on.
//
//go:generate mockgen -source=student_service.go -destination=mock/student_service_mock.go -package=mock
type Directory interface {
	ListActive(ctx context.Context) ([]Student, error)
	Get(ctx context.Context, id uuid.UUID) (*Student, error)
}

type Service interface {
	Directory
	Create(ctx context.Context, req CreateStudentRequest) (StudentResponse, error)
	List(ctx context.Context, status string) ([]StudentResponse, error)
	GetByID(ctx context.Context, id string) (StudentResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (StudentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("student.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("student.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) ListActive(ctx context.Context) ([]Student, error) {
	return s.repo.FindAll(ctx, StatusActive)
}

// Get returns ErrStudentNotFound for an unknown id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Student, error) {
	st, err := s.repo.FindByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, studenterrors.ErrStudentNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *service) Create(ctx context.Context, req CreateStudentRequest) (StudentResponse, error) {
	number := strings.TrimSpace(req.StudentNumber)
	if number == "" {
		return StudentResponse{}, apperror.RequiredField("student_number")
	}

	st := &Student{
		ID:            uuid.New(),
		StudentNumber: number,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Phone:         strings.TrimSpace(req.Phone),
		Status:        StatusActive,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		if _, dup := connection.UniqueViolation(err); dup {
			return StudentResponse{}, studenterrors.ErrStudentNumberExists
		}
		s.logger.Error("create student persist failed", zap.Error(err))
		return StudentResponse{}, err
	}

	s.logger.Info("student created", zap.String("student_id", st.ID.String()))
	return mapToResponse(*st), nil
}

func (s *service) List(ctx context.Context, status string) ([]StudentResponse, error) {
	students, err := s.repo.FindAll(ctx, strings.ToUpper(status))
	if err != nil {
		return nil, err
	}
	resp := make([]StudentResponse, 0, len(students))
	for _, st := range students {
		resp = append(resp, mapToResponse(st))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StudentResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return StudentResponse{}, apperror.InvalidField("id")
	}
	st, err := s.Get(ctx, uid)
	if err != nil {
		return StudentResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (StudentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StudentResponse{}, apperror.InvalidField("id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentResponse{}, studenterrors.ErrStudentNotFound
		}
		return StudentResponse{}, err
	}

	st, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StudentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StudentResponse{}, err
	}

	s.logger.Info("student status updated", zap.String("student_id", id), zap.String("status", req.Status))
	return mapToResponse(*st), nil
}

func mapToResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:            s.ID.String(),
		StudentNumber: s.StudentNumber,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Phone:         s.Phone,
		Status:        s.Status,
	}
}
