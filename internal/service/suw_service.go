package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/model"
	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
)

// ── SUW module errors ──

var (
	ErrStudentsMissing = errors.New("one or more students not found")
	ErrNegativeSuw     = errors.New("suw hours must be non-negative")
)

// SuwService is the volunteer-hour (SUW) accounting module.
type SuwService interface {
	// ParticipantsForEvent returns the event's participants with their
	// current SUW balance, the payload behind the mark-suw form.
	ParticipantsForEvent(ctx context.Context, eventSlug string, actor *policy.Principal) (*dto.MarkSuwResponse, error)
	// MarkSuwForEvent adds hours to participants in bulk. Every key of
	// studentsHours must resolve before anything is written; a single
	// unknown id rejects the whole request.
	MarkSuwForEvent(ctx context.Context, eventSlug string, studentsHours map[string]int, actor *policy.Principal) (*dto.MarkSuwResponse, error)
	// AdjustStudentSuw increments or decrements one student's counter.
	// Decrements clamp at zero, the balance never goes negative.
	AdjustStudentSuw(ctx context.Context, req *dto.ManageSuwRequest, actor *policy.Principal) (*dto.StudentSuwResponse, error)
	// SearchStudents matches students by first name, last name or
	// block number; an empty query lists everyone.
	SearchStudents(ctx context.Context, query string, actor *policy.Principal) ([]dto.StudentSuwResponse, error)
}

type suwService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSuwService creates the SuwService.
func NewSuwService(repo *repository.Repository, logger *zap.Logger) SuwService {
	return &suwService{repo: repo, logger: logger}
}

// ────────────────────── ParticipantsForEvent ──────────────────────

func (s *suwService) ParticipantsForEvent(ctx context.Context, eventSlug string, actor *policy.Principal) (*dto.MarkSuwResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}

	event, err := s.repo.Event.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	students, err := s.repo.Student.ListParticipants(ctx, event.ID)
	if err != nil {
		s.logger.Error("list participants failed", zap.String("slug", eventSlug), zap.Error(err))
		return nil, err
	}

	return &dto.MarkSuwResponse{
		Event:    dto.EventRef{Name: event.Name, Slug: event.Slug},
		Students: toStudentSuwList(students),
	}, nil
}

// ────────────────────── MarkSuwForEvent ──────────────────────

func (s *suwService) MarkSuwForEvent(ctx context.Context, eventSlug string, studentsHours map[string]int, actor *policy.Principal) (*dto.MarkSuwResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}

	event, err := s.repo.Event.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	hoursByID := make(map[uint]int, len(studentsHours))
	ids := make([]uint, 0, len(studentsHours))
	for key, hours := range studentsHours {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a student id", ErrStudentsMissing, key)
		}
		if hours < 0 {
			return nil, ErrNegativeSuw
		}
		hoursByID[uint(id)] = hours
		ids = append(ids, uint(id))
	}

	// Validate the full key set up front: the bulk update is rejected
	// as a whole when any referenced student does not exist.
	students, err := s.repo.Student.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("resolve students failed", zap.Error(err))
		return nil, err
	}
	if len(students) != len(ids) {
		return nil, ErrStudentsMissing
	}

	updated := make([]model.Student, 0, len(students))
	for i := range students {
		st := &students[i]
		st.Suw += hoursByID[st.ID]
		if err := s.repo.Student.Update(ctx, st); err != nil {
			// A student deleted between validation and write is
			// skipped, not fatal.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("student vanished during suw update", zap.Uint("student_id", st.ID))
				continue
			}
			s.logger.Error("suw update failed", zap.Uint("student_id", st.ID), zap.Error(err))
			return nil, err
		}
		updated = append(updated, *st)
	}

	return &dto.MarkSuwResponse{
		Event:    dto.EventRef{Name: event.Name, Slug: event.Slug},
		Students: toStudentSuwList(updated),
	}, nil
}

// ────────────────────── AdjustStudentSuw ──────────────────────

func (s *suwService) AdjustStudentSuw(ctx context.Context, req *dto.ManageSuwRequest, actor *policy.Principal) (*dto.StudentSuwResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}
	if req.SuwHours == nil || *req.SuwHours < 0 {
		return nil, ErrNegativeSuw
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	switch req.Operation {
	case "+":
		student.Suw += *req.SuwHours
	case "-":
		student.Suw -= *req.SuwHours
		if student.Suw < 0 {
			student.Suw = 0
		}
	default:
		return nil, fmt.Errorf("unknown operation %q", req.Operation)
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("suw adjust failed", zap.Uint("student_id", student.ID), zap.Error(err))
		return nil, err
	}

	resp := toStudentSuw(student)
	return &resp, nil
}

// ────────────────────── SearchStudents ──────────────────────

func (s *suwService) SearchStudents(ctx context.Context, query string, actor *policy.Principal) ([]dto.StudentSuwResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}

	students, err := s.repo.Student.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		s.logger.Error("student search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return toStudentSuwList(students), nil
}

// ── shared student presentation helpers ──

func studentFullName(st *model.Student) string {
	if st == nil || st.User == nil {
		return ""
	}
	return strings.TrimSpace(st.User.FirstName + " " + st.User.LastName)
}

func blockLabel(b *model.Block) string {
	if b == nil {
		return ""
	}
	return strconv.Itoa(b.Number)
}

func toStudentSuw(st *model.Student) dto.StudentSuwResponse {
	return dto.StudentSuwResponse{
		ID:    st.ID,
		Name:  studentFullName(st),
		Block: blockLabel(st.Block),
		Suw:   st.Suw,
	}
}

func toStudentSuwList(students []model.Student) []dto.StudentSuwResponse {
	out := make([]dto.StudentSuwResponse, 0, len(students))
	for i := range students {
		out = append(out, toStudentSuw(&students[i]))
	}
	return out
}
