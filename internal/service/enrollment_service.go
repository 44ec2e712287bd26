package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
)

// ── enrollment module errors ──

var (
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrNoAvailableSlots   = errors.New("no available slots")
	ErrSelfEnrollmentOnly = errors.New("students may only enroll themselves")
	ErrStudentNotFound    = errors.New("student not found")
	ErrNoStudentsFound    = errors.New("no valid students found")
	ErrEnrollmentNotFound = errors.New("student is not enrolled in this event")
)

// EnrollmentService is the enrollment ledger.
type EnrollmentService interface {
	// Enroll enrolls studentID into the event. A student actor may only
	// enroll themself; the insert is capacity-guarded atomically.
	Enroll(ctx context.Context, studentID uint, eventSlug string, actor *policy.Principal) error
	// EnrollSelf resolves the actor's own student profile and enrolls it.
	EnrollSelf(ctx context.Context, eventSlug string, actor *policy.Principal) error
	// BulkAddStudents adds students in input order, stopping at the first
	// one that cannot be added. Students added before the failure stay
	// enrolled; there is no rollback.
	BulkAddStudents(ctx context.Context, eventSlug string, studentIDs []int, actor *policy.Principal) (int, error)
	// MarkAttendance sets the attended flag; the operation is an
	// idempotent two-way toggle.
	MarkAttendance(ctx context.Context, eventSlug string, studentID uint, attended bool, actor *policy.Principal) error
	// ListAvailableStudents returns the candidate pool for bulk-add:
	// every student not yet enrolled in the event.
	ListAvailableStudents(ctx context.Context, eventSlug string, actor *policy.Principal) ([]dto.StudentSelectResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService creates the EnrollmentService.
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── Enroll ──────────────────────

func (s *enrollmentService) Enroll(ctx context.Context, studentID uint, eventSlug string, actor *policy.Principal) error {
	event, err := s.repo.Event.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("lookup event failed", zap.String("slug", eventSlug), zap.Error(err))
		return err
	}

	if policy.IsStudent(actor) {
		own, err := s.repo.Student.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if own.ID != studentID {
			return ErrSelfEnrollmentOnly
		}
	} else if !policy.IsWorker(actor) {
		return ErrPermissionDenied
	}

	return s.enrollGuarded(ctx, event.ID, studentID)
}

func (s *enrollmentService) EnrollSelf(ctx context.Context, eventSlug string, actor *policy.Principal) error {
	if !policy.IsStudent(actor) {
		return ErrPermissionDenied
	}
	own, err := s.repo.Student.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return s.Enroll(ctx, own.ID, eventSlug, actor)
}

// enrollGuarded maps the repository's transactional outcomes onto the
// service error taxonomy.
func (s *enrollmentService) enrollGuarded(ctx context.Context, eventID, studentID uint) error {
	err := s.repo.Enrollment.Enroll(ctx, eventID, studentID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicateEnrollment):
		return ErrAlreadyEnrolled
	case errors.Is(err, repository.ErrEventFull):
		return ErrNoAvailableSlots
	default:
		s.logger.Error("enroll failed",
			zap.Uint("event_id", eventID),
			zap.Uint("student_id", studentID),
			zap.Error(err))
		return err
	}
}

// ────────────────────── BulkAddStudents ──────────────────────

func (s *enrollmentService) BulkAddStudents(ctx context.Context, eventSlug string, studentIDs []int, actor *policy.Principal) (int, error) {
	if !policy.IsWorker(actor) {
		return 0, ErrPermissionDenied
	}

	event, err := s.repo.Event.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}

	ids := make([]uint, 0, len(studentIDs))
	for _, id := range studentIDs {
		ids = append(ids, uint(id))
	}
	students, err := s.repo.Student.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("resolve students failed", zap.Error(err))
		return 0, err
	}
	if len(students) == 0 {
		return 0, ErrNoStudentsFound
	}

	// Ids that resolved, keyed for input-order iteration. Unknown ids
	// are silently dropped, matching the id IN (...) resolve.
	resolved := make(map[uint]bool, len(students))
	for i := range students {
		resolved[students[i].ID] = true
	}

	// Add in input order; the first student without a free slot (or
	// already enrolled) aborts the call. Prior additions are kept —
	// deliberate partial-commit, no rollback.
	added := 0
	for _, id := range ids {
		if !resolved[id] {
			continue
		}
		if err := s.enrollGuarded(ctx, event.ID, id); err != nil {
			if errors.Is(err, ErrAlreadyEnrolled) || errors.Is(err, ErrNoAvailableSlots) {
				return added, ErrNoAvailableSlots
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// ────────────────────── MarkAttendance ──────────────────────

func (s *enrollmentService) MarkAttendance(ctx context.Context, eventSlug string, studentID uint, attended bool, actor *policy.Principal) error {
	if !policy.IsWorker(actor) {
		return ErrPermissionDenied
	}

	event, err := s.repo.Event.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.repo.Enrollment.SetAttended(ctx, event.ID, studentID, attended); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		s.logger.Error("set attended failed",
			zap.String("slug", eventSlug),
			zap.Uint("student_id", studentID),
			zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListAvailableStudents ──────────────────────

func (s *enrollmentService) ListAvailableStudents(ctx context.Context, eventSlug string, actor *policy.Principal) ([]dto.StudentSelectResponse, error) {
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

	students, err := s.repo.Student.ListAvailableForEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("list available students failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentSelectResponse, 0, len(students))
	for i := range students {
		st := &students[i]
		item := dto.StudentSelectResponse{
			ID:   st.ID,
			Name: studentFullName(st),
			Room: st.Room,
		}
		if st.Block != nil {
			item.Block = blockLabel(st.Block)
		}
		result = append(result, item)
	}
	return result, nil
}
