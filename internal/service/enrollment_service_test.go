package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Dashulik10/Hostel-Organization/internal/policy"
)

// ── test helpers ──

func setupTestEnrollmentService() (EnrollmentService, *mockStore) {
	repo, store := newTestRepo()
	svc := NewEnrollmentService(repo, zap.NewNop())
	return svc, store
}

func workerPrincipal(userID uint) *policy.Principal {
	return &policy.Principal{UserID: userID, Role: "worker"}
}

func studentPrincipal(userID uint) *policy.Principal {
	return &policy.Principal{UserID: userID, Role: "student"}
}

// ── Enroll ──

func TestEnrollmentService_Enroll_Success(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, w := store.seedWorker("Anna", "Petrova")
	_, st := store.seedStudent("Ivan", "Ivanov", 3)
	store.seedEvent("Subbotnik", "subbotnik-01-05", 10, 4, w.ID)

	err := svc.Enroll(context.Background(), st.ID, "subbotnik-01-05", studentPrincipal(st.UserID))
	if err != nil {
		t.Fatalf("Enroll should succeed: %v", err)
	}
	if store.participantCount(1) != 1 {
		t.Errorf("expected 1 participant, got %d", store.participantCount(1))
	}
}

func TestEnrollmentService_Enroll_EventNotFound(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, st := store.seedStudent("Ivan", "Ivanov", 3)

	err := svc.Enroll(context.Background(), st.ID, "missing", studentPrincipal(st.UserID))
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, w := store.seedWorker("Anna", "Petrova")
	_, st := store.seedStudent("Ivan", "Ivanov", 3)
	store.seedEvent("Subbotnik", "subbotnik-01-05", 10, 4, w.ID)

	actor := studentPrincipal(st.UserID)
	if err := svc.Enroll(context.Background(), st.ID, "subbotnik-01-05", actor); err != nil {
		t.Fatalf("first Enroll should succeed: %v", err)
	}
	err := svc.Enroll(context.Background(), st.ID, "subbotnik-01-05", actor)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollmentService_Enroll_CapacityBound(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	_, s2 := store.seedStudent("Petr", "Sidorov", 2)
	ev := store.seedEvent("Concert", "koncert-05-09", 1, 2, w.ID)

	if err := svc.Enroll(context.Background(), s1.ID, ev.Slug, studentPrincipal(s1.UserID)); err != nil {
		t.Fatalf("first Enroll should succeed: %v", err)
	}
	err := svc.Enroll(context.Background(), s2.ID, ev.Slug, studentPrincipal(s2.UserID))
	if !errors.Is(err, ErrNoAvailableSlots) {
		t.Errorf("expected ErrNoAvailableSlots, got %v", err)
	}
	if n := store.participantCount(ev.ID); n != 1 {
		t.Errorf("capacity 1 event must hold 1 participant, got %d", n)
	}
}

func TestEnrollmentService_Enroll_SelfOnly(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	_, s2 := store.seedStudent("Petr", "Sidorov", 2)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	// A student cannot enroll another student.
	err := svc.Enroll(context.Background(), s2.ID, ev.Slug, studentPrincipal(s1.UserID))
	if !errors.Is(err, ErrSelfEnrollmentOnly) {
		t.Errorf("expected ErrSelfEnrollmentOnly, got %v", err)
	}

	// A worker can enroll any student.
	if err := svc.Enroll(context.Background(), s2.ID, ev.Slug, workerPrincipal(w.UserID)); err != nil {
		t.Errorf("worker enroll should succeed: %v", err)
	}
}

func TestEnrollmentService_EnrollSelf(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, w := store.seedWorker("Anna", "Petrova")
	_, st := store.seedStudent("Ivan", "Ivanov", 3)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	if err := svc.EnrollSelf(context.Background(), ev.Slug, studentPrincipal(st.UserID)); err != nil {
		t.Fatalf("EnrollSelf should succeed: %v", err)
	}
	if err := svc.EnrollSelf(context.Background(), ev.Slug, workerPrincipal(w.UserID)); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("worker without student profile should get ErrPermissionDenied, got %v", err)
	}
}

// ── BulkAddStudents ──

func TestEnrollmentService_BulkAdd_Success(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	_, s2 := store.seedStudent("Petr", "Sidorov", 2)
	ev := store.seedEvent("Subbotnik", "subbotnik-01-05", 5, 4, w.ID)

	added, err := svc.BulkAddStudents(context.Background(), ev.Slug,
		[]int{int(s1.ID), int(s2.ID)}, workerPrincipal(wu.ID))
	if err != nil {
		t.Fatalf("BulkAddStudents should succeed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
}

func TestEnrollmentService_BulkAdd_StudentForbidden(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	_, w := store.seedWorker("Anna", "Petrova")
	_, st := store.seedStudent("Ivan", "Ivanov", 1)
	ev := store.seedEvent("Subbotnik", "subbotnik-01-05", 5, 4, w.ID)

	_, err := svc.BulkAddStudents(context.Background(), ev.Slug,
		[]int{int(st.ID)}, studentPrincipal(st.UserID))
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestEnrollmentService_BulkAdd_PartialCommitOnFull(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	_, s2 := store.seedStudent("Petr", "Sidorov", 2)
	_, s3 := store.seedStudent("Oleg", "Smirnov", 3)
	ev := store.seedEvent("Concert", "koncert-05-09", 2, 2, w.ID)

	// Capacity 2, three candidates: the third aborts the call but the
	// first two stay enrolled.
	added, err := svc.BulkAddStudents(context.Background(), ev.Slug,
		[]int{int(s1.ID), int(s2.ID), int(s3.ID)}, workerPrincipal(wu.ID))
	if !errors.Is(err, ErrNoAvailableSlots) {
		t.Fatalf("expected ErrNoAvailableSlots, got %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added before abort, got %d", added)
	}
	if n := store.participantCount(ev.ID); n != 2 {
		t.Errorf("expected 2 participants kept, got %d", n)
	}
}

func TestEnrollmentService_BulkAdd_DuplicateAborts(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	_, s2 := store.seedStudent("Petr", "Sidorov", 2)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	if err := svc.Enroll(context.Background(), s1.ID, ev.Slug, workerPrincipal(wu.ID)); err != nil {
		t.Fatalf("seed enroll failed: %v", err)
	}

	// The duplicate comes first, so nothing new is added.
	added, err := svc.BulkAddStudents(context.Background(), ev.Slug,
		[]int{int(s1.ID), int(s2.ID)}, workerPrincipal(wu.ID))
	if !errors.Is(err, ErrNoAvailableSlots) {
		t.Fatalf("expected ErrNoAvailableSlots for duplicate, got %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 added, got %d", added)
	}
}

func TestEnrollmentService_BulkAdd_UnknownIDsDropped(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	added, err := svc.BulkAddStudents(context.Background(), ev.Slug,
		[]int{999, int(s1.ID)}, workerPrincipal(wu.ID))
	if err != nil {
		t.Fatalf("unknown ids should be dropped, not fatal: %v", err)
	}
	if added != 1 {
		t.Errorf("expected 1 added, got %d", added)
	}
}

func TestEnrollmentService_BulkAdd_NoStudentsFound(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	_, err := svc.BulkAddStudents(context.Background(), ev.Slug, []int{42, 43}, workerPrincipal(wu.ID))
	if !errors.Is(err, ErrNoStudentsFound) {
		t.Errorf("expected ErrNoStudentsFound, got %v", err)
	}
}

func TestEnrollmentService_BulkAdd_EmptyList(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	added, err := svc.BulkAddStudents(context.Background(), ev.Slug, []int{}, workerPrincipal(wu.ID))
	if !errors.Is(err, ErrNoStudentsFound) {
		t.Errorf("expected ErrNoStudentsFound, got %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 added, got %d", added)
	}
}

// ── MarkAttendance ──

func TestEnrollmentService_MarkAttendance_Toggle(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, st := store.seedStudent("Ivan", "Ivanov", 1)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	actor := workerPrincipal(wu.ID)
	if err := svc.Enroll(context.Background(), st.ID, ev.Slug, actor); err != nil {
		t.Fatalf("seed enroll failed: %v", err)
	}

	if err := svc.MarkAttendance(context.Background(), ev.Slug, st.ID, true, actor); err != nil {
		t.Fatalf("MarkAttendance should succeed: %v", err)
	}
	a := store.attendance[attKey(ev.ID, st.ID)]
	if !a.Attended {
		t.Error("expected attended=true")
	}

	// Free two-way toggle, resetting to false is allowed.
	if err := svc.MarkAttendance(context.Background(), ev.Slug, st.ID, false, actor); err != nil {
		t.Fatalf("unmark should succeed: %v", err)
	}
	if a.Attended {
		t.Error("expected attended=false after unmark")
	}
}

func TestEnrollmentService_MarkAttendance_NotEnrolled(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, st := store.seedStudent("Ivan", "Ivanov", 1)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	err := svc.MarkAttendance(context.Background(), ev.Slug, st.ID, true, workerPrincipal(wu.ID))
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("expected ErrEnrollmentNotFound, got %v", err)
	}
}

// ── ListAvailableStudents ──

func TestEnrollmentService_ListAvailable(t *testing.T) {
	svc, store := setupTestEnrollmentService()
	wu, w := store.seedWorker("Anna", "Petrova")
	_, s1 := store.seedStudent("Ivan", "Ivanov", 1)
	_, s2 := store.seedStudent("Petr", "Sidorov", 2)
	ev := store.seedEvent("Concert", "koncert-05-09", 10, 2, w.ID)

	actor := workerPrincipal(wu.ID)
	if err := svc.Enroll(context.Background(), s1.ID, ev.Slug, actor); err != nil {
		t.Fatalf("seed enroll failed: %v", err)
	}

	available, err := svc.ListAvailableStudents(context.Background(), ev.Slug, actor)
	if err != nil {
		t.Fatalf("ListAvailableStudents should succeed: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("expected 1 available student, got %d", len(available))
	}
	if available[0].ID != s2.ID {
		t.Errorf("expected student %d available, got %d", s2.ID, available[0].ID)
	}
	if available[0].Name != "Petr Sidorov" {
		t.Errorf("expected full name, got %q", available[0].Name)
	}
}
