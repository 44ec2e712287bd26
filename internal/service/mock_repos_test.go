package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
)

// mockStore is shared in-memory state behind every mock repository, so
// cross-entity queries (search joins, capacity counts) behave like the
// real database.
type mockStore struct {
	users      map[uint]*model.User
	students   map[uint]*model.Student
	workers    map[uint]*model.Worker
	blocks     map[uint]*model.Block
	events     map[uint]*model.Event
	attendance map[string]*model.EventAttendance

	nextUserID    uint
	nextStudentID uint
	nextWorkerID  uint
	nextBlockID   uint
	nextEventID   uint
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      make(map[uint]*model.User),
		students:   make(map[uint]*model.Student),
		workers:    make(map[uint]*model.Worker),
		blocks:     make(map[uint]*model.Block),
		events:     make(map[uint]*model.Event),
		attendance: make(map[string]*model.EventAttendance),
	}
}

func attKey(eventID, studentID uint) string {
	return fmt.Sprintf("%d:%d", eventID, studentID)
}

func (s *mockStore) participantCount(eventID uint) int64 {
	var n int64
	for _, a := range s.attendance {
		if a.EventID == eventID {
			n++
		}
	}
	return n
}

// attachStudent fills the User and Block associations the way the real
// repository's preloads do.
func (s *mockStore) attachStudent(st *model.Student) model.Student {
	out := *st
	out.User = s.users[st.UserID]
	if st.BlockID != nil {
		out.Block = s.blocks[*st.BlockID]
	}
	return out
}

// newTestRepo builds a Repository backed entirely by the shared store.
func newTestRepo() (*repository.Repository, *mockStore) {
	store := newMockStore()
	return &repository.Repository{
		User:       &mockUserRepo{store: store},
		Student:    &mockStudentRepo{store: store},
		Worker:     &mockWorkerRepo{store: store},
		Block:      &mockBlockRepo{store: store},
		Event:      &mockEventRepo{store: store},
		Enrollment: &mockEnrollmentRepo{store: store},
	}, store
}

// ── seed helpers ──

func (s *mockStore) seedWorker(firstName, lastName string) (*model.User, *model.Worker) {
	s.nextUserID++
	u := &model.User{
		ID:        s.nextUserID,
		Username:  strings.ToLower(firstName) + strconv.Itoa(int(s.nextUserID)),
		FirstName: firstName,
		LastName:  lastName,
		Role:      model.RoleWorker,
	}
	s.users[u.ID] = u
	s.nextWorkerID++
	w := &model.Worker{ID: s.nextWorkerID, UserID: u.ID, Post: model.PostStudCouncil}
	s.workers[w.ID] = w
	return u, w
}

func (s *mockStore) seedStudent(firstName, lastName string, blockNumber int) (*model.User, *model.Student) {
	s.nextUserID++
	u := &model.User{
		ID:        s.nextUserID,
		Username:  strings.ToLower(firstName) + strconv.Itoa(int(s.nextUserID)),
		FirstName: firstName,
		LastName:  lastName,
		Role:      model.RoleStudent,
	}
	s.users[u.ID] = u

	var blockID *uint
	for _, b := range s.blocks {
		if b.Number == blockNumber {
			id := b.ID
			blockID = &id
		}
	}
	if blockID == nil {
		s.nextBlockID++
		b := &model.Block{ID: s.nextBlockID, Number: blockNumber}
		s.blocks[b.ID] = b
		id := b.ID
		blockID = &id
	}

	s.nextStudentID++
	st := &model.Student{ID: s.nextStudentID, UserID: u.ID, BlockID: blockID, Room: model.RoomA}
	s.students[st.ID] = st
	return u, st
}

func (s *mockStore) seedEvent(name string, slug string, places, suwHours int, authorID uint) *model.Event {
	s.nextEventID++
	e := &model.Event{
		ID:               s.nextEventID,
		Name:             name,
		Slug:             slug,
		StartDate:        time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		NumberOfPlaces:   places,
		NumberOfSuwHours: suwHours,
		AuthorID:         authorID,
	}
	s.events[e.ID] = e
	return e
}

func seedAttendance(eventID, studentID uint) *model.EventAttendance {
	return &model.EventAttendance{EventID: eventID, StudentID: studentID}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	store *mockStore
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		m.store.nextUserID++
		user.ID = m.store.nextUserID
	}
	m.store.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.store.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.store.users[user.ID] = user
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	store *mockStore
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == 0 {
		m.store.nextStudentID++
		student.ID = m.store.nextStudentID
	}
	m.store.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id uint) (*model.Student, error) {
	if st, ok := m.store.students[id]; ok {
		full := m.store.attachStudent(st)
		return &full, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID uint) (*model.Student, error) {
	for _, st := range m.store.students {
		if st.UserID == userID {
			full := m.store.attachStudent(st)
			return &full, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByIDs(_ context.Context, ids []uint) ([]model.Student, error) {
	var result []model.Student
	for _, id := range ids {
		if st, ok := m.store.students[id]; ok {
			result = append(result, m.store.attachStudent(st))
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	if _, ok := m.store.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *student
	stored.User = nil
	stored.Block = nil
	m.store.students[student.ID] = &stored
	return nil
}

func (m *mockStudentRepo) Search(_ context.Context, query string) ([]model.Student, error) {
	q := strings.ToLower(query)
	var result []model.Student
	for _, st := range m.store.students {
		full := m.store.attachStudent(st)
		if q == "" {
			result = append(result, full)
			continue
		}
		first := strings.ToLower(full.User.FirstName)
		last := strings.ToLower(full.User.LastName)
		block := ""
		if full.Block != nil {
			block = strconv.Itoa(full.Block.Number)
		}
		if strings.Contains(first, q) || strings.Contains(last, q) || strings.Contains(block, q) {
			result = append(result, full)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) ListAvailableForEvent(_ context.Context, eventID uint) ([]model.Student, error) {
	var result []model.Student
	for _, st := range m.store.students {
		if _, enrolled := m.store.attendance[attKey(eventID, st.ID)]; !enrolled {
			result = append(result, m.store.attachStudent(st))
		}
	}
	return result, nil
}

func (m *mockStudentRepo) ListParticipants(_ context.Context, eventID uint) ([]model.Student, error) {
	var result []model.Student
	for _, st := range m.store.students {
		if _, enrolled := m.store.attendance[attKey(eventID, st.ID)]; enrolled {
			result = append(result, m.store.attachStudent(st))
		}
	}
	return result, nil
}

// ── Mock WorkerRepository ──

type mockWorkerRepo struct {
	store *mockStore
}

func (m *mockWorkerRepo) Create(_ context.Context, worker *model.Worker) error {
	if worker.ID == 0 {
		m.store.nextWorkerID++
		worker.ID = m.store.nextWorkerID
	}
	m.store.workers[worker.ID] = worker
	return nil
}

func (m *mockWorkerRepo) GetByID(_ context.Context, id uint) (*model.Worker, error) {
	if w, ok := m.store.workers[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) GetByUserID(_ context.Context, userID uint) (*model.Worker, error) {
	for _, w := range m.store.workers {
		if w.UserID == userID {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock BlockRepository ──

type mockBlockRepo struct {
	store *mockStore
}

func (m *mockBlockRepo) Create(_ context.Context, block *model.Block) error {
	if block.ID == 0 {
		m.store.nextBlockID++
		block.ID = m.store.nextBlockID
	}
	m.store.blocks[block.ID] = block
	return nil
}

func (m *mockBlockRepo) GetByID(_ context.Context, id uint) (*model.Block, error) {
	if b, ok := m.store.blocks[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockRepo) GetByNumber(_ context.Context, number int) (*model.Block, error) {
	for _, b := range m.store.blocks {
		if b.Number == number {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockRepo) List(_ context.Context) ([]model.Block, error) {
	var result []model.Block
	for _, b := range m.store.blocks {
		result = append(result, *b)
	}
	return result, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	store *mockStore
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.ID == 0 {
		m.store.nextEventID++
		event.ID = m.store.nextEventID
	}
	m.store.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetBySlug(_ context.Context, slug string) (*model.Event, error) {
	for _, e := range m.store.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, e := range m.store.events {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	if _, ok := m.store.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.store.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id uint) error {
	delete(m.store.events, id)
	for key, a := range m.store.attendance {
		if a.EventID == id {
			delete(m.store.attendance, key)
		}
	}
	return nil
}

func (m *mockEventRepo) List(_ context.Context, filters *repository.EventListFilters) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.store.events {
		if filters != nil {
			if filters.Search != "" &&
				!strings.Contains(strings.ToLower(e.Name), strings.ToLower(filters.Search)) {
				continue
			}
			if filters.StartDate != nil {
				y1, m1, d1 := e.StartDate.Date()
				y2, m2, d2 := filters.StartDate.Date()
				if y1 != y2 || m1 != m2 || d1 != d2 {
					continue
				}
			}
			if filters.ActiveOnly && m.store.participantCount(e.ID) >= int64(e.NumberOfPlaces) {
				continue
			}
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEventRepo) CountParticipants(_ context.Context, eventID uint) (int64, error) {
	return m.store.participantCount(eventID), nil
}

func (m *mockEventRepo) BatchCountParticipants(_ context.Context, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))
	for _, id := range eventIDs {
		counts[id] = m.store.participantCount(id)
	}
	return counts, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	store *mockStore
}

func (m *mockEnrollmentRepo) Enroll(_ context.Context, eventID, studentID uint) error {
	event, ok := m.store.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if _, dup := m.store.attendance[attKey(eventID, studentID)]; dup {
		return repository.ErrDuplicateEnrollment
	}
	if m.store.participantCount(eventID) >= int64(event.NumberOfPlaces) {
		return repository.ErrEventFull
	}
	m.store.attendance[attKey(eventID, studentID)] = &model.EventAttendance{
		EventID:   eventID,
		StudentID: studentID,
	}
	return nil
}

func (m *mockEnrollmentRepo) Get(_ context.Context, eventID, studentID uint) (*model.EventAttendance, error) {
	if a, ok := m.store.attendance[attKey(eventID, studentID)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) Exists(_ context.Context, eventID, studentID uint) (bool, error) {
	_, ok := m.store.attendance[attKey(eventID, studentID)]
	return ok, nil
}

func (m *mockEnrollmentRepo) SetAttended(_ context.Context, eventID, studentID uint, attended bool) error {
	a, ok := m.store.attendance[attKey(eventID, studentID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Attended = attended
	return nil
}

func (m *mockEnrollmentRepo) ListByEvent(_ context.Context, eventID uint) ([]model.EventAttendance, error) {
	var result []model.EventAttendance
	for _, a := range m.store.attendance {
		if a.EventID == eventID {
			row := *a
			if st, ok := m.store.students[a.StudentID]; ok {
				full := m.store.attachStudent(st)
				row.Student = &full
			}
			result = append(result, row)
		}
	}
	return result, nil
}
