// Package attendancetest provides an in-memory attendance store for tests.
package attendancetest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MemoryRepository enforces the (student_id, date) uniqueness like the real
// table. Writes are not rolled back with the surrounding transaction.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[uuid.UUID]attendance.Record

	// UpdateFn, when set, runs before every Update and may fail it.
	UpdateFn func(r *attendance.Record) error

	Creates int
	Updates int
}

func NewMemoryRepository(records ...attendance.Record) *MemoryRepository {
	m := &MemoryRepository{records: make(map[uuid.UUID]attendance.Record)}
	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		m.records[r.ID] = r
	}
	return m
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (m *MemoryRepository) WithTx(tx *sql.Tx) attendance.Repository {
	return m
}

func (m *MemoryRepository) findLocked(studentID uuid.UUID, date time.Time) (attendance.Record, bool) {
	for _, r := range m.records {
		if r.StudentID == studentID && sameDay(r.Date, date) {
			return r, true
		}
	}
	return attendance.Record{}, false
}

func (m *MemoryRepository) Create(ctx context.Context, r *attendance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.findLocked(r.StudentID, r.Date); exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_student_date"}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.records[r.ID] = *r
	m.Creates++
	return nil
}

func (m *MemoryRepository) CreateIfAbsent(ctx context.Context, r *attendance.Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.findLocked(r.StudentID, r.Date); exists {
		return false, nil
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.records[r.ID] = *r
	m.Creates++
	return true, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return &attendance.Record{}, gorm.ErrRecordNotFound
	}
	r, ok := m.records[uid]
	if !ok {
		return &attendance.Record{}, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *MemoryRepository) FindByIDForUpdate(ctx context.Context, id string) (*attendance.Record, error) {
	return m.FindByID(ctx, id)
}

func (m *MemoryRepository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.findLocked(studentID, date)
	if !ok {
		return &attendance.Record{}, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *MemoryRepository) FindByStudentAndDateForUpdate(ctx context.Context, studentID uuid.UUID, date time.Time) (*attendance.Record, error) {
	return m.FindByStudentAndDate(ctx, studentID, date)
}

func (m *MemoryRepository) FindAllByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, r := range m.records {
		if sameDay(r.Date, date) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID.String() < out[j].StudentID.String() })
	return out, nil
}

func (m *MemoryRepository) CountMonthly(ctx context.Context, from, to time.Time) ([]attendance.MonthlyCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStudent := map[uuid.UUID]*attendance.MonthlyCount{}
	for _, r := range m.records {
		if r.Date.Before(from) || !r.Date.Before(to) {
			continue
		}
		c, ok := byStudent[r.StudentID]
		if !ok {
			c = &attendance.MonthlyCount{StudentID: r.StudentID}
			byStudent[r.StudentID] = c
		}
		if r.SubStatus == attendance.SubStatusLate {
			c.LateCount++
		}
		if r.Status == attendance.StatusYomLoBaLi {
			c.YomCount++
		}
	}
	out := make([]attendance.MonthlyCount, 0, len(byStudent))
	for _, c := range byStudent {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MemoryRepository) Update(ctx context.Context, r *attendance.Record) error {
	if m.UpdateFn != nil {
		if err := m.UpdateFn(r); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.records[r.ID] = *r
	m.Updates++
	return nil
}

// Get returns the stored record for (student, date).
func (m *MemoryRepository) Get(studentID uuid.UUID, date time.Time) (attendance.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(studentID, date)
}

// All returns every stored record ordered by student then date.
func (m *MemoryRepository) All() []attendance.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]attendance.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID.String() < out[j].StudentID.String()
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
