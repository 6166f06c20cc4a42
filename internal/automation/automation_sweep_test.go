package automation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/attendance/attendancetest"
	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/audit/audittest"
	"github.com/eliezerb2/presence/internal/automation"
	automationerrors "github.com/eliezerb2/presence/internal/automation/errors"
	calendarMock "github.com/eliezerb2/presence/internal/calendar/mock"
	"github.com/eliezerb2/presence/internal/notification"
	notificationMock "github.com/eliezerb2/presence/internal/notification/mock"
	"github.com/eliezerb2/presence/internal/permanentabsence"
	permanentabsenceMock "github.com/eliezerb2/presence/internal/permanentabsence/mock"
	"github.com/eliezerb2/presence/internal/student"
	studentMock "github.com/eliezerb2/presence/internal/student/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 19, hour, minute, 0, 0, time.UTC)
}

type sweepDeps struct {
	sqlMock    sqlmock.Sqlmock
	repo       *attendancetest.MemoryRepository
	calendar   *calendarMock.MockResolver
	absences   *permanentabsenceMock.MockResolver
	students   *studentMock.MockDirectory
	dispatcher *notificationMock.MockDispatcher
	audit      *audittest.MemoryRecorder
	lock       *automation.LocalRunLock
	sweeper    *automation.DailySweeper
}

func setupSweepTest(t *testing.T, records ...attendance.Record) *sweepDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqlMock.MatchExpectationsInOrder(false)

	deps := &sweepDeps{
		sqlMock:    sqlMock,
		repo:       attendancetest.NewMemoryRepository(records...),
		calendar:   calendarMock.NewMockResolver(ctrl),
		absences:   permanentabsenceMock.NewMockResolver(ctrl),
		students:   studentMock.NewMockDirectory(ctrl),
		dispatcher: notificationMock.NewMockDispatcher(ctrl),
		audit:      audittest.NewMemoryRecorder(),
		lock:       automation.NewLocalRunLock(),
	}
	deps.sweeper = automation.NewSweeper(
		db,
		deps.repo,
		deps.calendar,
		deps.absences,
		deps.students,
		deps.audit,
		deps.dispatcher,
		attendance.DefaultSchedule(time.UTC),
	).
		WithRunLock(deps.lock).
		WithMetrics(automation.NewMetrics(prometheus.NewRegistry()))
	return deps
}

// schoolDay primes the collaborators every school-day sweep reads.
func (d *sweepDeps) schoolDay(roster ...student.Student) {
	d.calendar.EXPECT().IsSchoolDay(gomock.Any(), monday).Return(true).AnyTimes()
	d.absences.EXPECT().ResolveForDate(gomock.Any(), monday, gomock.Any()).
		Return(permanentabsence.ResolveResult{Date: "2026-10-19", SchoolDay: true}, nil).
		AnyTimes()
	d.students.EXPECT().ListActive(gomock.Any()).Return(roster, nil).AnyTimes()
}

func (d *sweepDeps) expectTx(commits, rollbacks int) {
	for i := 0; i < commits; i++ {
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
	}
	for i := 0; i < rollbacks; i++ {
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
	}
}

func newStudent(first string) student.Student {
	return student.Student{ID: uuid.New(), FirstName: first, LastName: "Levi", Phone: "052-0000000", Status: student.StatusActive}
}

func record(studentID uuid.UUID, mutate func(r *attendance.Record)) attendance.Record {
	r := attendance.NewRecord(studentID, monday)
	if mutate != nil {
		mutate(r)
	}
	return *r
}

func TestRunDailySweep_NonSchoolDay(t *testing.T) {
	absent, present := newStudent("Absent"), newStudent("Present")
	checkIn := at(8, 10)
	seeded := []attendance.Record{
		record(absent.ID, nil),
		record(present.ID, func(r *attendance.Record) {
			r.Status = attendance.StatusPresent
			r.ReportedBy = attendance.ReportedByStudent
			r.CheckInTime = &checkIn
		}),
	}
	deps := setupSweepTest(t, seeded...)
	deps.calendar.EXPECT().IsSchoolDay(gomock.Any(), monday).Return(false)

	// 16:30 is past every window; on a holiday none of them may fire.
	res, err := deps.sweeper.RunDailySweep(context.Background(), monday, at(16, 30))

	assert.NoError(t, err)
	assert.False(t, res.SchoolDay)
	assert.Zero(t, res.Mutations())
	for _, want := range seeded {
		got, ok := deps.repo.Get(want.StudentID, monday)
		assert.True(t, ok)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("record changed on a non-school day (-want +got):\n%s", diff)
		}
	}
	assert.Len(t, deps.repo.All(), 2)
	assert.Zero(t, deps.repo.Updates)
	assert.Empty(t, deps.audit.Entries())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunDailySweep_YomLoBaLiAndIdempotence(t *testing.T) {
	ctx := context.Background()
	absent, present, locked := newStudent("Absent"), newStudent("Present"), newStudent("Locked")

	lockedAt := at(8, 0)
	deps := setupSweepTest(t,
		record(present.ID, func(r *attendance.Record) {
			checkIn := at(8, 15)
			r.Status = attendance.StatusPresent
			r.ReportedBy = attendance.ReportedByStudent
			r.CheckInTime = &checkIn
		}),
		record(locked.ID, func(r *attendance.Record) {
			r.OverrideLocked = true
			r.OverrideLockedAt = &lockedAt
			r.ReportedBy = attendance.ReportedByManager
		}),
	)
	deps.schoolDay(absent, present, locked)

	// seed absent (commit), seed others (rollback), absent -> YOM (commit)
	deps.expectTx(2, 2)
	first, err := deps.sweeper.RunDailySweep(ctx, monday, at(10, 45))

	assert.NoError(t, err)
	assert.True(t, first.SchoolDay)
	assert.Equal(t, 1, first.Seeded)
	assert.Equal(t, 1, first.Transitions["yom_lo_ba_li"])
	assert.Equal(t, 0, first.Transitions["late"])
	assert.Equal(t, []string{audit.ActionSeedNotReported, audit.ActionAutoYomLoBaLi}, deps.audit.Actions())

	got, _ := deps.repo.Get(absent.ID, monday)
	assert.Equal(t, attendance.StatusYomLoBaLi, got.Status)
	assert.Equal(t, attendance.SubStatusNone, got.SubStatus)
	assert.Equal(t, attendance.ReportedByAuto, got.ReportedBy)

	stillLocked, _ := deps.repo.Get(locked.ID, monday)
	assert.Equal(t, attendance.StatusNotReported, stillLocked.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

	state := deps.repo.All()
	deps.expectTx(0, 3)
	second, err := deps.sweeper.RunDailySweep(ctx, monday, at(10, 45))

	assert.NoError(t, err)
	assert.Zero(t, second.Mutations())
	assert.Empty(t, cmp.Diff(state, deps.repo.All()))
	assert.Len(t, deps.audit.Entries(), 2)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunDailySweep_Windows(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantStatus attendance.Status
		wantSub    attendance.SubStatus
		wantAudit  string
	}{
		{"before late", at(9, 59), attendance.StatusNotReported, attendance.SubStatusNone, ""},
		{"late boundary", at(10, 0), attendance.StatusPresent, attendance.SubStatusLate, audit.ActionAutoLate},
		{"inside late window", at(10, 29), attendance.StatusPresent, attendance.SubStatusLate, audit.ActionAutoLate},
		{"yom boundary", at(10, 30), attendance.StatusYomLoBaLi, attendance.SubStatusNone, audit.ActionAutoYomLoBaLi},
		{"after auto close", at(16, 30), attendance.StatusYomLoBaLi, attendance.SubStatusNone, audit.ActionAutoYomLoBaLi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStudent("Noam")
			deps := setupSweepTest(t, record(st.ID, nil))
			deps.schoolDay(st)
			deps.dispatcher.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			commits := 0
			if tt.wantAudit != "" {
				commits = 1
			}
			deps.expectTx(commits, 1)

			_, err := deps.sweeper.RunDailySweep(context.Background(), monday, tt.now)

			assert.NoError(t, err)
			got, _ := deps.repo.Get(st.ID, monday)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantSub, got.SubStatus)
			if tt.wantAudit == "" {
				assert.Empty(t, deps.audit.Entries())
			} else {
				assert.Equal(t, []string{tt.wantAudit}, deps.audit.Actions())
			}
			if tt.wantSub == attendance.SubStatusLate {
				assert.Equal(t, tt.now, *got.CheckInTime)
			}
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestRunDailySweep_AutoCloseRespectsLock(t *testing.T) {
	leftByManager, stayed := newStudent("Maya"), newStudent("Omer")
	lockedAt, leftAt, checkIn := at(14, 0), at(14, 0), at(8, 0)

	managerRecord := record(leftByManager.ID, func(r *attendance.Record) {
		r.Status = attendance.StatusLeft
		r.ReportedBy = attendance.ReportedByManager
		r.CheckInTime = &checkIn
		r.CheckOutTime = &leftAt
		r.ClosedReason = attendance.ClosedReasonManual
		r.OverrideLocked = true
		r.OverrideLockedAt = &lockedAt
	})
	deps := setupSweepTest(t,
		managerRecord,
		record(stayed.ID, func(r *attendance.Record) {
			r.Status = attendance.StatusPresent
			r.ReportedBy = attendance.ReportedByStudent
			r.CheckInTime = &checkIn
		}),
	)
	deps.schoolDay(leftByManager, stayed)
	deps.expectTx(1, 2)

	res, err := deps.sweeper.RunDailySweep(context.Background(), monday, at(16, 0))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Transitions["auto_close"])

	unchanged, _ := deps.repo.Get(leftByManager.ID, monday)
	assert.Empty(t, cmp.Diff(managerRecord, unchanged))

	closed, _ := deps.repo.Get(stayed.ID, monday)
	assert.Equal(t, attendance.StatusLeft, closed.Status)
	assert.Equal(t, attendance.SubStatusAutoClosed, closed.SubStatus)
	assert.Equal(t, attendance.ClosedReasonAuto16, closed.ClosedReason)
	assert.Equal(t, at(16, 0), *closed.CheckOutTime)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunDailySweep_PermanentAbsenceBeforeWindows(t *testing.T) {
	exempt, regular := newStudent("Exempt"), newStudent("Regular")
	deps := setupSweepTest(t)
	deps.calendar.EXPECT().IsSchoolDay(gomock.Any(), monday).Return(true)
	deps.students.EXPECT().ListActive(gomock.Any()).Return([]student.Student{exempt, regular}, nil)
	deps.absences.EXPECT().ResolveForDate(gomock.Any(), monday, at(10, 45)).
		DoAndReturn(func(ctx context.Context, date, now time.Time) (permanentabsence.ResolveResult, error) {
			r := record(exempt.ID, func(r *attendance.Record) { r.Status = attendance.StatusPermanentAbsence })
			_, err := deps.repo.CreateIfAbsent(ctx, &r)
			return permanentabsence.ResolveResult{Date: "2026-10-19", SchoolDay: true, Created: 1}, err
		})

	// seed regular (commit), seed exempt (rollback), regular -> YOM (commit)
	deps.expectTx(2, 1)

	res, err := deps.sweeper.RunDailySweep(context.Background(), monday, at(10, 45))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.PermanentAbsence)
	got, _ := deps.repo.Get(exempt.ID, monday)
	assert.Equal(t, attendance.StatusPermanentAbsence, got.Status)
	other, _ := deps.repo.Get(regular.ID, monday)
	assert.Equal(t, attendance.StatusYomLoBaLi, other.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunDailySweep_Reminders(t *testing.T) {
	ctx := context.Background()

	t.Run("sent once per student and date", func(t *testing.T) {
		waiting, arrived := newStudent("Waiting"), newStudent("Arrived")
		checkIn := at(8, 0)
		deps := setupSweepTest(t,
			record(waiting.ID, nil),
			record(arrived.ID, func(r *attendance.Record) {
				r.Status = attendance.StatusPresent
				r.CheckInTime = &checkIn
			}),
		)
		deps.schoolDay(waiting, arrived)
		deps.dispatcher.EXPECT().
			Notify(gomock.Any(), notification.KindAttendanceReminder, gomock.Len(1), gomock.Any()).
			DoAndReturn(func(ctx context.Context, kind notification.Kind, to []notification.Recipient, payload map[string]string) error {
				assert.Equal(t, waiting.ID.String(), payload["student_id"])
				assert.Equal(t, "2026-10-19", payload["date"])
				assert.Equal(t, notification.RoleStudent, to[0].Role)
				return nil
			})
		deps.expectTx(0, 4)

		first, err := deps.sweeper.RunDailySweep(ctx, monday, at(9, 30))
		assert.NoError(t, err)
		assert.Equal(t, 1, first.Reminded)

		second, err := deps.sweeper.RunDailySweep(ctx, monday, at(9, 45))
		assert.NoError(t, err)
		assert.Zero(t, second.Reminded)
		assert.Empty(t, deps.audit.Entries())
	})

	t.Run("outside the window", func(t *testing.T) {
		st := newStudent("Early")
		deps := setupSweepTest(t, record(st.ID, nil))
		deps.schoolDay(st)
		deps.expectTx(0, 1)

		res, err := deps.sweeper.RunDailySweep(ctx, monday, at(9, 29))
		assert.NoError(t, err)
		assert.Zero(t, res.Reminded)
	})

	t.Run("dispatch failure is audited and retried", func(t *testing.T) {
		st := newStudent("Retry")
		deps := setupSweepTest(t, record(st.ID, nil))
		deps.schoolDay(st)
		gomock.InOrder(
			deps.dispatcher.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("gateway timeout")),
			deps.dispatcher.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		deps.expectTx(0, 2)

		first, err := deps.sweeper.RunDailySweep(ctx, monday, at(9, 35))
		assert.NoError(t, err)
		assert.Zero(t, first.Reminded)
		entries := deps.audit.ByAction(audit.ActionReminderDispatchError)
		assert.Len(t, entries, 1)
		assert.Equal(t, audit.ActorAuto, entries[0].Actor)

		second, err := deps.sweeper.RunDailySweep(ctx, monday, at(9, 40))
		assert.NoError(t, err)
		assert.Equal(t, 1, second.Reminded)
	})
}

func TestRunDailySweep_FailingRecordDoesNotStopSweep(t *testing.T) {
	broken, fine := newStudent("Broken"), newStudent("Fine")
	brokenRecord := record(broken.ID, nil)
	deps := setupSweepTest(t, brokenRecord, record(fine.ID, nil))
	deps.schoolDay(broken, fine)
	deps.repo.UpdateFn = func(r *attendance.Record) error {
		if r.ID == brokenRecord.ID {
			return errors.New("deadlock detected")
		}
		return nil
	}
	// seeds roll back, broken rolls back, fine commits
	deps.expectTx(1, 3)

	res, err := deps.sweeper.RunDailySweep(context.Background(), monday, at(11, 0))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Transitions["yom_lo_ba_li"])

	failures := deps.audit.ByAction(audit.ActionSweepRecordError)
	assert.Len(t, failures, 1)
	assert.Equal(t, brokenRecord.ID.String(), failures[0].EntityID)
	assert.Equal(t, "deadlock detected", failures[0].Detail)

	got, _ := deps.repo.Get(fine.ID, monday)
	assert.Equal(t, attendance.StatusYomLoBaLi, got.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunDailySweep_Aborts(t *testing.T) {
	t.Run("sweep already running", func(t *testing.T) {
		deps := setupSweepTest(t)
		ok, _ := deps.lock.Acquire(context.Background(), automation.SweepLockKey(monday))
		assert.True(t, ok)

		_, err := deps.sweeper.RunDailySweep(context.Background(), monday, at(10, 0))
		assert.ErrorIs(t, err, automationerrors.ErrSweepInProgress)
	})

	t.Run("permanent absence resolution fails", func(t *testing.T) {
		deps := setupSweepTest(t)
		deps.calendar.EXPECT().IsSchoolDay(gomock.Any(), monday).Return(true)
		deps.absences.EXPECT().ResolveForDate(gomock.Any(), monday, gomock.Any()).
			Return(permanentabsence.ResolveResult{}, errors.New("connection reset"))

		_, err := deps.sweeper.RunDailySweep(context.Background(), monday, at(10, 0))
		assert.Error(t, err)
		assert.Empty(t, deps.repo.All())

		// The lock is released for the next run.
		ok, _ := deps.lock.Acquire(context.Background(), automation.SweepLockKey(monday))
		assert.True(t, ok)
	})
}
