package automation

import (
	"context"
	"sync"
	"time"

	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	runLockTTL     = 5 * time.Minute
	reminderKeyTTL = 36 * time.Hour
)

// releaseScript deletes the lock only while the caller still owns it.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

// RunLock serializes sweeps of the same date across processes.
//
//go:generate mockgen -source=automation_lock.go -destination=mock/automation_lock_mock.go -package=mock
type RunLock interface {
	// Acquire reports false when another owner holds key.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// ReminderLedger remembers which (student, date) pairs were reminded.
type ReminderLedger interface {
	// Reserve reports true the first time it sees the pair.
	Reserve(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error)
	Release(ctx context.Context, studentID uuid.UUID, date time.Time) error
}

func SweepLockKey(date time.Time) string {
	return "automation:sweep:" + calendar.FormatDate(date)
}

func ReminderKey(studentID uuid.UUID, date time.Time) string {
	return "automation:reminder:" + calendar.FormatDate(date) + ":" + studentID.String()
}

type redisRunLock struct {
	rdb   *redis.Client
	owner string
	ttl   time.Duration
}

// NewRedisRunLock stores owner as the lock value so only the holder can
// release it.
func NewRedisRunLock(rdb *redis.Client, owner string) RunLock {
	return &redisRunLock{rdb: rdb, owner: owner, ttl: runLockTTL}
}

func (l *redisRunLock) Acquire(ctx context.Context, key string) (bool, error) {
	return l.rdb.SetNX(ctx, key, l.owner, l.ttl).Result()
}

func (l *redisRunLock) Release(ctx context.Context, key string) error {
	return l.rdb.Eval(ctx, releaseScript, []string{key}, l.owner).Err()
}

// LocalRunLock is a process-wide lock for single-instance setups and tests.
type LocalRunLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalRunLock() *LocalRunLock {
	return &LocalRunLock{held: map[string]struct{}{}}
}

func (l *LocalRunLock) Acquire(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = struct{}{}
	return true, nil
}

func (l *LocalRunLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

type redisReminderLedger struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisReminderLedger(rdb *redis.Client) ReminderLedger {
	return &redisReminderLedger{rdb: rdb, ttl: reminderKeyTTL}
}

func (l *redisReminderLedger) Reserve(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	return l.rdb.SetNX(ctx, ReminderKey(studentID, date), "1", l.ttl).Result()
}

func (l *redisReminderLedger) Release(ctx context.Context, studentID uuid.UUID, date time.Time) error {
	return l.rdb.Del(ctx, ReminderKey(studentID, date)).Err()
}

// MemoryReminderLedger keeps reservations for the life of the process.
type MemoryReminderLedger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryReminderLedger() *MemoryReminderLedger {
	return &MemoryReminderLedger{seen: map[string]struct{}{}}
}

func (l *MemoryReminderLedger) Reserve(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ReminderKey(studentID, date)
	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = struct{}{}
	return true, nil
}

func (l *MemoryReminderLedger) Release(ctx context.Context, studentID uuid.UUID, date time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seen, ReminderKey(studentID, date))
	return nil
}
