package activitylog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCapacity = 100
	DefaultLimit    = 50
	SystemUser      = "System"
)

// Actions recorded by the services
const (
	ActionEmployeeAdded        = "Employee Added"
	ActionEmployeeDeleted      = "Employee Deleted"
	ActionEmployeesBulkDeleted = "Employees Bulk Deleted"
	ActionAttendanceMarked     = "Attendance Marked"
)

type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    string    `json:"user_id"`
}

// Log keeps the most recent entries in memory, newest first.
type Log struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
	now      func() time.Time
}

func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
		now:      time.Now,
	}
}

// Append records an entry and drops the oldest one beyond capacity.
// An empty userID is recorded as SystemUser.
func (l *Log) Append(action, details, userID string) Entry {
	if userID == "" {
		userID = SystemUser
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: l.now().UTC(),
		Action:    action,
		Details:   details,
		UserID:    userID,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) < l.capacity {
		l.entries = append(l.entries, Entry{})
	}
	copy(l.entries[1:], l.entries[:len(l.entries)-1])
	l.entries[0] = entry
	return entry
}

// List returns up to limit entries, newest first. limit <= 0 means DefaultLimit.
func (l *Log) List(limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]Entry, limit)
	copy(out, l.entries[:limit])
	return out
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

type userKey struct{}

// WithUser attaches the acting user to ctx.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the acting user, or SystemUser when none is set.
func UserFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userKey{}).(string); ok && userID != "" {
		return userID
	}
	return SystemUser
}
