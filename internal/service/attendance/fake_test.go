package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	mu        sync.Mutex
	records   map[string][]attendance.Record
	errs      map[string]error
	delays    map[string]time.Duration
	calls     map[string]int
	recorded  []attendance.RecordAttendanceRequest
	recordErr error

	inFlight    int
	maxInFlight int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: map[string][]attendance.Record{},
		errs:    map[string]error{},
		delays:  map[string]time.Duration{},
		calls:   map[string]int{},
	}
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	f.mu.Lock()
	f.calls[employeeID]++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay := f.delays[employeeID]
	err := f.errs[employeeID]
	records := f.records[employeeID]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeAttendanceRepo) Record(ctx context.Context, req attendance.RecordAttendanceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, req)
	return nil
}
