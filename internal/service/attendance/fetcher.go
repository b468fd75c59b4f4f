package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency    = 8
	defaultRequestTimeout = 10 * time.Second
)

// Failure reasons reported in attendance.FetchFailure
const (
	ReasonTimeout  = "timeout"
	ReasonCanceled = "canceled"
	ReasonError    = "error"
)

type FetcherImpl struct {
	repo           attendance.AttendanceRepository
	concurrency    int
	requestTimeout time.Duration
	metrics        *metrics.Metrics
}

func NewFetcher(repo attendance.AttendanceRepository, concurrency int, requestTimeout time.Duration, m *metrics.Metrics) attendance.Fetcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &FetcherImpl{
		repo:           repo,
		concurrency:    concurrency,
		requestTimeout: requestTimeout,
		metrics:        m,
	}
}

type fetchResult struct {
	records []attendance.Record
	err     error
	settled bool
}

// Fetch implements attendance.Fetcher.
// A failed fetch never fails the batch: the employee gets no records and is
// listed in Collection.Failed.
func (f *FetcherImpl) Fetch(ctx context.Context, employees []employee.Employee) attendance.Collection {
	ids := distinctIDs(employees)
	f.metrics.ObserveFetchBatch(len(ids))

	// indexed by position so the map is only built after Wait
	results := make([]fetchResult, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		i, id := i, id // per-iteration copies; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			reqCtx, cancel := context.WithTimeout(gCtx, f.requestTimeout)
			defer cancel()

			records, err := f.repo.ListByEmployee(reqCtx, id)
			results[i] = fetchResult{records: records, err: err, settled: true}
			return nil
		})
	}
	_ = g.Wait()

	collection := attendance.Collection{
		ByEmployee: make(map[string][]attendance.Record, len(ids)),
		Failed:     []attendance.FetchFailure{},
	}
	for i, id := range ids {
		res := results[i]
		if !res.settled {
			res.err = ctx.Err()
			if res.err == nil {
				res.err = context.Canceled
			}
		}

		if res.err != nil {
			reason := failureReason(res.err)
			slog.Warn("Failed to fetch attendance, treating as no records",
				"employee_id", id, "reason", reason, "error", res.err)
			f.metrics.IncFetchFailure(reason)
			collection.ByEmployee[id] = []attendance.Record{}
			collection.Failed = append(collection.Failed, attendance.FetchFailure{EmployeeID: id, Reason: reason})
			continue
		}

		if res.records == nil {
			res.records = []attendance.Record{}
		}
		collection.ByEmployee[id] = res.records
	}
	return collection
}

func distinctIDs(employees []employee.Employee) []string {
	seen := make(map[string]struct{}, len(employees))
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		if _, ok := seen[emp.EmployeeID]; ok {
			continue
		}
		seen[emp.EmployeeID] = struct{}{}
		ids = append(ids, emp.EmployeeID)
	}
	return ids
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	default:
		return ReasonError
	}
}
