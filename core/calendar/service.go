package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/task"
)

// source names reported back when a fetch degrades
const (
	sourceTasks      = "tasks"
	sourceMatters    = "matters"
	sourceHearings   = "hearings"
	sourceCauselists = "causelists"
)

type (
	// Timeline is the merged event list of one aggregation pass. Degraded
	// names the sources whose fetch failed; their records are simply
	// absent rather than failing the whole load.
	Timeline struct {
		Events   []Event   `json:"events"`
		Degraded []string  `json:"degraded,omitempty"`
		LoadedAt time.Time `json:"loaded_at"`
	}

	Service struct {
		taskRepo      task.Repository
		matterRepo    matter.Repository
		hearingRepo   hearing.Repository
		causelistRepo causelist.Repository
		logger        core.Logger

		mu     sync.Mutex
		gen    uint64
		cached *Timeline
	}
)

func NewService(
	taskRepo task.Repository,
	matterRepo matter.Repository,
	hearingRepo hearing.Repository,
	causelistRepo causelist.Repository,
	logger core.Logger,
) *Service {
	return &Service{
		taskRepo:      taskRepo,
		matterRepo:    matterRepo,
		hearingRepo:   hearingRepo,
		causelistRepo: causelistRepo,
		logger:        logger,
	}
}

// Invalidate discards the cached timeline. Any load already in flight
// becomes stale: its result is returned to its caller but not cached.
func (svc *Service) Invalidate() {
	svc.mu.Lock()
	svc.gen++
	svc.cached = nil
	svc.mu.Unlock()
}

// Load returns the current timeline, rebuilding it when needed. The four
// source fetches are issued concurrently and all joined before merging;
// a failed source degrades to an empty collection and is reported once in
// Timeline.Degraded. The merged list is applied atomically: consumers
// never observe a partially merged timeline.
func (svc *Service) Load(ctx context.Context) Timeline {
	svc.mu.Lock()
	if svc.cached != nil {
		tl := *svc.cached
		svc.mu.Unlock()
		return tl
	}
	gen := svc.gen
	svc.mu.Unlock()

	var (
		src  Sources
		errs [4]error
		wg   sync.WaitGroup
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		src.Tasks, errs[0] = svc.taskRepo.QueryTasks(ctx, nil, nil)
	}()
	go func() {
		defer wg.Done()
		src.Matters, errs[1] = svc.matterRepo.QueryMatters(ctx, nil, nil)
	}()
	go func() {
		defer wg.Done()
		src.Hearings, errs[2] = svc.hearingRepo.QueryHearings(ctx, nil, nil)
	}()
	go func() {
		defer wg.Done()
		src.Snapshots, errs[3] = svc.causelistRepo.QuerySnapshots(ctx)
	}()
	wg.Wait()

	var degraded []string
	for i, name := range []string{sourceTasks, sourceMatters, sourceHearings, sourceCauselists} {
		if errs[i] != nil {
			degraded = append(degraded, name)
			if svc.logger != nil {
				svc.logger.Error("loading "+name+" for calendar", errs[i])
			}
		}
	}

	events := Aggregate(src)
	tl := Timeline{
		Events:   events,
		Degraded: degraded,
		LoadedAt: time.Now().UTC(),
	}

	svc.mu.Lock()
	if svc.gen == gen {
		svc.cached = &tl
	}
	svc.mu.Unlock()
	return tl
}
