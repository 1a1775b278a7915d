package task

import (
	"context"
	"errors"
	"time"

	"github.com/nandyala/kacheri/core"
)

var ErrNotFound = errors.New("task not found")

type (
	Repository interface {
		CreateTask(ctx context.Context, tsk Task, exec ...core.DBExecutor) (Task, error)
		// QueryTasks applies AND operation on available QueryFilter fields.
		// Default ordering is due date ascending.
		QueryTasks(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Task, error)
		GetTask(ctx context.Context, id string, exec ...core.DBExecutor) (Task, error)
		UpdateTask(ctx context.Context, tsk Task, exec ...core.DBExecutor) (Task, error)
		DeleteTasksByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
		// AssigneesForMatter returns the distinct user IDs assigned to a matter's tasks.
		AssigneesForMatter(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]string, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nt NewTask, createdBy string) (Task, error) {
	now := time.Now().UTC()
	status := nt.Status
	if status == "" {
		status = StatusPending
	}
	tsk := Task{
		MatterID:   nt.MatterID,
		Title:      nt.Title,
		Details:    nt.Details,
		Status:     status,
		Priority:   nt.Priority,
		AssignedTo: nt.AssignedTo,
		DueDate:    nt.DueDate,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateTask(ctx, tsk)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Task, error) {
	return svc.repo.QueryTasks(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Task, error) {
	return svc.repo.GetTask(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ut UpdateTask) (Task, error) {
	tsk, err := svc.repo.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if ut.Title != "" {
		tsk.Title = ut.Title
	}
	if ut.Details != nil {
		tsk.Details = *ut.Details
	}
	if ut.Status != "" {
		tsk.Status = ut.Status
	}
	if ut.Priority != "" {
		tsk.Priority = ut.Priority
	}
	if ut.AssignedTo != nil {
		tsk.AssignedTo = *ut.AssignedTo
	}
	if ut.DueDate != nil {
		tsk.DueDate = *ut.DueDate
	}
	tsk.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTask(ctx, tsk)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteTasksByID(ctx, ids)
	return err
}
