package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/task"
)

type taskRepository struct {
	db *taskTable
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) *taskRepository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) query() []task.Task {
	tasks := make([]task.Task, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tasks = append(tasks, *t)
	}
	return tasks
}

func (repo *taskRepository) CreateTask(ctx context.Context, tsk task.Task, exec ...core.DBExecutor) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tsk.ID = uuid.New().String()
	repo.db.table[tsk.ID] = &tsk
	return tsk, nil
}

func (repo *taskRepository) QueryTasks(ctx context.Context, filter *task.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := repo.query()

	if filter != nil {
		if filter.MatterID != "" {
			var filtered []task.Task
			for _, t := range tasks {
				if t.MatterID == filter.MatterID {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if tasks != nil && filter.Status != "" {
			var filtered []task.Task
			for _, t := range tasks {
				if t.Status == filter.Status {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if tasks != nil && filter.AssignedTo != "" {
			var filtered []task.Task
			for _, t := range tasks {
				if t.AssignedTo == filter.AssignedTo {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if tasks != nil && !filter.DueFrom.IsZero() {
			var filtered []task.Task
			for _, t := range tasks {
				if !t.DueDate.Before(filter.DueFrom) {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if tasks != nil && !filter.DueTo.IsZero() {
			var filtered []task.Task
			for _, t := range tasks {
				if !t.DueDate.IsZero() && !t.DueDate.After(filter.DueTo) {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	return tasks, nil
}

func (repo *taskRepository) GetTask(ctx context.Context, id string, exec ...core.DBExecutor) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tsk, ok := repo.db.table[id]; ok {
		return *tsk, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) UpdateTask(ctx context.Context, tsk task.Task, exec ...core.DBExecutor) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tsk.ID]; !ok {
		return task.Task{}, task.ErrNotFound
	}
	repo.db.table[tsk.ID] = &tsk
	return tsk, nil
}

func (repo *taskRepository) DeleteTasksByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}

func (repo *taskRepository) AssigneesForMatter(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]bool)
	assignees := make([]string, 0)
	for _, t := range repo.query() {
		if t.MatterID == matterID && t.AssignedTo != "" && !seen[t.AssignedTo] {
			seen[t.AssignedTo] = true
			assignees = append(assignees, t.AssignedTo)
		}
	}
	sort.Strings(assignees)
	return assignees, nil
}
