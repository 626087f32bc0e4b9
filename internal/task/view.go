package task

import (
	"sort"
	"strings"
	"time"

	"github.com/josephgoksu/TimeWing/models"
	"github.com/josephgoksu/TimeWing/types"
)

// Sortable view fields.
const (
	SortByPriority    = "priority"
	SortByDueTime     = "due_time"
	SortByCreatedAt   = "created_at"
	SortByUpdatedAt   = "updated_at"
	SortByDescription = "description"
)

// ViewOptions narrow and order the task list. Nil/zero fields match
// everything. Deleted tasks are excluded unless IncludeDeleted is set or
// Status explicitly asks for them.
type ViewOptions struct {
	Priority       *int
	DueDate        *time.Time // matched by calendar day
	Type           string     // case-insensitive
	Status         *models.TaskStatus
	IncludeDeleted bool
	SortBy         string // defaults to created_at
	SortOrder      string // "asc" (default) or "desc"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (o ViewOptions) matches(t models.Task) bool {
	wantDeleted := o.IncludeDeleted || (o.Status != nil && *o.Status == models.StatusDeleted)
	if t.Status == models.StatusDeleted && !wantDeleted {
		return false
	}
	if o.Priority != nil && t.Priority != *o.Priority {
		return false
	}
	if o.DueDate != nil {
		if t.DueTime == nil || !sameDay(*t.DueTime, *o.DueDate) {
			return false
		}
	}
	if o.Type != "" && !strings.EqualFold(t.Type, o.Type) {
		return false
	}
	if o.Status != nil && t.Status != *o.Status {
		return false
	}
	return true
}

// View returns tasks matching all supplied filters, sorted by the named
// field with ties broken by CreatedAt ascending.
func (r *Registry) View(opts ViewOptions) ([]models.Task, error) {
	if err := r.load(); err != nil {
		return nil, err
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	desc := false
	switch strings.ToLower(opts.SortOrder) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, types.NewValidationError("sort order must be 'asc' or 'desc'")
	}

	var cmp func(a, b models.Task) int
	switch sortBy {
	case SortByPriority:
		cmp = func(a, b models.Task) int { return a.Priority - b.Priority }
	case SortByDueTime:
		cmp = func(a, b models.Task) int {
			// Tasks without a due time sort last.
			switch {
			case a.DueTime == nil && b.DueTime == nil:
				return 0
			case a.DueTime == nil:
				return 1
			case b.DueTime == nil:
				return -1
			default:
				return a.DueTime.Compare(*b.DueTime)
			}
		}
	case SortByCreatedAt:
		cmp = func(a, b models.Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByUpdatedAt:
		cmp = func(a, b models.Task) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case SortByDescription:
		cmp = func(a, b models.Task) int { return strings.Compare(a.Description, b.Description) }
	default:
		return nil, types.NewValidationError("unknown sort field: " + sortBy)
	}

	tasks := make([]models.Task, 0, len(r.latest))
	for _, t := range r.latest {
		if opts.matches(t) {
			tasks = append(tasks, t)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := cmp(tasks[i], tasks[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}
