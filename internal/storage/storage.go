package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/taskbot/internal/model"
)

var ErrMalformedRecord = errors.New("storage: malformed task record")

// Storage persists the whole task list. SaveTasks always replaces what was
// stored before; there is no incremental update.
type Storage interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
}
