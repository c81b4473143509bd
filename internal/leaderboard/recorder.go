package leaderboard

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PositionStore persists last-known leaderboard positions.
type PositionStore interface {
	RecordLeaderboardPositions(ctx context.Context, board string, userIDs []string) error
}

type positionTask struct {
	board string
	ids   []string
}

// Recorder is the background queue that persists ranked-id positions after a
// global board renders. Callers enqueue and move on; ordering and delivery
// are best-effort by design.
type Recorder struct {
	store PositionStore
	log   *slog.Logger
	tasks chan positionTask

	stopOnce sync.Once
	done     chan struct{}
}

func NewRecorder(store PositionStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		store: store,
		log:   logger,
		tasks: make(chan positionTask, 64),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue submits a position-recording task without blocking; if the queue
// is full the task is dropped.
func (r *Recorder) Enqueue(board string, userIDs []string) {
	ids := make([]string, len(userIDs))
	copy(ids, userIDs)
	select {
	case r.tasks <- positionTask{board: board, ids: ids}:
	default:
		r.log.Warn("position recorder queue full, dropping", "board", board, "ids", len(ids))
	}
}

// Close stops the worker after draining queued tasks.
func (r *Recorder) Close() {
	r.stopOnce.Do(func() { close(r.tasks) })
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for task := range r.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := r.store.RecordLeaderboardPositions(ctx, task.board, task.ids); err != nil {
			r.log.Error("record leaderboard positions", "board", task.board, "err", err)
		}
		cancel()
	}
}
