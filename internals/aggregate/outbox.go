// file: internals/aggregate/outbox.go
package aggregate

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"pelatihanku_backend/internals/docstore"
)

/* =========================
   Propagation outbox
=========================
Secondary write yang gagal tidak hanya di-log: task repair {user, course}
disimpan di collection outbox. Worker memperbaikinya dengan recompute penuh
(Reconcile), jadi task idempoten dan boleh di-retry kapan saja.
*/

const (
	OutboxPending = "pending"
	OutboxDead    = "dead"
)

type OutboxTask struct {
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Cause     string    `json:"cause"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Outbox struct {
	Store docstore.Store
}

func NewOutbox(store docstore.Store) *Outbox {
	return &Outbox{Store: store}
}

// Enqueue menyimpan satu task repair aggregate.
func (o *Outbox) Enqueue(ctx context.Context, userID, courseID, cause string) error {
	task := OutboxTask{
		TaskID:    uuid.NewString(),
		UserID:    userID,
		CourseID:  courseID,
		Cause:     cause,
		Status:    OutboxPending,
		CreatedAt: time.Now(),
	}
	doc, err := docstore.DataFrom(task)
	if err != nil {
		return err
	}
	return o.Store.Set(ctx, ColOutbox, task.TaskID, doc)
}

/* =========================
   Worker
========================= */

type OutboxWorker struct {
	Store       docstore.Store
	Coord       *Coordinator
	Interval    time.Duration
	MaxAttempts int
	BatchSize   int

	stop chan struct{}
}

func NewOutboxWorker(store docstore.Store, coord *Coordinator) *OutboxWorker {
	return &OutboxWorker{
		Store:       store,
		Coord:       coord,
		Interval:    30 * time.Second,
		MaxAttempts: 5,
		BatchSize:   20,
		stop:        make(chan struct{}),
	}
}

// Start menjalankan loop worker di goroutine sendiri.
func (w *OutboxWorker) Start() {
	log.Printf("[OUTBOX] worker aktif (interval=%s max_attempts=%d)", w.Interval, w.MaxAttempts)
	go func() {
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), w.Interval)
				if err := w.ProcessOnce(ctx); err != nil {
					log.Printf("[OUTBOX] process error: %v", err)
				}
				cancel()
			case <-w.stop:
				return
			}
		}
	}()
}

func (w *OutboxWorker) Stop() {
	close(w.stop)
}

// ProcessOnce mengambil task pending lalu mencoba repair satu per satu.
// Sukses = task dihapus; gagal = attempts naik, lewat MaxAttempts jadi dead.
func (w *OutboxWorker) ProcessOnce(ctx context.Context) error {
	snaps, err := w.Store.Query(ctx, ColOutbox, map[string]any{"status": OutboxPending}, w.BatchSize)
	if err != nil {
		return err
	}

	for _, snap := range snaps {
		var task OutboxTask
		if derr := docstore.DataTo(snap.Data, &task); derr != nil {
			log.Printf("[OUTBOX] task %s korup, dibuang: %v", snap.ID, derr)
			_ = w.Store.Delete(ctx, ColOutbox, snap.ID)
			continue
		}

		if _, rerr := w.Coord.Reconcile(ctx, task.UserID, task.CourseID); rerr != nil {
			task.Attempts++
			task.LastError = rerr.Error()
			if task.Attempts >= w.MaxAttempts {
				task.Status = OutboxDead
				log.Printf("[OUTBOX] task %s dead setelah %d attempt: %v", snap.ID, task.Attempts, rerr)
			}
			if doc, derr := docstore.DataFrom(task); derr == nil {
				_ = w.Store.Set(ctx, ColOutbox, snap.ID, doc)
			}
			continue
		}

		if derr := w.Store.Delete(ctx, ColOutbox, snap.ID); derr != nil {
			log.Printf("[OUTBOX] gagal hapus task %s: %v", snap.ID, derr)
		}
	}
	return nil
}
