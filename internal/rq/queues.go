// Where: internal/rq/queues.go
// What: Runtime descriptors for the configured job queues.
// Why: The runner controls queue execution mode without touching queue
//      internals; workers and jobs belong to external processes.
package rq

import (
	"sort"
	"sync"

	"github.com/translate/pootle/internal/config"
)

// Mode is the execution mode of a job queue.
type Mode int

const (
	// Async dispatches jobs to external worker processes.
	Async Mode = iota
	// Sync executes jobs inline in the calling process.
	Sync
)

func (m Mode) String() string {
	switch m {
	case Async:
		return "async"
	case Sync:
		return "sync"
	default:
		return "unknown"
	}
}

// QueueDescriptor is the in-memory view of one configured queue.
type QueueDescriptor struct {
	Name           string
	Addr           string
	DB             int
	Mode           Mode
	DefaultTimeout int
}

// Registry holds the runtime queue descriptors. Mutations are process-local
// and reapplied on every start; nothing is ever persisted back.
type Registry struct {
	mu     sync.Mutex
	queues []*QueueDescriptor
}

// NewRegistry builds descriptors for every queue in the settings artifact,
// ordered by name.
func NewRegistry(settings *config.Settings) *Registry {
	reg := &Registry{}
	for name, queue := range settings.RQ.Queues {
		mode := Sync
		if queue.IsAsync() {
			mode = Async
		}
		reg.queues = append(reg.queues, &QueueDescriptor{
			Name:           name,
			Addr:           queue.Addr(),
			DB:             queue.DB,
			Mode:           mode,
			DefaultTimeout: queue.DefaultTimeout,
		})
	}
	sort.Slice(reg.queues, func(i, j int) bool {
		return reg.queues[i].Name < reg.queues[j].Name
	})
	return reg
}

// ForceSync switches every descriptor to synchronous execution under a
// single lock, so observers never see a partial switch.
func (r *Registry) ForceSync() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, queue := range r.queues {
		queue.Mode = Sync
	}
}

// Snapshot returns a copy of the current descriptors.
func (r *Registry) Snapshot() []QueueDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]QueueDescriptor, 0, len(r.queues))
	for _, queue := range r.queues {
		snapshot = append(snapshot, *queue)
	}
	return snapshot
}

// Len reports the number of managed queues.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queues)
}
