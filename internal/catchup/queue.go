package catchup

import (
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/study-tracker/internal/model"
)

// Task is the payload carried along with a deferred task.
type Task struct {
	Time  string
	Items []string
}

// Update holds the fields to merge into a queued item. Nil fields are left alone.
type Update struct {
	NewDate       *string
	OriginalTopic *string
	Time          *string
	Items         []string
}

// Queue is the ordered set of pending catch-up items. It is safe for
// concurrent use; every operation holds the queue lock for its full duration.
type Queue struct {
	mu        sync.Mutex
	scheduler *Scheduler
	items     []model.CatchUpItem
	entropy   *rand.Rand
	now       func() time.Time
}

// NewQueue returns a queue seeded with items in the given order.
func NewQueue(scheduler *Scheduler, items ...model.CatchUpItem) *Queue {
	q := &Queue{
		scheduler: scheduler,
		entropy:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, it := range items {
		q.items = append(q.items, cloneItem(it))
	}
	return q
}

// Add defers a task missed on date to the scheduler's next available day and
// appends it to the queue. The same task may be queued more than once.
func (q *Queue) Add(date time.Time, topic string, task Task) model.CatchUpItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now().UTC()
	item := model.CatchUpItem{
		ID:            ulid.MustNew(ulid.Timestamp(now), q.entropy).String(),
		OriginalDate:  model.FormatDate(date),
		OriginalTopic: topic,
		NewDate:       model.FormatDate(q.scheduler.FindNextAvailableDay(date)),
		Time:          task.Time,
		Items:         slices.Clone(task.Items),
		CreatedAt:     now,
	}
	q.items = append(q.items, item)

	return cloneItem(item)
}

// Update merges u into the item with the given id. Unknown ids are ignored;
// the second result reports whether an item was found.
func (q *Queue) Update(id string, u Update) (model.CatchUpItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return model.CatchUpItem{}, false
	}

	it := &q.items[i]
	if u.NewDate != nil {
		it.NewDate = *u.NewDate
	}
	if u.OriginalTopic != nil {
		it.OriginalTopic = *u.OriginalTopic
	}
	if u.Time != nil {
		it.Time = *u.Time
	}
	if u.Items != nil {
		it.Items = slices.Clone(u.Items)
	}

	return cloneItem(*it), true
}

// Remove drops the item with the given id, keeping the order of the rest.
// It reports whether an item was removed.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	q.items = slices.Delete(q.items, i, i+1)
	return true
}

// Items returns a copy of the queue in insertion order.
func (q *Queue) Items() []model.CatchUpItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]model.CatchUpItem, len(q.items))
	for i, it := range q.items {
		out[i] = cloneItem(it)
	}
	return out
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) indexOf(id string) int {
	return slices.IndexFunc(q.items, func(it model.CatchUpItem) bool { return it.ID == id })
}

func cloneItem(it model.CatchUpItem) model.CatchUpItem {
	it.Items = slices.Clone(it.Items)
	return it
}
