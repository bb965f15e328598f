package store

import "sync"

// ChangeFeed fans out "table changed" notifications to subscribers.
// Notifications carry no payload and coalesce: a subscriber that has not
// drained its channel receives one signal for any number of changes.
type ChangeFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
}

type subscription struct {
	tables map[string]struct{}
	ch     chan struct{}
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{subs: make(map[int]subscription)}
}

// Subscribe returns a channel signalled whenever one of tables changes, and a
// cancel func that unsubscribes and closes the channel. No tables means all
// tables.
func (f *ChangeFeed) Subscribe(tables ...string) (<-chan struct{}, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := subscription{ch: make(chan struct{}, 1)}
	if len(tables) > 0 {
		sub.tables = make(map[string]struct{}, len(tables))
		for _, t := range tables {
			sub.tables[t] = struct{}{}
		}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Publish signals every subscriber interested in table without blocking.
func (f *ChangeFeed) Publish(table string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subs {
		if sub.tables != nil {
			if _, ok := sub.tables[table]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}
