// Package realtime fans out per-table change signals. The signal
// carries no diff payload, subscribers are expected to refetch their
// current view of the table.
package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const channelPrefix = "realtime"

type ChangeEvent struct {
	ProjectID uint64 `json:"project_id"`
	Table     string `json:"table"`
	At        int64  `json:"at"`
}

type subscriber struct {
	id int
	ch chan ChangeEvent
}

// Hub delivers change events to local subscribers. With a redis pool
// configured, events are published through redis so every instance
// converges; without one, delivery is in-process only.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscriber

	pool *redis.Pool
}

func NewHub(pool *redis.Pool) *Hub {
	return &Hub{
		subs: make(map[string][]subscriber),
		pool: pool,
	}
}

func subKey(projectID uint64, table string) string {
	return fmt.Sprintf("%d:%s", projectID, table)
}

// Subscribe registers a listener on a project table. The returned
// release func must be called on teardown.
func (h *Hub) Subscribe(projectID uint64, table string) (<-chan ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := subscriber{id: h.nextID, ch: make(chan ChangeEvent, 8)}
	key := subKey(projectID, table)
	h.subs[key] = append(h.subs[key], sub)

	release := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		subs := h.subs[key]
		for i := range subs {
			if subs[i].id == sub.id {
				h.subs[key] = append(subs[:i], subs[i+1:]...)
				close(sub.ch)
				return
			}
		}
	}

	return sub.ch, release
}

// Publish signals that rows in a project table changed.
func (h *Hub) Publish(projectID uint64, table string) {
	event := ChangeEvent{ProjectID: projectID, Table: table, At: time.Now().UTC().Unix()}

	if h.pool == nil {
		h.fanout(event)
		return
	}

	if err := h.publishRedis(event); err != nil {
		log.WithError(err).WithFields(log.Fields{"project_id": projectID,
			"table": table}).Error("Failed to publish realtime event. Falling back to local fanout.")
		h.fanout(event)
	}
}

func (h *Hub) publishRedis(event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal change event")
	}

	conn := h.pool.Get()
	defer conn.Close()

	channel := fmt.Sprintf("%s:%d:%s", channelPrefix, event.ProjectID, event.Table)
	_, err = conn.Do("PUBLISH", channel, payload)
	return errors.Wrap(err, "publish change event")
}

// fanout delivers to local subscribers. Sends are non-blocking, a
// slow subscriber misses the signal and catches up on the next one.
func (h *Hub) fanout(event ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[subKey(event.ProjectID, event.Table)] {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Listen consumes redis published events and fans them out locally.
// Blocks, run on its own goroutine. Reconnects with backoff on
// connection failure.
func (h *Hub) Listen() {
	if h.pool == nil {
		return
	}

	for {
		if err := h.listenOnce(); err != nil {
			log.WithError(err).Error("Realtime redis subscription lost. Reconnecting.")
		}
		time.Sleep(time.Second)
	}
}

func (h *Hub) listenOnce() error {
	conn := h.pool.Get()
	defer conn.Close()

	psc := redis.PubSubConn{Conn: conn}
	if err := psc.PSubscribe(channelPrefix + ":*"); err != nil {
		return errors.Wrap(err, "psubscribe")
	}

	for {
		switch v := psc.Receive().(type) {
		case redis.Message:
			var event ChangeEvent
			if err := json.Unmarshal(v.Data, &event); err != nil {
				// Older publishers send bare channel pings. Recover
				// the scope from the channel name.
				event = eventFromChannel(v.Channel)
			}
			h.fanout(event)
		case error:
			return v
		}
	}
}

func eventFromChannel(channel string) ChangeEvent {
	event := ChangeEvent{At: time.Now().UTC().Unix()}

	parts := strings.SplitN(channel, ":", 3)
	if len(parts) != 3 {
		return event
	}

	projectID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return event
	}

	event.ProjectID = projectID
	event.Table = parts[2]
	return event
}
