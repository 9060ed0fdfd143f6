package api

import (
	"net/http"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"project-board/board"
	"project-board/domain"
	"project-board/store"
)

// changeBroker fans board changes out to SSE subscribers. Sends are
// non-blocking: a slow client misses intermediate snapshots instead of ever
// blocking a board mutation.
type changeBroker struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newChangeBroker() *changeBroker {
	return &changeBroker{subs: make(map[chan struct{}]struct{})}
}

func (b *changeBroker) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *changeBroker) unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

func (b *changeBroker) notify() {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	b.mu.Unlock()
}

// streamProjects sends the current snapshot immediately and a fresh one after
// every board change, as SSE events. With a status parameter the snapshot is
// filtered and the event additionally carries the rendered list fragment.
func streamProjects(st *store.Store, broker *changeBroker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var status domain.Status
		if raw := c.QueryParam("status"); raw != "" {
			var err error
			status, err = domain.ParseStatus(raw)
			if err != nil {
				return c.String(http.StatusBadRequest, "invalid status")
			}
		}

		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}

		ctx := c.Request().Context()
		ch := broker.subscribe()
		defer broker.unsubscribe(ch)

		for {
			data, err := encodeStreamEvent(st, status)
			if err != nil {
				c.Logger().Error(err)
				return err
			}
			if _, err := c.Response().Write([]byte("data: ")); err != nil {
				return err
			}
			if _, err := c.Response().Write(data); err != nil {
				return err
			}
			if _, err := c.Response().Write([]byte("\n\n")); err != nil {
				return err
			}
			flusher.Flush()

			select {
			case <-ctx.Done():
				return nil
			case <-ch:
				continue
			}
		}
	}
}

func encodeStreamEvent(st *store.Store, status domain.Status) ([]byte, error) {
	ev := streamEvent{}
	if status == "" {
		ev.Projects = st.Projects()
	} else {
		ev.Projects = st.ProjectsByStatus(status)
		html, err := board.RenderListHTML(status, ev.Projects)
		if err != nil {
			return nil, err
		}
		ev.HTML = string(html)
	}
	return sonic.Marshal(ev)
}
