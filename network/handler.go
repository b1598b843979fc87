package network

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/luca-patrignani/collective/link"
	"github.com/luca-patrignani/collective/topology"
)

const (
	headerClock    = "Clock"
	headerSender   = "SenderRank"
	headerReceiver = "ReceiverRank"
	headerSize     = "GroupSize"
	headerOp       = "Op"
)

// inboxHandler accepts messages from any sender at any time and queues them
// per sender in arrival order.
type inboxHandler struct {
	rank  int
	size  int
	mu    sync.Mutex
	inbox map[int]*queue.Queue
	// last accepted message of each sender
	last    map[int]delivery
	arrived chan struct{}
}

type delivery struct {
	clock uint64
	op    link.Op
}

func newInboxHandler(rank, size int) *inboxHandler {
	return &inboxHandler{
		rank:    rank,
		size:    size,
		inbox:   make(map[int]*queue.Queue),
		last:    make(map[int]delivery),
		arrived: make(chan struct{}, 1),
	}
}

func (h *inboxHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	clock, err := strconv.ParseUint(req.Header.Get(headerClock), 10, 32)
	if err != nil {
		http.Error(rw, "Clock field is not a number", http.StatusBadRequest)
		return
	}
	sender, err := strconv.Atoi(req.Header.Get(headerSender))
	if err != nil || sender < 0 || sender >= h.size || sender == h.rank {
		http.Error(rw, "invalid SenderRank", http.StatusBadRequest)
		return
	}
	receiver, err := strconv.Atoi(req.Header.Get(headerReceiver))
	if err != nil || receiver != h.rank {
		http.Error(rw, fmt.Sprintf("this is rank %d", h.rank), http.StatusNotAcceptable)
		return
	}
	size, err := strconv.Atoi(req.Header.Get(headerSize))
	if err != nil || size != h.size {
		http.Error(rw, fmt.Sprintf("group size is %d", h.size), http.StatusConflict)
		return
	}
	op, err := link.ParseOp(req.Header.Get(headerOp))
	if err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}
	content, err := io.ReadAll(req.Body)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.mu.Lock()
	// a sender posts at most one message per round to a receiver, so a
	// repeat of its last (clock, op) is a retry of a request already queued
	d := delivery{clock: clock, op: op}
	if prev, ok := h.last[sender]; ok && prev == d {
		h.mu.Unlock()
		rw.WriteHeader(http.StatusAccepted)
		return
	}
	h.last[sender] = d
	q, ok := h.inbox[sender]
	if !ok {
		q = queue.New()
		h.inbox[sender] = q
	}
	q.Add(link.Message{Op: op, Round: uint32(clock), Data: content})
	h.mu.Unlock()
	select {
	case h.arrived <- struct{}{}:
	default:
	}
	rw.WriteHeader(http.StatusAccepted)
}

// take pops the oldest message from src, waiting up to timeout for one.
// Only one goroutine may wait at a time.
func (h *inboxHandler) take(src int, timeout time.Duration) (link.Message, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	for {
		h.mu.Lock()
		if q, ok := h.inbox[src]; ok && q.Length() > 0 {
			m := q.Remove().(link.Message)
			h.mu.Unlock()
			return m, nil
		}
		h.mu.Unlock()
		select {
		case <-h.arrived:
		case <-deadline:
			return link.Message{}, fmt.Errorf("%w: no message from %d after %s", link.ErrTimeout, src, timeout)
		}
	}
}

// statusErr maps a refused request to an error.
func statusErr(dst int, code int) error {
	switch code {
	case http.StatusConflict, http.StatusNotAcceptable:
		return fmt.Errorf("%w: rank %d refused the request with status %d", topology.ErrMismatch, dst, code)
	}
	return fmt.Errorf("rank %d answered with unsuccessful status code %d", dst, code)
}
