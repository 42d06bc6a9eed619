// Copyright 2025 trusted-dataspace
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expiry contains the background worker that expires active
// contracts whose deadline has passed, and completes the data requests they
// were derived from.
package expiry

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/logging"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

const (
	initialQueueSize = 100
	dispatchMillis   = 10
	workers          = 1

	defaultScanInterval = time.Minute
)

// Clock returns the current time, swappable in tests.
type Clock func() time.Time

// Worker scans for active contracts past their deadline and transitions them
// to expired. Found contracts go through a queue so a slow store write never
// blocks the scan.
type Worker struct {
	ctx          context.Context
	store        persistence.StorageProvider
	c            chan uuid.UUID
	q            *deque.Deque[uuid.UUID]
	scanInterval time.Duration
	now          Clock

	// WaitGroup keeps track of the scanner/dispatcher/worker goroutines.
	WaitGroup sync.WaitGroup
	sync.Mutex
}

// New returns an expiry worker using the given store.
func New(ctx context.Context, store persistence.StorageProvider) *Worker {
	q := &deque.Deque[uuid.UUID]{}
	q.Grow(initialQueueSize)

	return &Worker{
		ctx:          ctx,
		store:        store,
		c:            make(chan uuid.UUID),
		q:            q,
		scanInterval: defaultScanInterval,
		now:          time.Now,
	}
}

// Run starts the scanner, dispatcher and worker goroutines.
func (w *Worker) Run() {
	w.WaitGroup.Add(2 + workers)
	go w.scanner()
	go w.dispatcher()
	for range workers {
		go w.worker()
	}
}

// Add queues a contract for expiry processing.
func (w *Worker) Add(id uuid.UUID) {
	w.Lock()
	defer w.Unlock()
	w.q.PushBack(id)
}

// Scan walks all contracts once and queues the ones that are due.
func (w *Worker) Scan(ctx context.Context) error {
	logger := logging.Extract(ctx)
	contracts, err := w.store.ListContracts(ctx)
	if err != nil {
		return err
	}
	now := w.now()
	for _, c := range contracts {
		if c.Expirable() && c.GetExpiresAt().Before(now) {
			logger.Info("contract due for expiry", c.GetLogFields("")...)
			w.Add(c.GetID())
		}
	}
	return nil
}

func (w *Worker) scanner() {
	logger := logging.Extract(w.ctx)
	logger.Info("Starting contract expiry scanner", "interval", w.scanInterval)
	ticker := time.NewTicker(w.scanInterval)
	for {
		select {
		case <-ticker.C:
			if err := w.Scan(w.ctx); err != nil {
				logger.Error("expiry scan failed", "err", err)
			}
		case <-w.ctx.Done():
			ticker.Stop()
			w.WaitGroup.Done()
			return
		}
	}
}

func (w *Worker) dispatcher() {
	// The ticker triggers iterations so we don't hammer the queue in a tight
	// loop.
	ticker := time.NewTicker(dispatchMillis * time.Millisecond)
	for {
		select {
		case <-ticker.C:
			if w.q.Len() == 0 {
				continue
			}

			w.Lock()
			id := w.q.PopFront()
			w.Unlock()
			w.c <- id
		case <-w.ctx.Done():
			ticker.Stop()
			w.WaitGroup.Done()
			return
		}
	}
}

func (w *Worker) worker() {
	logger := logging.Extract(w.ctx)
	logger.Info("Starting contract expiry loop")
	for {
		select {
		case id := <-w.c:
			ctx := context.WithoutCancel(w.ctx)
			if err := w.Expire(ctx, id); err != nil {
				logger.Error("could not expire contract", "contractID", id.String(), "err", err)
			}
		case <-w.ctx.Done():
			w.WaitGroup.Done()
			return
		}
	}
}

// Expire transitions a single contract to expired, completing its data
// request. A contract that raced into a terminal state in the meantime is
// skipped.
func (w *Worker) Expire(ctx context.Context, id uuid.UUID) error {
	ctx, logger := logging.InjectLabels(ctx, "contractID", id.String())
	c, err := w.store.GetContractRW(ctx, id)
	if err != nil {
		return err
	}
	if !c.Expirable() || c.GetExpiresAt().After(w.now()) {
		logger.Debug("contract no longer due for expiry", "state", c.GetState().String())
		return w.store.ReleaseContract(ctx, c)
	}
	if err := c.SetState(contract.States.EXPIRED); err != nil {
		_ = w.store.ReleaseContract(ctx, c)
		return err
	}
	if err := w.store.PutContract(ctx, c); err != nil {
		return err
	}
	logger.Info("contract expired", c.GetLogFields("")...)
	return w.completeRequest(ctx, c.GetDataRequestID())
}

// completeRequest marks the derived data request completed once the contract
// it spawned has run its course.
func (w *Worker) completeRequest(ctx context.Context, id uuid.UUID) error {
	if id == (uuid.UUID{}) {
		return nil
	}
	req, err := w.store.GetRequestRW(ctx, id)
	if err != nil {
		return err
	}
	if req.GetState() != request.States.APPROVED {
		return w.store.ReleaseRequest(ctx, req)
	}
	if err := req.SetState(request.States.COMPLETED); err != nil {
		_ = w.store.ReleaseRequest(ctx, req)
		return err
	}
	return w.store.PutRequest(ctx, req)
}
