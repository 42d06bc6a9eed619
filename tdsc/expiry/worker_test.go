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

package expiry_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/expiry"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence/badger"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

func setupStore(t *testing.T) (context.Context, context.CancelFunc, *badger.StorageProvider) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	store, err := badger.New(ctx, true, "")
	assert.Nil(t, err)
	return ctx, cancel, store
}

func storeContract(
	ctx context.Context, t *testing.T, store persistence.StorageProvider,
	state contract.State, requestID uuid.UUID, expiresAt time.Time,
) *contract.Contract {
	t.Helper()
	c := contract.New(ctx, uuid.New(), "expiring deal",
		uuid.New(), uuid.New(), uuid.New(), uuid.New(), requestID,
		"", expiresAt)
	if state != contract.States.DRAFT {
		assert.Nil(t, c.SetState(contract.States.PENDINGCONSUMER))
	}
	if state == contract.States.ACTIVE {
		assert.Nil(t, c.SetState(contract.States.ACTIVE))
	}
	assert.Nil(t, store.PutContract(ctx, c))
	return c
}

func storeRequest(
	ctx context.Context, t *testing.T, store persistence.StorageProvider, state request.State,
) *request.Request {
	t.Helper()
	req := request.New(ctx, uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		"archiving", request.AccessModeDownload)
	if state != request.States.PENDING {
		assert.Nil(t, req.SetState(state))
	}
	assert.Nil(t, store.PutRequest(ctx, req))
	return req
}

func TestExpireDueContract(t *testing.T) {
	ctx, cancel, store := setupStore(t)
	defer cancel()
	req := storeRequest(ctx, t, store, request.States.APPROVED)
	c := storeContract(ctx, t, store,
		contract.States.ACTIVE, req.GetID(), time.Now().Add(-time.Hour))

	w := expiry.New(ctx, store)
	assert.Nil(t, w.Expire(ctx, c.GetID()))

	stored, err := store.GetContractR(ctx, c.GetID())
	assert.Nil(t, err)
	assert.Equal(t, contract.States.EXPIRED, stored.GetState())

	storedReq, err := store.GetRequestR(ctx, req.GetID())
	assert.Nil(t, err)
	assert.Equal(t, request.States.COMPLETED, storedReq.GetState())
}

func TestExpireSkipsContractsNotDue(t *testing.T) {
	ctx, cancel, store := setupStore(t)
	defer cancel()
	req := storeRequest(ctx, t, store, request.States.APPROVED)

	// still in the future
	future := storeContract(ctx, t, store,
		contract.States.ACTIVE, req.GetID(), time.Now().Add(time.Hour))
	assert.Nil(t, expiry.New(ctx, store).Expire(ctx, future.GetID()))
	stored, err := store.GetContractR(ctx, future.GetID())
	assert.Nil(t, err)
	assert.Equal(t, contract.States.ACTIVE, stored.GetState())

	// not active yet
	pending := storeContract(ctx, t, store,
		contract.States.PENDINGCONSUMER, req.GetID(), time.Now().Add(-time.Hour))
	assert.Nil(t, expiry.New(ctx, store).Expire(ctx, pending.GetID()))
	stored, err = store.GetContractR(ctx, pending.GetID())
	assert.Nil(t, err)
	assert.Equal(t, contract.States.PENDINGCONSUMER, stored.GetState())
}

func TestScanQueuesDueContracts(t *testing.T) {
	ctx, cancel, store := setupStore(t)
	defer cancel()
	req := storeRequest(ctx, t, store, request.States.APPROVED)
	due := storeContract(ctx, t, store,
		contract.States.ACTIVE, req.GetID(), time.Now().Add(-time.Minute))
	storeContract(ctx, t, store,
		contract.States.ACTIVE, req.GetID(), time.Now().Add(time.Hour))

	w := expiry.New(ctx, store)
	w.Run()
	assert.Nil(t, w.Scan(ctx))

	// the dispatcher/worker pipeline picks the due contract up
	assert.Eventually(t, func() bool {
		stored, err := store.GetContractR(ctx, due.GetID())
		if err != nil {
			return false
		}
		return stored.GetState() == contract.States.EXPIRED
	}, 5*time.Second, 50*time.Millisecond)
}
