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

package request_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

func newRequest(t *testing.T) *request.Request {
	t.Helper()
	return request.New(
		context.Background(),
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		"model training",
		request.AccessModeAPI,
	)
}

func TestNewRequestStartsPending(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	assert.Equal(t, request.States.PENDING, req.GetState())
	assert.True(t, req.Modified())
	assert.False(t, req.ReadOnly())
}

func TestRequestTransitions(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	assert.Nil(t, req.SetState(request.States.APPROVED))
	assert.Equal(t, request.States.APPROVED, req.GetState())
	assert.False(t, req.GetUpdatedAt().IsZero())

	assert.Nil(t, req.SetState(request.States.COMPLETED))
	assert.Equal(t, request.States.COMPLETED, req.GetState())
}

func TestRequestInvalidTransitions(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	// pending can't skip to completed
	assert.NotNil(t, req.SetState(request.States.COMPLETED))

	assert.Nil(t, req.SetState(request.States.REJECTED))
	// rejected is terminal
	assert.NotNil(t, req.SetState(request.States.APPROVED))
	assert.NotNil(t, req.SetState(request.States.PENDING))
}

func TestRequestReadOnlyPanics(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	req.SetReadOnly()
	assert.Panics(t, func() {
		_ = req.SetState(request.States.APPROVED)
	})
}

func TestRequestModelRoundTrip(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	assert.Nil(t, req.SetState(request.States.APPROVED))

	b, err := req.ToBytes()
	assert.Nil(t, err)
	restored, err := request.FromBytes(b)
	assert.Nil(t, err)

	assert.Equal(t, req.GetID(), restored.GetID())
	assert.Equal(t, req.GetDataOfferingID(), restored.GetDataOfferingID())
	assert.Equal(t, req.GetProviderConnectorID(), restored.GetProviderConnectorID())
	assert.Equal(t, req.GetConsumerConnectorID(), restored.GetConsumerConnectorID())
	assert.Equal(t, request.States.APPROVED, restored.GetState())
	assert.Equal(t, request.AccessModeAPI, restored.GetAccessMode())
}

func TestParseState(t *testing.T) {
	t.Parallel()
	state, err := request.ParseState("approved")
	assert.Nil(t, err)
	assert.Equal(t, request.States.APPROVED, state)

	_, err = request.ParseState("sideways")
	assert.NotNil(t, err)
}

func TestParseAccessMode(t *testing.T) {
	t.Parallel()
	mode, err := request.ParseAccessMode("download")
	assert.Nil(t, err)
	assert.Equal(t, request.AccessModeDownload, mode)

	_, err = request.ParseAccessMode("carrier-pigeon")
	assert.NotNil(t, err)
}
