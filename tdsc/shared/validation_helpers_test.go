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

package shared_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

func TestValidateAndMarshal(t *testing.T) {
	ctx := context.Background()

	b, err := shared.ValidateAndMarshal(ctx, shared.ConfirmContractMessage{Action: "confirm"})
	assert.Nil(t, err)
	assert.JSONEq(t, `{"action": "confirm"}`, string(b))

	// validation runs before marshalling
	_, err = shared.ValidateAndMarshal(ctx, shared.ConfirmContractMessage{Action: "maybe"})
	assert.NotNil(t, err)
}

func TestUnmarshalAndValidate(t *testing.T) {
	ctx := context.Background()

	msg, err := shared.UnmarshalAndValidate(ctx, []byte(`{"action": "reject"}`), shared.ConfirmContractMessage{})
	assert.Nil(t, err)
	assert.Equal(t, "reject", msg.Action)

	_, err = shared.UnmarshalAndValidate(ctx, []byte(`{"action": ""}`), shared.ConfirmContractMessage{})
	assert.NotNil(t, err)
}
