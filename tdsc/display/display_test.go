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

package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/display"
	"github.com/trusted-dataspace/tdsc/tdsc/offering"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

func TestEveryKnownStatusHasDescriptor(t *testing.T) {
	t.Parallel()
	contractStates := []contract.State{
		contract.States.DRAFT, contract.States.PENDINGCONSUMER, contract.States.ACTIVE,
		contract.States.EXPIRED, contract.States.REJECTED, contract.States.TERMINATED,
		contract.States.VIOLATED,
	}
	for _, s := range contractStates {
		d := display.ContractStatus(s)
		assert.NotEqual(t, display.Unknown, d, "contract state %s", s)
		assert.NotEmpty(t, d.Icon)
		assert.NotEmpty(t, d.Label)
	}

	requestStates := []request.State{
		request.States.PENDING, request.States.APPROVED,
		request.States.REJECTED, request.States.COMPLETED,
	}
	for _, s := range requestStates {
		d := display.RequestStatus(s)
		assert.NotEqual(t, display.Unknown, d, "request state %s", s)
		assert.NotEmpty(t, d.Icon)
		assert.NotEmpty(t, d.Label)
	}

	templateStates := []template.State{
		template.States.DRAFT, template.States.ACTIVE, template.States.DEPRECATED,
	}
	for _, s := range templateStates {
		d := display.TemplateStatus(s)
		assert.NotEqual(t, display.Unknown, d, "template state %s", s)
		assert.NotEmpty(t, d.Icon)
		assert.NotEmpty(t, d.Label)
	}

	for _, s := range []offering.HostingStatus{
		offering.HostingHosted, offering.HostingSelfManaged, offering.HostingPending,
	} {
		assert.NotEqual(t, display.Unknown, display.HostingStatus(s), "hosting status %s", s)
	}
	for _, s := range []offering.CrossBorderAuditStatus{
		offering.AuditApproved, offering.AuditPending, offering.AuditRejected,
		offering.AuditNotRequired,
	} {
		assert.NotEqual(t, display.Unknown, display.CrossBorderAuditStatus(s), "audit status %s", s)
	}
	for _, s := range []offering.RegistrationStatus{
		offering.RegistrationRegistered, offering.RegistrationUnregistered,
		offering.RegistrationRegistering, offering.RegistrationFailed,
	} {
		assert.NotEqual(t, display.Unknown, display.RegistrationStatus(s), "registration status %s", s)
	}
}

func TestUnknownFallback(t *testing.T) {
	t.Parallel()
	assert.Equal(t, display.Unknown, display.ContractStatus("haggling"))
	assert.Equal(t, display.Unknown, display.RequestStatus("limbo"))
	assert.Equal(t, display.Unknown, display.TemplateStatus("fossilised"))
	assert.Equal(t, display.Unknown, display.HostingStatus("basement"))
	assert.Equal(t, "alert-triangle", display.Unknown.Icon)
	assert.Equal(t, "Unknown", display.Unknown.Label)
}

func TestCatalogCoversAllEnums(t *testing.T) {
	t.Parallel()
	catalog := display.Catalog()
	for _, key := range []string{
		"contract_status", "data_request_status", "template_status",
		"hosting_status", "cross_border_audit_status", "registration_status",
	} {
		assert.NotEmpty(t, catalog[key], "catalog key %s", key)
	}
	assert.Len(t, catalog["contract_status"], 7)
	assert.Len(t, catalog["data_request_status"], 4)
	assert.Len(t, catalog["template_status"], 3)
	assert.Equal(t, "Active", catalog["contract_status"]["active"].Label)
}
