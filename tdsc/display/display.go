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

// Package display maps status enums to presentation descriptors. The mapping
// is total: any value outside the known set gets the Unknown descriptor, so a
// backend-added status never renders as a hole in a client.
package display

import (
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/offering"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

// Descriptor is the presentation of a single status value.
type Descriptor struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Unknown is the fallback descriptor for any status value not in the known
// set.
var Unknown = Descriptor{Icon: "alert-triangle", Label: "Unknown"}

var contractStatuses = map[contract.State]Descriptor{
	contract.States.DRAFT:           {Icon: "file-edit", Label: "Draft"},
	contract.States.PENDINGCONSUMER: {Icon: "hourglass", Label: "Awaiting Consumer"},
	contract.States.ACTIVE:          {Icon: "check-circle", Label: "Active"},
	contract.States.EXPIRED:         {Icon: "clock-off", Label: "Expired"},
	contract.States.REJECTED:        {Icon: "x-circle", Label: "Rejected"},
	contract.States.TERMINATED:      {Icon: "slash-circle", Label: "Terminated"},
	contract.States.VIOLATED:        {Icon: "shield-alert", Label: "Violated"},
}

var requestStatuses = map[request.State]Descriptor{
	request.States.PENDING:   {Icon: "hourglass", Label: "Pending"},
	request.States.APPROVED:  {Icon: "check-circle", Label: "Approved"},
	request.States.REJECTED:  {Icon: "x-circle", Label: "Rejected"},
	request.States.COMPLETED: {Icon: "check-double", Label: "Completed"},
}

var templateStatuses = map[template.State]Descriptor{
	template.States.DRAFT:      {Icon: "file-edit", Label: "Draft"},
	template.States.ACTIVE:     {Icon: "check-circle", Label: "Active"},
	template.States.DEPRECATED: {Icon: "archive", Label: "Deprecated"},
}

var hostingStatuses = map[offering.HostingStatus]Descriptor{
	offering.HostingHosted:      {Icon: "cloud", Label: "Hosted"},
	offering.HostingSelfManaged: {Icon: "server", Label: "Self Managed"},
	offering.HostingPending:     {Icon: "hourglass", Label: "Pending"},
}

var auditStatuses = map[offering.CrossBorderAuditStatus]Descriptor{
	offering.AuditApproved:    {Icon: "check-circle", Label: "Audit Approved"},
	offering.AuditPending:     {Icon: "hourglass", Label: "Audit Pending"},
	offering.AuditRejected:    {Icon: "x-circle", Label: "Audit Rejected"},
	offering.AuditNotRequired: {Icon: "minus-circle", Label: "Audit Not Required"},
}

var registrationStatuses = map[offering.RegistrationStatus]Descriptor{
	offering.RegistrationRegistered:   {Icon: "check-circle", Label: "Registered"},
	offering.RegistrationUnregistered: {Icon: "circle-dashed", Label: "Unregistered"},
	offering.RegistrationRegistering:  {Icon: "loader", Label: "Registering"},
	offering.RegistrationFailed:       {Icon: "x-circle", Label: "Registration Failed"},
}

func lookup[K comparable](m map[K]Descriptor, k K) Descriptor {
	if d, ok := m[k]; ok {
		return d
	}
	return Unknown
}

// ContractStatus returns the descriptor for a contract state.
func ContractStatus(s contract.State) Descriptor { return lookup(contractStatuses, s) }

// RequestStatus returns the descriptor for a data request state.
func RequestStatus(s request.State) Descriptor { return lookup(requestStatuses, s) }

// TemplateStatus returns the descriptor for a template state.
func TemplateStatus(s template.State) Descriptor { return lookup(templateStatuses, s) }

// HostingStatus returns the descriptor for a hosting status.
func HostingStatus(s offering.HostingStatus) Descriptor { return lookup(hostingStatuses, s) }

// CrossBorderAuditStatus returns the descriptor for a cross-border audit status.
func CrossBorderAuditStatus(s offering.CrossBorderAuditStatus) Descriptor {
	return lookup(auditStatuses, s)
}

// RegistrationStatus returns the descriptor for a registration status.
func RegistrationStatus(s offering.RegistrationStatus) Descriptor {
	return lookup(registrationStatuses, s)
}

// Catalog is the full status presentation catalog, keyed by enum name then
// status value. Served to clients so they never hardcode labels.
func Catalog() map[string]map[string]Descriptor {
	catalog := map[string]map[string]Descriptor{
		"contract_status":           {},
		"data_request_status":       {},
		"template_status":           {},
		"hosting_status":            {},
		"cross_border_audit_status": {},
		"registration_status":       {},
	}
	for s, d := range contractStatuses {
		catalog["contract_status"][s.String()] = d
	}
	for s, d := range requestStatuses {
		catalog["data_request_status"][s.String()] = d
	}
	for s, d := range templateStatuses {
		catalog["template_status"][s.String()] = d
	}
	for s, d := range hostingStatuses {
		catalog["hosting_status"][string(s)] = d
	}
	for s, d := range auditStatuses {
		catalog["cross_border_audit_status"][string(s)] = d
	}
	for s, d := range registrationStatuses {
		catalog["registration_status"][string(s)] = d
	}
	return catalog
}
