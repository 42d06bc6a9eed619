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

// Package constants contains constants shared between the connector packages.
package constants

import "fmt"

// ConnectorRole is the role a connector plays in a data exchange.
type ConnectorRole int

const (
	// RoleProvider is the connector offering the data.
	RoleProvider ConnectorRole = iota
	// RoleConsumer is the connector requesting the data.
	RoleConsumer
)

func (r ConnectorRole) String() string {
	switch r {
	case RoleProvider:
		return "provider"
	case RoleConsumer:
		return "consumer"
	default:
		panic(fmt.Sprintf("invalid connector role: %d", int(r)))
	}
}

// ParseRole parses a role string as found in query parameters.
func ParseRole(s string) (ConnectorRole, error) {
	switch s {
	case "provider":
		return RoleProvider, nil
	case "consumer":
		return RoleConsumer, nil
	default:
		return 0, fmt.Errorf("invalid connector role: %s", s)
	}
}

const (
	// APIPath is the prefix all connector endpoints are served under.
	APIPath = "/api/v1"
)
