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

// Package listrequests lists the data requests known to the connector.
package listrequests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/internal/client/shared"
	"github.com/trusted-dataspace/tdsc/internal/ui"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

func init() {
	Command.Flags().BoolVarP(&printJSON, "json", "j", false, "output data requests in JSON format")
	Command.Flags().StringVar(&status, "status", "", "only show data requests with this status")
	Command.Flags().StringVar(&connectorID, "connector-id", "", "only show data requests involving this connector")
}

var (
	printJSON   bool
	status      string
	connectorID string

	Command = &cobra.Command{
		Use:   "listrequests",
		Short: "List data requests.",
		Long:  "Lists the data requests known to the connector, optionally filtered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, ok := viper.Get("initCTX").(context.Context)
			if !ok {
				return fmt.Errorf("couldn't fetch initial context")
			}

			client, err := shared.GetClient()
			if err != nil {
				return fmt.Errorf("couldn't initialise API client: %w", err)
			}

			query := url.Values{}
			if status != "" {
				query.Set("status", status)
			}
			if connectorID != "" {
				query.Set("connector_id", connectorID)
			}

			body, err := client.Get(ctx, query, "data-requests")
			if err != nil {
				return fmt.Errorf("could not list data requests: %w", err)
			}
			var requests []request.Model
			if err := json.Unmarshal(body, &requests); err != nil {
				return fmt.Errorf("could not parse data requests: %w", err)
			}
			ui.Info(fmt.Sprintf("Received %d data requests", len(requests)))
			return shared.PrintRequests(requests, printJSON)
		},
	}
)
