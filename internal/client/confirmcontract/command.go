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

// Package confirmcontract submits the consumer's decision on a pending
// contract.
package confirmcontract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/internal/client/shared"
	"github.com/trusted-dataspace/tdsc/internal/ui"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	tdscshared "github.com/trusted-dataspace/tdsc/tdsc/shared"
)

func init() {
	Command.Flags().BoolVarP(&printJSON, "json", "j", false, "output the contract in JSON format")
	Command.Flags().BoolVar(&reject, "reject", false, "reject the contract instead of confirming it")
}

var (
	printJSON bool
	reject    bool

	Command = &cobra.Command{
		Use:   "confirmcontract <contract-id>",
		Short: "Confirm or reject a pending contract.",
		Long:  "Confirms a contract that is waiting on the consumer, activating it, or rejects it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, ok := viper.Get("initCTX").(context.Context)
			if !ok {
				return fmt.Errorf("couldn't fetch initial context")
			}

			client, err := shared.GetClient()
			if err != nil {
				return fmt.Errorf("couldn't initialise API client: %w", err)
			}

			action := "confirm"
			if reject {
				action = "reject"
			}
			reqBody, err := tdscshared.ValidateAndMarshal(ctx, tdscshared.ConfirmContractMessage{
				Action: action,
			})
			if err != nil {
				return err
			}

			body, err := client.Put(ctx, reqBody, "contracts", args[0], "confirm")
			if err != nil {
				return fmt.Errorf("could not %s contract: %w", action, err)
			}
			var c contract.Model
			if err := json.Unmarshal(body, &c); err != nil {
				return fmt.Errorf("could not parse contract: %w", err)
			}
			ui.Info(fmt.Sprintf("Contract %s is now %s", c.ID, c.Status))
			if printJSON {
				return shared.PprintJSON(c)
			}
			return nil
		},
	}
)
