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

// Package deploycontract anchors an active contract on the blockchain.
package deploycontract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/internal/client/shared"
	"github.com/trusted-dataspace/tdsc/internal/ui"
	tdscshared "github.com/trusted-dataspace/tdsc/tdsc/shared"
)

func init() {
	Command.Flags().BoolVarP(&printJSON, "json", "j", false, "output the deployment receipt in JSON format")
}

var (
	printJSON bool

	Command = &cobra.Command{
		Use:   "deploycontract <contract-id>",
		Short: "Deploy an active contract to the blockchain.",
		Long:  "Asks the connector to anchor an active contract on its configured blockchain network.",
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

			body, err := client.Post(ctx, nil, "contracts", args[0], "deploy")
			if err != nil {
				return fmt.Errorf("could not deploy contract: %w", err)
			}
			var receipt tdscshared.DeployReceipt
			if err := json.Unmarshal(body, &receipt); err != nil {
				return fmt.Errorf("could not parse deployment receipt: %w", err)
			}
			ui.Info(fmt.Sprintf("Contract deployed to %s at %s (tx %s)",
				receipt.BlockchainNetwork, receipt.ContractAddress, receipt.BlockchainTxID))
			if printJSON {
				return shared.PprintJSON(receipt)
			}
			return nil
		},
	}
)
