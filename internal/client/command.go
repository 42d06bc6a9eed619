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

// Package client contains a client for the connector API, this is the base of
// all client subcommands.
package client

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/internal/cfg"
	"github.com/trusted-dataspace/tdsc/internal/client/confirmcontract"
	"github.com/trusted-dataspace/tdsc/internal/client/deploycontract"
	"github.com/trusted-dataspace/tdsc/internal/client/listcontracts"
	"github.com/trusted-dataspace/tdsc/internal/client/listrequests"
	"github.com/trusted-dataspace/tdsc/internal/client/shared"
)

var (
	noColour bool
	Command  = &cobra.Command{
		Use:   "client",
		Short: "Run a connector client command.",
		Long:  `Run a command against a running connector's API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.CheckURL(viper.GetString(shared.Address)); err != nil {
				return err
			}
			if noColour {
				color.NoColor = true
				viper.Set(shared.NoColor, true)
			}
			return nil
		},
	}
)

func init() {
	cfg.AddPersistentFlag(
		Command, shared.Address, "address", "Base URL of the connector API.", "http://127.0.0.1:8080")
	cfg.AddPersistentFlag(
		Command, shared.Token, "token", "Bearer token to authenticate with.", "")

	Command.Flags().BoolVar(&noColour, "no-colour", false, "Disable colour in output.")
	Command.AddCommand(listcontracts.Command)
	Command.AddCommand(listrequests.Command)
	Command.AddCommand(confirmcontract.Command)
	Command.AddCommand(deploycontract.Command)
}
