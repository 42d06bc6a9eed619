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

// Package server provides the server subcommand.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	sloghttp "github.com/samber/slog-http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/internal/cfg"
	"github.com/trusted-dataspace/tdsc/logging"
	"github.com/trusted-dataspace/tdsc/tdsc"
	"github.com/trusted-dataspace/tdsc/tdsc/blockchain"
	"github.com/trusted-dataspace/tdsc/tdsc/constants"
	"github.com/trusted-dataspace/tdsc/tdsc/expiry"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	badgerprovider "github.com/trusted-dataspace/tdsc/tdsc/persistence/badger"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// Command validates the configuration and starts the connector server.
var Command = &cobra.Command{
	Use:   "server",
	Short: "Start the connector server",
	Long:  "Starts the trusted data space connector API server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.CheckURL(viper.GetString("server.identityGatewayURL")); err != nil {
			return err
		}
		if !viper.GetBool("server.persistence.badger.memory") {
			if err := cfg.CheckFilesExist(viper.GetString("server.persistence.badger.dbPath")); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, ok := viper.Get("initCTX").(context.Context)
		if !ok {
			return fmt.Errorf("couldn't fetch initial context")
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		logger := logging.Extract(ctx)

		store, err := badgerprovider.New(ctx,
			viper.GetBool("server.persistence.badger.memory"),
			viper.GetString("server.persistence.badger.dbPath"),
		)
		if err != nil {
			return err
		}
		if err := seedDataSpaces(ctx, store); err != nil {
			return err
		}

		expiryWorker := expiry.New(ctx, store)
		expiryWorker.Run()

		gateway := identity.NewHTTPGateway(
			shared.MustParseURL(viper.GetString("server.identityGatewayURL")))
		deployer := getDeployer()

		mux := http.NewServeMux()
		mux.Handle(constants.APIPath+"/",
			http.StripPrefix(constants.APIPath, tdsc.GetRoutes(store, gateway, deployer)))

		chain := alice.New(
			sloghttp.Recovery,
			sloghttp.New(logger),
			logging.NewMiddleware(logger),
		).Then(mux)

		listenAddr := fmt.Sprintf("%s:%d",
			viper.GetString("server.address"), viper.GetInt("server.port"))
		logger.Info("Starting connector server", "listenAddr", listenAddr)
		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	cfg.AddPersistentFlag(Command, "server.address", "address", "Address to listen on", "0.0.0.0")
	cfg.AddPersistentFlag(Command, "server.port", "port", "Port to listen on", 8080)
	cfg.AddPersistentFlag(Command,
		"server.identityGatewayURL", "identity-gateway-url",
		"Base URL of the upstream identity gateway", "http://127.0.0.1:9090")
	cfg.AddPersistentFlag(Command,
		"server.blockchain.gatewayURL", "blockchain-gateway-url",
		"Base URL of the blockchain gateway, empty simulates deployments", "")
	cfg.AddPersistentFlag(Command,
		"server.blockchain.network", "blockchain-network",
		"Network name for simulated deployments", "tdsc-devnet")
	cfg.AddPersistentFlag(Command,
		"server.persistence.badger.memory", "badger-memory",
		"Run badger fully in memory", false)
	cfg.AddPersistentFlag(Command,
		"server.persistence.badger.dbPath", "badger-dbpath",
		"Directory to store the badger database in", "/var/lib/tdsc/badger")
}

// seedDataSpaces loads the configured data spaces into the store. Data spaces
// are configuration, not API-managed state, so this overwrites existing ones.
func seedDataSpaces(ctx context.Context, store persistence.StorageProvider) error {
	var spaces []identity.DataSpace
	if err := viper.UnmarshalKey("server.dataSpaces", &spaces); err != nil {
		return fmt.Errorf("invalid data space configuration: %w", err)
	}
	logger := logging.Extract(ctx)
	for i := range spaces {
		if spaces[i].ID == "" || spaces[i].Code == "" || spaces[i].Name == "" {
			return fmt.Errorf("data space %d needs id, code and name", i)
		}
		if err := store.PutDataSpace(ctx, &spaces[i]); err != nil {
			return err
		}
		logger.Info("Seeded data space", "id", spaces[i].ID, "code", spaces[i].Code)
	}
	return nil
}

func getDeployer() blockchain.Deployer {
	if gatewayURL := viper.GetString("server.blockchain.gatewayURL"); gatewayURL != "" {
		return blockchain.NewGatewayDeployer(shared.MustParseURL(gatewayURL))
	}
	return &blockchain.SimulatedDeployer{
		Network: viper.GetString("server.blockchain.network"),
	}
}
