package deploy

import (
	"fmt"

	"github.com/spf13/cobra"

	deployments "github.com/axelarnetwork/axelar-deployments"
	"github.com/axelarnetwork/axelar-deployments/internal/artifacts"
	"github.com/axelarnetwork/axelar-deployments/internal/utils/safecast"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	"github.com/axelarnetwork/axelar-deployments/sdk/sui"
	"github.com/axelarnetwork/axelar-deployments/types"
)

type suiSession struct {
	rt     *runtime
	chain  *deployments.ChainConfig
	client *sui.Client
}

func buildSuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sui",
		Short: "Operate Move packages on Sui",
	}

	cmd.PersistentFlags().Int64("gas-budget", 0, "gas budget per transaction in MIST; 0 uses the default")

	cmd.AddCommand(
		buildSuiDeployContractCmd(),
		buildSuiUpgradeCmd(),
		buildSuiGatewayCmd(),
		buildSuiItsCmd(),
		buildSuiGasServiceCmd(),
		buildSuiOperatorsCmd(),
		buildSuiFaucetCmd(),
	)

	return cmd
}

func newSuiSession(cmd *cobra.Command) (*suiSession, error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return nil, err
	}
	chain, err := rt.chain(types.FamilySui)
	if err != nil {
		return nil, err
	}
	key, err := rt.requireKey()
	if err != nil {
		return nil, err
	}

	client, err := sui.NewClient(chain.RPC, key)
	if err != nil {
		return nil, err
	}

	budget, err := cmd.Flags().GetInt64("gas-budget")
	if err != nil {
		return nil, err
	}
	if budget != 0 {
		gasBudget, err := safecast.Int64ToUint64(budget)
		if err != nil {
			return nil, fmt.Errorf("parse gas budget: %w", err)
		}
		client.SetGasBudget(gasBudget)
	}

	return &suiSession{rt: rt, chain: chain, client: client}, nil
}

// objectID reads a created-object id from a contract's manifest entry,
// trying each candidate key in order.
func objectID(contract *deployments.ContractConfig, keys ...string) (string, error) {
	for _, key := range keys {
		if id, ok := contract.Objects[key]; ok && id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("manifest entry has no %s object", keys[0])
}

func (s *suiSession) packageEntry(name string) (*deployments.ContractConfig, string, error) {
	contract, err := s.chain.Contract(name)
	if err != nil {
		return nil, "", err
	}
	if contract.Address == "" {
		return nil, "", fmt.Errorf("contract %s on chain %s has no package id", name, s.chain.Name)
	}

	return contract, contract.Address, nil
}

func buildSuiDeployContractCmd() *cobra.Command {
	var (
		artifactPath string
		version      string
	)

	cmd := &cobra.Command{
		Use:   "deploy-contract <contract-name>",
		Short: "Publish a move package from a build artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			code, err := artifacts.NewFetcher().Fetch(cmd.Context(), artifactPath)
			if err != nil {
				return err
			}

			if err := session.rt.confirm(fmt.Sprintf("publish %s to %s", name, session.chain.Name)); err != nil {
				return err
			}

			result, err := sui.NewDeployer(session.client).Deploy(cmd.Context(), sdk.DeployParams{Code: code})
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("contract", name).
				Str("packageId", result.Address).
				Str("txDigest", result.TxHash).
				Int("objects", len(result.Objects)).
				Msg("package published")

			session.chain.SetContract(name, &deployments.ContractConfig{
				Address:  result.Address,
				Deployer: session.client.Address(),
				Version:  version,
				Objects:  result.Objects,
			})

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "", "move build artifact JSON: local path or https URL")
	cmd.Flags().StringVar(&version, "version", "", "package version recorded in the manifest")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}

func buildSuiUpgradeCmd() *cobra.Command {
	var (
		artifactPath string
		capability   string
		version      string
	)

	cmd := &cobra.Command{
		Use:   "upgrade-contract <contract-name>",
		Short: "Upgrade a published move package to new code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			contract, packageID, err := session.packageEntry(name)
			if err != nil {
				return err
			}
			capabilityID := capability
			if capabilityID == "" {
				capabilityID, err = objectID(contract, "UpgradeCap")
				if err != nil {
					return err
				}
			}
			code, err := artifacts.NewFetcher().Fetch(cmd.Context(), artifactPath)
			if err != nil {
				return err
			}

			if err := session.rt.confirm(fmt.Sprintf("upgrade %s on %s", name, session.chain.Name)); err != nil {
				return err
			}

			result, err := sui.NewDeployer(session.client).UpgradePackage(cmd.Context(), sdk.UpgradeParams{
				Address:    packageID,
				NewCode:    code,
				Capability: capabilityID,
			})
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("contract", name).
				Str("packageId", result.Address).
				Str("txDigest", result.TxHash).
				Msg("package upgraded")

			// Upgrades mint a new package id. Shared objects created at
			// publish keep their ids, so the recorded objects stay valid.
			contract.Address = result.Address
			if version != "" {
				contract.Version = version
			}

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "", "move build artifact JSON: local path or https URL")
	cmd.Flags().StringVar(&capability, "upgrade-cap", "", "UpgradeCap object id; defaults to the manifest record")
	cmd.Flags().StringVar(&version, "version", "", "package version recorded in the manifest")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}

func (s *suiSession) gateway() (*sui.Gateway, error) {
	contract, packageID, err := s.packageEntry(contractGateway)
	if err != nil {
		return nil, err
	}
	gatewayObject, err := objectID(contract, "Gateway")
	if err != nil {
		return nil, err
	}

	return sui.NewGateway(s.client, packageID, gatewayObject)
}

func buildSuiGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Operate the gateway package",
	}

	approve := &cobra.Command{
		Use:   "approve <execute-data-hex>",
		Short: "Submit a message-approval proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			executeData, err := parseExecuteData(args[0])
			if err != nil {
				return err
			}
			gateway, err := session.gateway()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("approve messages on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := gateway.ApproveMessages(cmd.Context(), executeData)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txDigest", result.Hash).Msg("messages approved")

			return nil
		},
	}

	rotate := &cobra.Command{
		Use:   "rotate <execute-data-hex>",
		Short: "Submit a verifier-set rotation proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			executeData, err := parseExecuteData(args[0])
			if err != nil {
				return err
			}
			gateway, err := session.gateway()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("rotate gateway signers on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := gateway.RotateSigners(cmd.Context(), executeData)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txDigest", result.Hash).Msg("signers rotated")

			return nil
		},
	}

	callContract := &cobra.Command{
		Use:   "call-contract <destination-chain> <destination-address> <payload-hex>",
		Short: "Send a cross-chain message through the gateway",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			payload, err := hexBytes(args[2])
			if err != nil {
				return fmt.Errorf("parse payload: %w", err)
			}
			gateway, err := session.gateway()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("call %s on %s from %s", args[1], args[0], session.chain.Name)); err != nil {
				return err
			}

			result, err := gateway.CallContract(cmd.Context(), args[0], args[1], payload)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txDigest", result.Hash).Msg("contract call sent")

			return nil
		},
	}

	transferOperatorship := &cobra.Command{
		Use:   "transfer-operatorship <new-operator>",
		Short: "Hand the gateway operator role to a new address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			gateway, err := session.gateway()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("transfer gateway operatorship on %s to %s", session.chain.Name, args[0])); err != nil {
				return err
			}

			result, err := gateway.TransferOperatorship(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txDigest", result.Hash).Msg("operatorship transferred")

			return nil
		},
	}

	cmd.AddCommand(approve, rotate, callContract, transferOperatorship)
	cmd.AddCommand(buildGatewayQueryCommands(func(cmd *cobra.Command) (*runtime, sdk.Gateway, error) {
		session, err := newSuiSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		gateway, err := session.gateway()
		if err != nil {
			return nil, nil, err
		}

		return session.rt, gateway, nil
	})...)

	return cmd
}

func buildSuiItsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its",
		Short: "Operate the interchain token service package",
	}

	cmd.AddCommand(buildItsCommands(func(cmd *cobra.Command) (*runtime, sdk.InterchainTokenService, error) {
		session, err := newSuiSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		contract, packageID, err := session.packageEntry(contractITS)
		if err != nil {
			return nil, nil, err
		}
		itsObject, err := objectID(contract, "ITS", "InterchainTokenService")
		if err != nil {
			return nil, nil, err
		}
		ownerCap, err := objectID(contract, "OwnerCap")
		if err != nil {
			return nil, nil, err
		}

		its, err := sui.NewIts(session.client, packageID, itsObject, ownerCap)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, its, nil
	})...)

	return cmd
}

func buildSuiGasServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gas-service",
		Short: "Operate the gas service package",
	}

	cmd.AddCommand(buildGasServiceCommands(func(cmd *cobra.Command) (*runtime, sdk.GasService, error) {
		session, err := newSuiSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		contract, packageID, err := session.packageEntry(contractGasService)
		if err != nil {
			return nil, nil, err
		}
		serviceObject, err := objectID(contract, "GasService")
		if err != nil {
			return nil, nil, err
		}
		collectorCap, _ := objectID(contract, "GasCollectorCap", "OperatorCap")

		service, err := sui.NewGasService(session.client, packageID, serviceObject, collectorCap)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, service, nil
	})...)

	return cmd
}

func buildSuiOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "Manage the operators package",
	}

	cmd.AddCommand(buildOperatorCommands(func(cmd *cobra.Command) (*runtime, sdk.OperatorRegistry, error) {
		session, err := newSuiSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		contract, packageID, err := session.packageEntry(contractOperators)
		if err != nil {
			return nil, nil, err
		}
		operatorsObject, err := objectID(contract, "Operators")
		if err != nil {
			return nil, nil, err
		}
		ownerCap, err := objectID(contract, "OwnerCap")
		if err != nil {
			return nil, nil, err
		}

		operators, err := sui.NewOperators(session.client, packageID, operatorsObject, ownerCap)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, operators, nil
	})...)

	return cmd
}

func buildSuiFaucetCmd() *cobra.Command {
	var faucetURL string

	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Request test tokens for the signer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSuiSession(cmd)
			if err != nil {
				return err
			}
			if session.rt.env.IsMainnet() {
				return fmt.Errorf("faucet is not available on mainnet")
			}

			if err := session.client.RequestFaucet(faucetURL); err != nil {
				return err
			}

			session.rt.log.Info().Str("address", session.client.Address()).Msg("faucet request sent")

			return nil
		},
	}

	cmd.Flags().StringVar(&faucetURL, "faucet-url", "", "faucet endpoint")
	_ = cmd.MarkFlagRequired("faucet-url")

	return cmd
}
