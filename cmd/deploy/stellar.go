package deploy

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"

	deployments "github.com/axelarnetwork/axelar-deployments"
	"github.com/axelarnetwork/axelar-deployments/internal/artifacts"
	"github.com/axelarnetwork/axelar-deployments/internal/utils/safecast"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	"github.com/axelarnetwork/axelar-deployments/sdk/stellar"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// stroopsPerLumen converts human XLM amounts to the 7-decimal base unit.
const stroopsPerLumen = 10_000_000

type stellarSession struct {
	rt     *runtime
	chain  *deployments.ChainConfig
	client *stellar.Client
	kp     *keypair.Full
}

func buildStellarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stellar",
		Short: "Operate Soroban contracts on Stellar",
	}

	cmd.AddCommand(
		buildStellarDeployContractCmd(),
		buildStellarUpgradeContractCmd(),
		buildStellarGatewayCmd(),
		buildStellarItsCmd(),
		buildStellarOperatorsCmd(),
		buildStellarGasServiceCmd(),
		buildStellarOwnershipCmd(),
		buildStellarGenerateKeypairCmd(),
		buildStellarFaucetCmd(),
		buildStellarBalancesCmd(),
	)

	return cmd
}

// stellarPassphrase maps the manifest networkType to the network passphrase
// transactions are signed against.
func stellarPassphrase(networkType string) string {
	switch networkType {
	case "mainnet":
		return network.PublicNetworkPassphrase
	case "futurenet":
		return "Test SDF Future Network ; October 2022"
	case "local":
		return "Standalone Network ; February 2017"
	default:
		return network.TestNetworkPassphrase
	}
}

func newStellarSession(cmd *cobra.Command, needKey bool) (*stellarSession, error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return nil, err
	}
	chain, err := rt.chain(types.FamilyStellar)
	if err != nil {
		return nil, err
	}
	if chain.HorizonRPC == "" {
		return nil, fmt.Errorf("chain %s has no horizonRpc", chain.Name)
	}

	horizon := &horizonclient.Client{HorizonURL: chain.HorizonRPC}
	client := stellar.NewClient(chain.RPC, horizon, stellarPassphrase(chain.NetworkType))

	session := &stellarSession{rt: rt, chain: chain, client: client}
	if needKey {
		seed, err := rt.requireKey()
		if err != nil {
			return nil, err
		}
		kp, err := keypair.ParseFull(seed)
		if err != nil {
			return nil, fmt.Errorf("parse secret seed: %w", err)
		}
		session.kp = kp
	}

	return session, nil
}

// wasmSource resolves the upload bytes from either a local path or a
// published release version.
func (s *stellarSession) wasmSource(cmd *cobra.Command, wasmPath, contract, version string) ([]byte, error) {
	source := wasmPath
	if source == "" {
		if version == "" {
			return nil, fmt.Errorf("either --wasm-path or --version is required")
		}
		url, err := artifacts.StellarReleaseURL(contract, version)
		if err != nil {
			return nil, err
		}
		source = url
	}

	return artifacts.NewFetcher().Fetch(cmd.Context(), source)
}

func buildStellarDeployContractCmd() *cobra.Command {
	var (
		wasmPath string
		version  string
		pkgName  string
		initArgs string
		salt     string
	)

	cmd := &cobra.Command{
		Use:   "deploy-contract <contract-name>",
		Short: "Upload a wasm and instantiate the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newStellarSession(cmd, true)
			if err != nil {
				return err
			}
			code, err := session.wasmSource(cmd, wasmPath, releasePackage(pkgName, name), version)
			if err != nil {
				return err
			}
			packedArgs, err := hexBytes(initArgs)
			if err != nil {
				return fmt.Errorf("parse init args: %w", err)
			}

			deployer := stellar.NewDeployer(session.client, session.kp)

			if err := session.rt.confirm(fmt.Sprintf("deploy %s to %s", name, session.chain.Name)); err != nil {
				return err
			}

			upload, err := deployer.Upload(cmd.Context(), code)
			if err != nil {
				return err
			}
			session.rt.log.Info().Str("wasmHash", upload.ID).Str("txHash", upload.TxHash).Msg("wasm uploaded")

			result, err := deployer.Deploy(cmd.Context(), sdk.DeployParams{
				CodeHash: upload.ID,
				InitArgs: packedArgs,
				Salt:     salt,
			})
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("contract", name).
				Str("address", result.Address).
				Str("txHash", result.TxHash).
				Msg("contract deployed")

			session.chain.SetContract(name, &deployments.ContractConfig{
				Address:  result.Address,
				Deployer: session.kp.Address(),
				WasmHash: upload.ID,
				Salt:     salt,
				Version:  version,
			})

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm-path", "", "local wasm artifact")
	cmd.Flags().StringVar(&version, "version", "", "published release version to fetch")
	cmd.Flags().StringVar(&pkgName, "package", "", "release package name; defaults from the contract name")
	cmd.Flags().StringVar(&initArgs, "init-args", "", "XDR-encoded constructor ScVec, hex")
	cmd.Flags().StringVar(&salt, "salt", "", "contract id salt")

	return cmd
}

func buildStellarUpgradeContractCmd() *cobra.Command {
	var (
		wasmPath string
		version  string
		pkgName  string
	)

	cmd := &cobra.Command{
		Use:   "upgrade-contract <contract-name>",
		Short: "Upload new wasm and migrate the deployed contract to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newStellarSession(cmd, true)
			if err != nil {
				return err
			}
			address, err := contractAddress(session.chain, name)
			if err != nil {
				return err
			}
			code, err := session.wasmSource(cmd, wasmPath, releasePackage(pkgName, name), version)
			if err != nil {
				return err
			}

			deployer := stellar.NewDeployer(session.client, session.kp)

			if err := session.rt.confirm(fmt.Sprintf("upgrade %s on %s", name, session.chain.Name)); err != nil {
				return err
			}

			upload, err := deployer.Upload(cmd.Context(), code)
			if err != nil {
				return err
			}
			session.rt.log.Info().Str("wasmHash", upload.ID).Msg("wasm uploaded")

			result, err := deployer.Upgrade(cmd.Context(), sdk.UpgradeParams{
				Address:  address,
				CodeHash: upload.ID,
			})
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("contract upgraded")

			contract, err := session.chain.Contract(name)
			if err != nil {
				return err
			}
			contract.WasmHash = upload.ID
			if version != "" {
				contract.Version = version
			}

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm-path", "", "local wasm artifact")
	cmd.Flags().StringVar(&version, "version", "", "published release version to fetch")
	cmd.Flags().StringVar(&pkgName, "package", "", "release package name; defaults from the contract name")

	return cmd
}

func buildStellarGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Operate the gateway contract",
	}

	gateway := func(cmd *cobra.Command) (*stellarSession, *stellar.Gateway, error) {
		session, err := newStellarSession(cmd, true)
		if err != nil {
			return nil, nil, err
		}
		address, err := contractAddress(session.chain, contractGateway)
		if err != nil {
			return nil, nil, err
		}
		gw, err := stellar.NewGateway(session.client, session.kp, address)
		if err != nil {
			return nil, nil, err
		}

		return session, gw, nil
	}

	approve := &cobra.Command{
		Use:   "approve <execute-data-hex>",
		Short: "Submit a message-approval proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, gw, err := gateway(cmd)
			if err != nil {
				return err
			}
			executeData, err := parseExecuteData(args[0])
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("approve messages on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := gw.ApproveMessages(cmd.Context(), executeData)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("messages approved")

			return session.logGatewayState(cmd)
		},
	}

	rotate := &cobra.Command{
		Use:   "rotate <execute-data-hex>",
		Short: "Submit a verifier-set rotation proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, gw, err := gateway(cmd)
			if err != nil {
				return err
			}
			executeData, err := parseExecuteData(args[0])
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("rotate gateway signers on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := gw.RotateSigners(cmd.Context(), executeData)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("signers rotated")

			return session.logGatewayState(cmd)
		},
	}

	callContract := &cobra.Command{
		Use:   "call-contract <destination-chain> <destination-address> <payload-hex>",
		Short: "Send a cross-chain message through the gateway",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, gw, err := gateway(cmd)
			if err != nil {
				return err
			}
			payload, err := hexBytes(args[2])
			if err != nil {
				return fmt.Errorf("parse payload: %w", err)
			}
			if err := session.rt.confirm(fmt.Sprintf("call %s on %s from %s", args[1], args[0], session.chain.Name)); err != nil {
				return err
			}

			result, err := gw.CallContract(cmd.Context(), args[0], args[1], payload)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("contract call sent")

			return nil
		},
	}

	transferOperatorship := &cobra.Command{
		Use:   "transfer-operatorship <new-operator>",
		Short: "Hand the gateway operator role to a new address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, gw, err := gateway(cmd)
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("transfer gateway operatorship on %s to %s", session.chain.Name, args[0])); err != nil {
				return err
			}

			result, err := gw.TransferOperatorship(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("operatorship transferred")

			return session.logGatewayState(cmd)
		},
	}

	state := &cobra.Command{
		Use:   "state",
		Short: "Print the gateway operator, epoch and signers hash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newStellarSession(cmd, true)
			if err != nil {
				return err
			}
			inspector, err := session.inspector()
			if err != nil {
				return err
			}

			gatewayState, err := inspector.GatewayState(cmd.Context())
			if err != nil {
				return err
			}
			printGatewayState(cmd, gatewayState)

			return nil
		},
	}

	cmd.AddCommand(approve, rotate, callContract, transferOperatorship, state)
	cmd.AddCommand(buildGatewayQueryCommands(func(cmd *cobra.Command) (*runtime, sdk.Gateway, error) {
		session, gw, err := gateway(cmd)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, gw, nil
	})...)

	return cmd
}

func (s *stellarSession) inspector() (*stellar.Inspector, error) {
	gateway, err := contractAddress(s.chain, contractGateway)
	if err != nil {
		return nil, err
	}

	return stellar.NewInspector(s.client, s.kp.Address(), gateway)
}

func (s *stellarSession) logGatewayState(cmd *cobra.Command) error {
	inspector, err := s.inspector()
	if err != nil {
		return err
	}

	state, err := inspector.GatewayState(cmd.Context())
	if err != nil {
		return fmt.Errorf("verify gateway state: %w", err)
	}

	s.rt.log.Info().
		Str("operator", state.Operator).
		Uint64("epoch", state.Epoch).
		Msg("gateway state")

	return nil
}

func buildStellarItsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its",
		Short: "Operate the interchain token service",
	}

	cmd.AddCommand(buildItsCommands(func(cmd *cobra.Command) (*runtime, sdk.InterchainTokenService, error) {
		session, err := newStellarSession(cmd, true)
		if err != nil {
			return nil, nil, err
		}
		address, err := contractAddress(session.chain, contractITS)
		if err != nil {
			return nil, nil, err
		}

		its, err := stellar.NewIts(session.client, session.kp, address, session.chain.TokenAddress)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, its, nil
	})...)

	return cmd
}

func buildStellarOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "Manage the operators registry",
	}

	cmd.AddCommand(buildOperatorCommands(func(cmd *cobra.Command) (*runtime, sdk.OperatorRegistry, error) {
		session, err := newStellarSession(cmd, true)
		if err != nil {
			return nil, nil, err
		}
		address, err := contractAddress(session.chain, contractOperators)
		if err != nil {
			return nil, nil, err
		}

		operators, err := stellar.NewOperators(session.client, session.kp, address)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, operators, nil
	})...)

	return cmd
}

func buildStellarGasServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gas-service",
		Short: "Operate the gas service contract",
	}

	cmd.AddCommand(buildGasServiceCommands(func(cmd *cobra.Command) (*runtime, sdk.GasService, error) {
		session, err := newStellarSession(cmd, true)
		if err != nil {
			return nil, nil, err
		}
		address, err := contractAddress(session.chain, contractGasService)
		if err != nil {
			return nil, nil, err
		}

		service, err := stellar.NewGasService(session.client, session.kp, address, session.chain.TokenAddress)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, service, nil
	})...)

	var (
		gasTxHash   string
		gasLogIndex uint64
		gasRefund   string
		gasLumens   float64
	)
	addGasXLM := &cobra.Command{
		Use:   "add-gas-xlm",
		Short: "Escrow additional gas, denominated in XLM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newStellarSession(cmd, true)
			if err != nil {
				return err
			}
			address, err := contractAddress(session.chain, contractGasService)
			if err != nil {
				return err
			}
			service, err := stellar.NewGasService(session.client, session.kp, address, session.chain.TokenAddress)
			if err != nil {
				return err
			}

			stroops, err := safecast.Float64ToUint64(gasLumens * stroopsPerLumen)
			if err != nil {
				return fmt.Errorf("parse amount: %w", err)
			}
			if err := session.rt.confirm(fmt.Sprintf("add %g XLM of gas for %s", gasLumens, gasTxHash)); err != nil {
				return err
			}

			result, err := service.AddGas(cmd.Context(), sdk.AddGasParams{
				TxHash:        gasTxHash,
				LogIndex:      gasLogIndex,
				RefundAddress: gasRefund,
				Amount:        new(big.Int).SetUint64(stroops),
			})
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Uint64("stroops", stroops).Msg("gas added")

			return nil
		},
	}
	addGasXLM.Flags().StringVar(&gasTxHash, "tx-hash", "", "source transaction of the message")
	addGasXLM.Flags().Uint64Var(&gasLogIndex, "log-index", 0, "event index of the message")
	addGasXLM.Flags().StringVar(&gasRefund, "refund-address", "", "address refunded if the gas is unused")
	addGasXLM.Flags().Float64Var(&gasLumens, "amount", 0, "gas amount in XLM")
	_ = addGasXLM.MarkFlagRequired("tx-hash")
	_ = addGasXLM.MarkFlagRequired("amount")

	cmd.AddCommand(addGasXLM)

	return cmd
}

func buildStellarOwnershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ownership",
		Short: "Transfer contract ownership",
	}

	cmd.AddCommand(buildOwnershipCommands(func(cmd *cobra.Command) (*runtime, *deployments.ChainConfig, sdk.Ownable, error) {
		session, err := newStellarSession(cmd, true)
		if err != nil {
			return nil, nil, nil, err
		}

		return session.rt, session.chain, stellar.NewOwnership(session.client, session.kp), nil
	})...)

	return cmd
}

func buildStellarGenerateKeypairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-keypair",
		Short: "Generate a fresh account keypair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kp, err := stellar.GenerateKeypair()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nseed:    %s\n", kp.Address(), kp.Seed())

			return nil
		},
	}
}

func buildStellarFaucetCmd() *cobra.Command {
	var recipient string

	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Fund an account from the network friendbot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newStellarSession(cmd, recipient == "")
			if err != nil {
				return err
			}
			if session.rt.env.IsMainnet() {
				return fmt.Errorf("faucet is not available on mainnet")
			}

			address := recipient
			if address == "" {
				address = session.kp.Address()
			}

			if err := session.client.Fund(address); err != nil {
				return err
			}

			session.rt.log.Info().Str("address", address).Msg("account funded")

			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "recipient", "", "account to fund; defaults to the signer")

	return cmd
}

func buildStellarBalancesCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print an account's XLM balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newStellarSession(cmd, account == "")
			if err != nil {
				return err
			}

			address := account
			if address == "" {
				address = session.kp.Address()
			}

			balance, err := session.client.NativeBalance(address)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s XLM\n", address, balance)

			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account to query; defaults to the signer")

	return cmd
}

// releasePackage defaults the release package name from the manifest
// contract name: AxelarGateway becomes stellar-axelar-gateway.
func releasePackage(explicit, contractName string) string {
	if explicit != "" {
		return explicit
	}

	return "stellar-" + kebabCase(contractName)
}
