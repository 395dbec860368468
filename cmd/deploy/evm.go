package deploy

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"

	deployments "github.com/axelarnetwork/axelar-deployments"
	"github.com/axelarnetwork/axelar-deployments/internal/artifacts"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/sdk/evm"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// evmSession bundles the dialed client and signer for one EVM command.
type evmSession struct {
	rt     *runtime
	chain  *deployments.ChainConfig
	client *ethclient.Client
	signer evm.Signer
	auth   *bind.TransactOpts
}

func buildEVMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evm",
		Short: "Operate contracts on EVM chains",
	}

	cmd.PersistentFlags().Bool("ledger", false, "sign with a Ledger device")
	cmd.PersistentFlags().String("derivation-path", "m/44'/60'/0'/0/0", "Ledger derivation path")

	cmd.AddCommand(
		buildEVMDeployContractCmd(),
		buildEVMUpgradeCmd(),
		buildEVMGatewayCmd(),
		buildEVMItsCmd(),
		buildEVMOperatorsCmd(),
		buildEVMGasServiceCmd(),
		buildEVMOwnershipCmd(),
		buildEVMCodeHashCmd(),
		buildEVMBalancesCmd(),
	)

	return cmd
}

func newEVMSession(cmd *cobra.Command) (*evmSession, error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return nil, err
	}
	chain, err := rt.chain(types.FamilyEVM)
	if err != nil {
		return nil, err
	}

	signer, err := evmSigner(cmd, rt)
	if err != nil {
		return nil, err
	}

	chainID, err := chainIDBig(chain)
	if err != nil {
		return nil, err
	}
	auth, err := signer.TransactOpts(chainID)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.Dial(chain.RPC)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", chain.RPC, err)
	}

	return &evmSession{rt: rt, chain: chain, client: client, signer: signer, auth: auth}, nil
}

func evmSigner(cmd *cobra.Command, rt *runtime) (evm.Signer, error) {
	ledger, err := cmd.Flags().GetBool("ledger")
	if err != nil {
		return nil, err
	}
	if ledger {
		rawPath, err := cmd.Flags().GetString("derivation-path")
		if err != nil {
			return nil, err
		}
		path, err := accounts.ParseDerivationPath(rawPath)
		if err != nil {
			return nil, fmt.Errorf("parse derivation path: %w", err)
		}

		return evm.NewLedgerSigner(path), nil
	}

	key, err := rt.requireKey()
	if err != nil {
		return nil, err
	}

	return evm.NewPrivateKeySignerFromHex(key)
}

// applyGasOptions copies a manifest gas limit override for one contract into
// the session's transact opts. Absent overrides leave estimation to the node.
func (s *evmSession) applyGasOptions(contract *deployments.ContractConfig) {
	if contract.GasOptions != nil && contract.GasOptions.GasLimit > 0 {
		s.auth.GasLimit = contract.GasOptions.GasLimit
	}
}

// deployerAddress reads a deterministic deployer contract address from the
// manifest, tolerating its absence for plain create deployments.
func (s *evmSession) deployerAddress(name string) common.Address {
	contract, err := s.chain.Contract(name)
	if err != nil || contract.Address == "" {
		return common.Address{}
	}

	return common.HexToAddress(contract.Address)
}

func (s *evmSession) gateway() (*evm.Gateway, error) {
	address, err := contractAddress(s.chain, contractGateway)
	if err != nil {
		return nil, err
	}

	return evm.NewGateway(s.client, s.auth, common.HexToAddress(address)), nil
}

func (s *evmSession) inspector() (*evm.Inspector, error) {
	address, err := contractAddress(s.chain, contractGateway)
	if err != nil {
		return nil, err
	}

	return evm.NewInspector(s.client, common.HexToAddress(address)), nil
}

func buildEVMDeployContractCmd() *cobra.Command {
	var (
		artifactSource string
		method         string
		salt           string
		initArgs       string
		version        string
	)

	cmd := &cobra.Command{
		Use:   "deploy-contract <contract-name>",
		Short: "Deploy a contract from a compiler artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newEVMSession(cmd)
			if err != nil {
				return err
			}

			artifact, err := loadEVMArtifact(cmd, artifactSource)
			if err != nil {
				return err
			}
			code, err := artifact.BytecodeBytes()
			if err != nil {
				return err
			}
			packedArgs, err := hexBytes(initArgs)
			if err != nil {
				return fmt.Errorf("parse init args: %w", err)
			}

			contract, err := session.chain.Contract(name)
			if err != nil {
				contract = &deployments.ContractConfig{}
			}
			session.applyGasOptions(contract)

			deployer := evm.NewDeployer(session.client, session.auth,
				session.deployerAddress(contractConstAddressDeployer),
				session.deployerAddress(contractCreate3Deployer))

			if err := session.rt.confirm(fmt.Sprintf("deploy %s to %s via %s", name, session.chain.Name, deployMethod(method))); err != nil {
				return err
			}

			result, err := deployer.Deploy(cmd.Context(), sdk.DeployParams{
				Code:     code,
				InitArgs: packedArgs,
				Salt:     salt,
				Method:   deployMethod(method),
			})
			if err != nil {
				return err
			}

			if _, err := evm.WaitForTransaction(cmd.Context(), session.client, common.HexToHash(result.TxHash)); err != nil {
				return err
			}
			codeHash, err := evm.CodeHash(cmd.Context(), session.client, result.Address)
			if err != nil {
				return fmt.Errorf("read deployed code: %w", err)
			}

			session.rt.log.Info().
				Str("chain", session.chain.Name).
				Str("contract", name).
				Str("address", result.Address).
				Str("codeHash", codeHash).
				Str("txHash", result.TxHash).
				Msg("contract deployed")

			signerAddress, err := session.signer.Address()
			if err != nil {
				return err
			}
			contract.Address = result.Address
			contract.Deployer = signerAddress.Hex()
			contract.CodeHash = codeHash
			contract.DeploymentMethod = string(deployMethod(method))
			contract.Salt = salt
			contract.Version = version
			session.chain.SetContract(name, contract)

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&artifactSource, "artifact", "", "compiler artifact JSON: local path or https URL")
	cmd.Flags().StringVar(&method, "method", "create", "deployment method: create, create2 or create3")
	cmd.Flags().StringVar(&salt, "salt", "", "salt for deterministic deployments")
	cmd.Flags().StringVar(&initArgs, "init-args", "", "ABI-packed constructor arguments, hex")
	cmd.Flags().StringVar(&version, "version", "", "contract version recorded in the manifest")
	_ = cmd.MarkFlagRequired("artifact")

	return cmd
}

func buildEVMUpgradeCmd() *cobra.Command {
	var (
		implementation string
		migrateArgs    string
	)

	cmd := &cobra.Command{
		Use:   "upgrade-contract <contract-name>",
		Short: "Point a proxy contract at a new implementation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newEVMSession(cmd)
			if err != nil {
				return err
			}
			contract, err := session.chain.Contract(name)
			if err != nil {
				return err
			}
			session.applyGasOptions(contract)
			data, err := hexBytes(migrateArgs)
			if err != nil {
				return fmt.Errorf("parse migrate args: %w", err)
			}

			deployer := evm.NewDeployer(session.client, session.auth, common.Address{}, common.Address{})

			if err := session.rt.confirm(fmt.Sprintf("upgrade %s on %s to %s", name, session.chain.Name, implementation)); err != nil {
				return err
			}

			result, err := deployer.Upgrade(cmd.Context(), sdk.UpgradeParams{
				Address:        contract.Address,
				Implementation: implementation,
				MigrateArgs:    data,
			})
			if err != nil {
				return err
			}

			if _, err := evm.WaitForTransaction(cmd.Context(), session.client, common.HexToHash(result.Hash)); err != nil {
				return err
			}
			codeHash, err := evm.CodeHash(cmd.Context(), session.client, implementation)
			if err != nil {
				return fmt.Errorf("read implementation code: %w", err)
			}

			session.rt.log.Info().
				Str("chain", session.chain.Name).
				Str("contract", name).
				Str("implementation", implementation).
				Str("codeHash", codeHash).
				Str("txHash", result.Hash).
				Msg("contract upgraded")

			contract.Implementation = implementation
			contract.CodeHash = codeHash

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&implementation, "implementation", "", "deployed implementation address")
	cmd.Flags().StringVar(&migrateArgs, "migrate-args", "", "ABI-packed setup arguments, hex")
	_ = cmd.MarkFlagRequired("implementation")

	return cmd
}

func buildEVMGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Operate the gateway contract",
	}

	submitProof := &cobra.Command{
		Use:   "submit-proof <execute-data-hex>",
		Short: "Submit prover execute data, routing on its selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newEVMSession(cmd)
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

			if err := session.rt.confirm(fmt.Sprintf("submit proof to gateway on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := gateway.ApproveMessages(cmd.Context(), executeData)
			var invalidData *sdkerrors.InvalidExecuteDataError
			if errors.As(err, &invalidData) {
				result, err = gateway.RotateSigners(cmd.Context(), executeData)
			}
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("proof submitted")

			return session.logGatewayState(cmd)
		},
	}

	callContract := &cobra.Command{
		Use:   "call-contract <destination-chain> <destination-address> <payload-hex>",
		Short: "Send a cross-chain message through the gateway",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newEVMSession(cmd)
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

			session.rt.log.Info().Str("txHash", result.Hash).Msg("contract call sent")

			return nil
		},
	}

	transferOperatorship := &cobra.Command{
		Use:   "transfer-operatorship <new-operator>",
		Short: "Hand the gateway operator role to a new address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newEVMSession(cmd)
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

			session.rt.log.Info().Str("txHash", result.Hash).Msg("operatorship transferred")

			return session.logGatewayState(cmd)
		},
	}

	state := &cobra.Command{
		Use:   "state",
		Short: "Print the gateway operator, epoch and signers hash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newEVMSession(cmd)
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

	cmd.AddCommand(submitProof, callContract, transferOperatorship, state)
	cmd.AddCommand(buildGatewayQueryCommands(func(cmd *cobra.Command) (*runtime, sdk.Gateway, error) {
		session, err := newEVMSession(cmd)
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

func (s *evmSession) logGatewayState(cmd *cobra.Command) error {
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
		Str("signersHash", hex.EncodeToString(state.SignersHash[:])).
		Msg("gateway state")

	return nil
}

func buildEVMItsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its",
		Short: "Operate the interchain token service",
	}

	cmd.AddCommand(buildItsCommands(func(cmd *cobra.Command) (*runtime, sdk.InterchainTokenService, error) {
		session, err := newEVMSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		service, err := contractAddress(session.chain, contractITS)
		if err != nil {
			return nil, nil, err
		}
		factory := session.deployerAddress(contractITSFactory)

		return session.rt, evm.NewIts(session.client, session.auth, common.HexToAddress(service), factory), nil
	})...)

	return cmd
}

func buildEVMOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "Manage the operators registry",
	}

	cmd.AddCommand(buildOperatorCommands(func(cmd *cobra.Command) (*runtime, sdk.OperatorRegistry, error) {
		session, err := newEVMSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		address, err := contractAddress(session.chain, contractOperators)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, evm.NewOperators(session.client, session.auth, common.HexToAddress(address)), nil
	})...)

	return cmd
}

func buildEVMGasServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gas-service",
		Short: "Operate the gas service contract",
	}

	cmd.AddCommand(buildGasServiceCommands(func(cmd *cobra.Command) (*runtime, sdk.GasService, error) {
		session, err := newEVMSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		address, err := contractAddress(session.chain, contractGasService)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, evm.NewGasService(session.client, session.auth, common.HexToAddress(address)), nil
	})...)

	return cmd
}

func buildEVMOwnershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ownership",
		Short: "Transfer contract ownership",
	}

	cmd.AddCommand(buildOwnershipCommands(func(cmd *cobra.Command) (*runtime, *deployments.ChainConfig, sdk.Ownable, error) {
		session, err := newEVMSession(cmd)
		if err != nil {
			return nil, nil, nil, err
		}

		return session.rt, session.chain, evm.NewOwnership(session.client, session.auth), nil
	})...)

	return cmd
}

func buildEVMCodeHashCmd() *cobra.Command {
	var expect string

	cmd := &cobra.Command{
		Use:   "code-hash <contract-or-address>",
		Short: "Print the keccak256 hash of a contract's deployed bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newEVMSession(cmd)
			if err != nil {
				return err
			}

			hash, err := evm.CodeHash(cmd.Context(), session.client, resolveContract(session.chain, args[0]))
			if err != nil {
				return err
			}
			if expect != "" && !strings.EqualFold(hash, expect) {
				return fmt.Errorf("code hash mismatch: chain has %s, expected %s", hash, expect)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)

			return nil
		},
	}

	cmd.Flags().StringVar(&expect, "expect", "", "fail unless the deployed code hash matches this hex value")

	return cmd
}

func buildEVMBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print the signer's native balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newEVMSession(cmd)
			if err != nil {
				return err
			}

			address, err := session.signer.Address()
			if err != nil {
				return err
			}
			balance, err := session.client.BalanceAt(cmd.Context(), address, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", address.Hex(), balance.String(), session.chain.TokenSymbol)

			return nil
		},
	}
}

func loadEVMArtifact(cmd *cobra.Command, source string) (*artifacts.EVMArtifact, error) {
	data, err := artifacts.NewFetcher().Fetch(cmd.Context(), source)
	if err != nil {
		return nil, err
	}

	return artifacts.ParseEVMArtifact(data)
}

func deployMethod(method string) sdk.DeployMethod {
	return sdk.DeployMethod(strings.ToLower(method))
}
