package deploy

import (
	"fmt"
	"strconv"
	"strings"

	sdktypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	deployments "github.com/axelarnetwork/axelar-deployments"
	"github.com/axelarnetwork/axelar-deployments/internal/artifacts"
	"github.com/axelarnetwork/axelar-deployments/internal/utils/safecast"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	"github.com/axelarnetwork/axelar-deployments/sdk/cosmwasm"
)

// axelarAccountPrefix is the bech32 prefix of the amplifier chain.
const axelarAccountPrefix = "axelar"

const defaultAxelarGasPrice = "0.007uaxl"

type cosmwasmSession struct {
	rt     *runtime
	axelar *deployments.AxelarConfig
	client *cosmwasm.Client
}

func buildCosmWasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cosmwasm",
		Short: "Operate contracts on the amplifier chain",
	}

	cmd.PersistentFlags().String("gas-adjustment", "1.4", "multiplier applied to simulated gas")
	cmd.PersistentFlags().Bool("insecure-grpc", false, "dial gRPC without transport security")

	cmd.AddCommand(
		buildCosmWasmUploadCmd(),
		buildCosmWasmInstantiateCmd(),
		buildCosmWasmExecuteCmd(),
		buildCosmWasmMigrateCmd(),
		buildCosmWasmSubmitProposalCmd(),
		buildCosmWasmQueryCmd(),
		buildCosmWasmAmplifierCmd(),
	)

	return cmd
}

func newCosmWasmSession(cmd *cobra.Command) (*cosmwasmSession, error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return nil, err
	}
	axelar, err := rt.axelar()
	if err != nil {
		return nil, err
	}
	key, err := rt.requireKey()
	if err != nil {
		return nil, err
	}

	gasAdjustment, err := cmd.Flags().GetString("gas-adjustment")
	if err != nil {
		return nil, err
	}
	insecure, err := cmd.Flags().GetBool("insecure-grpc")
	if err != nil {
		return nil, err
	}

	gasPrice := axelar.GasPrice
	if gasPrice == "" {
		gasPrice = defaultAxelarGasPrice
	}
	price, err := sdktypes.ParseDecCoin(gasPrice)
	if err != nil {
		return nil, fmt.Errorf("parse manifest gas price %q: %w", gasPrice, err)
	}

	client, err := cosmwasm.NewClient(cosmwasm.Config{
		ChainID:       axelar.ChainID,
		RPCURL:        axelar.RPC,
		GRPCURL:       axelar.GRPC,
		AccountPrefix: axelarAccountPrefix,
		Denom:         price.Denom,
		GasPrice:      price.Amount.String(),
		GasAdjustment: gasAdjustment,
		Insecure:      insecure,
	}, key)
	if err != nil {
		return nil, err
	}

	return &cosmwasmSession{rt: rt, axelar: axelar, client: client}, nil
}

// contractAddr resolves a positional contract argument: a bech32 address is
// used as-is, anything else is looked up in the manifest axelar section.
func (s *cosmwasmSession) contractAddr(nameOrAddress string) (string, error) {
	if strings.HasPrefix(nameOrAddress, axelarAccountPrefix+"1") {
		return nameOrAddress, nil
	}

	contract, ok := s.axelar.Contracts[nameOrAddress]
	if !ok || contract.Address == "" {
		return "", deployments.NewContractNotFoundError(nameOrAddress, "axelar")
	}

	return contract.Address, nil
}

func (s *cosmwasmSession) setContract(name string, contract *deployments.ContractConfig) {
	if s.axelar.Contracts == nil {
		s.axelar.Contracts = map[string]*deployments.ContractConfig{}
	}
	s.axelar.Contracts[name] = contract
}

// govFlags registers the governance-proposal flags shared by the verbs that
// can run through a passed proposal instead of a direct transaction.
func govFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("gov", false, "submit as a governance proposal instead of a direct transaction")
	cmd.Flags().String("title", "", "proposal title")
	cmd.Flags().String("summary", "", "proposal summary")
	cmd.Flags().String("metadata", "", "proposal metadata")
	cmd.Flags().String("deposit", "", "proposal deposit, e.g. 100000000uaxl")
	cmd.Flags().Bool("expedited", false, "request an expedited voting period")
}

func readGovProposal(cmd *cobra.Command) (cosmwasm.GovProposal, error) {
	title, _ := cmd.Flags().GetString("title")
	summary, _ := cmd.Flags().GetString("summary")
	metadata, _ := cmd.Flags().GetString("metadata")
	expedited, _ := cmd.Flags().GetBool("expedited")

	depositFlag, _ := cmd.Flags().GetString("deposit")
	var deposit sdktypes.Coins
	if depositFlag != "" {
		var err error
		deposit, err = sdktypes.ParseCoinsNormalized(depositFlag)
		if err != nil {
			return cosmwasm.GovProposal{}, fmt.Errorf("parse deposit: %w", err)
		}
	}

	if title == "" {
		return cosmwasm.GovProposal{}, fmt.Errorf("governance proposals need --title")
	}

	return cosmwasm.GovProposal{
		Title:     title,
		Summary:   summary,
		Metadata:  metadata,
		Deposit:   deposit,
		Expedited: expedited,
	}, nil
}

func govRequested(cmd *cobra.Command) bool {
	gov, _ := cmd.Flags().GetBool("gov")
	return gov
}

func buildCosmWasmUploadCmd() *cobra.Command {
	var wasmPath string

	cmd := &cobra.Command{
		Use:   "upload <contract-name>",
		Short: "Store wasm code on the amplifier chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			code, err := artifacts.NewFetcher().Fetch(cmd.Context(), wasmPath)
			if err != nil {
				return err
			}
			deployer := cosmwasm.NewDeployer(session.client)

			if govRequested(cmd) {
				prop, err := readGovProposal(cmd)
				if err != nil {
					return err
				}
				if err := session.rt.confirm(fmt.Sprintf("propose storing %s code", name)); err != nil {
					return err
				}

				result, err := deployer.UploadProposal(cmd.Context(), code, prop)
				if err != nil {
					return err
				}

				session.rt.log.Info().
					Str("txHash", result.TxHash).
					Uint64("proposalId", result.ProposalID).
					Msg("store-code proposal submitted")

				return nil
			}

			if err := session.rt.confirm(fmt.Sprintf("store %s code", name)); err != nil {
				return err
			}

			result, err := deployer.Upload(cmd.Context(), code)
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("contract", name).
				Str("codeId", result.ID).
				Str("txHash", result.TxHash).
				Msg("wasm stored")

			codeID, err := strconv.ParseUint(result.ID, 10, 64)
			if err != nil {
				return fmt.Errorf("parse code id %q: %w", result.ID, err)
			}
			entry := session.axelar.Contracts[name]
			if entry == nil {
				entry = &deployments.ContractConfig{}
			}
			entry.CodeID = codeID
			session.setContract(name, entry)

			return session.rt.save()
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm-path", "", "wasm artifact: local path or https URL")
	_ = cmd.MarkFlagRequired("wasm-path")
	govFlags(cmd)

	return cmd
}

func buildCosmWasmInstantiateCmd() *cobra.Command {
	var (
		codeID   int64
		initArgs string
		label    string
		admin    string
		salt     string
	)

	cmd := &cobra.Command{
		Use:   "instantiate <contract-name>",
		Short: "Instantiate a contract from stored code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}

			id := codeID
			if id == 0 {
				if entry, ok := session.axelar.Contracts[name]; ok {
					id = int64(entry.CodeID)
				}
			}
			codeIDU64, err := safecast.Int64ToUint64(id)
			if err != nil || codeIDU64 == 0 {
				return fmt.Errorf("contract %s needs --code-id or a stored code id in the manifest", name)
			}

			if label == "" {
				label = name
			}

			params := sdk.DeployParams{
				CodeID:   codeIDU64,
				InitArgs: []byte(initArgs),
				Label:    label,
				Admin:    admin,
				Salt:     salt,
			}
			deployer := cosmwasm.NewDeployer(session.client)

			if govRequested(cmd) {
				prop, err := readGovProposal(cmd)
				if err != nil {
					return err
				}
				if err := session.rt.confirm(fmt.Sprintf("propose instantiating %s from code %d", name, codeIDU64)); err != nil {
					return err
				}

				result, err := deployer.DeployProposal(cmd.Context(), params, prop)
				if err != nil {
					return err
				}

				session.rt.log.Info().
					Str("txHash", result.TxHash).
					Uint64("proposalId", result.ProposalID).
					Msg("instantiate proposal submitted")

				return nil
			}

			if err := session.rt.confirm(fmt.Sprintf("instantiate %s from code %d", name, codeIDU64)); err != nil {
				return err
			}

			result, err := deployer.Deploy(cmd.Context(), params)
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("contract", name).
				Str("address", result.Address).
				Str("txHash", result.TxHash).
				Msg("contract instantiated")

			entry := session.axelar.Contracts[name]
			if entry == nil {
				entry = &deployments.ContractConfig{}
			}
			entry.Address = result.Address
			entry.CodeID = codeIDU64
			entry.Deployer = session.client.Address()
			if admin != "" {
				entry.Owner = admin
			}
			session.setContract(name, entry)

			return session.rt.save()
		},
	}

	cmd.Flags().Int64Var(&codeID, "code-id", 0, "stored code id; defaults to the manifest entry")
	cmd.Flags().StringVar(&initArgs, "init-args", "{}", "instantiate message JSON")
	cmd.Flags().StringVar(&label, "label", "", "contract label; defaults to the contract name")
	cmd.Flags().StringVar(&admin, "admin", "", "contract admin address")
	cmd.Flags().StringVar(&salt, "salt", "", "salt for a predictable instantiate2 address")
	govFlags(cmd)

	return cmd
}

func buildCosmWasmExecuteCmd() *cobra.Command {
	var funds string

	cmd := &cobra.Command{
		Use:   "execute <contract> <msg-json>",
		Short: "Execute a contract message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			address, err := session.contractAddr(args[0])
			if err != nil {
				return err
			}

			var coins sdktypes.Coins
			if funds != "" {
				coins, err = sdktypes.ParseCoinsNormalized(funds)
				if err != nil {
					return fmt.Errorf("parse funds: %w", err)
				}
			}

			if err := session.rt.confirm(fmt.Sprintf("execute on %s", address)); err != nil {
				return err
			}

			result, err := session.client.Execute(cmd.Context(), address, []byte(args[1]), coins)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("executed")

			return nil
		},
	}

	cmd.Flags().StringVar(&funds, "funds", "", "coins attached to the call, e.g. 100uaxl")

	return cmd
}

func buildCosmWasmMigrateCmd() *cobra.Command {
	var (
		codeID      int64
		migrateArgs string
	)

	cmd := &cobra.Command{
		Use:   "migrate <contract>",
		Short: "Migrate a contract to new code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			address, err := session.contractAddr(args[0])
			if err != nil {
				return err
			}
			codeIDU64, err := safecast.Int64ToUint64(codeID)
			if err != nil {
				return fmt.Errorf("parse code id: %w", err)
			}

			params := sdk.UpgradeParams{
				Address:     address,
				CodeID:      codeIDU64,
				MigrateArgs: []byte(migrateArgs),
			}
			deployer := cosmwasm.NewDeployer(session.client)

			if govRequested(cmd) {
				prop, err := readGovProposal(cmd)
				if err != nil {
					return err
				}
				if err := session.rt.confirm(fmt.Sprintf("propose migrating %s to code %d", address, codeIDU64)); err != nil {
					return err
				}

				result, err := deployer.UpgradeProposal(cmd.Context(), params, prop)
				if err != nil {
					return err
				}

				session.rt.log.Info().
					Str("txHash", result.TxHash).
					Uint64("proposalId", result.ProposalID).
					Msg("migrate proposal submitted")

				return nil
			}

			if err := session.rt.confirm(fmt.Sprintf("migrate %s to code %d", address, codeIDU64)); err != nil {
				return err
			}

			result, err := deployer.Upgrade(cmd.Context(), params)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("contract migrated")

			if entry, ok := session.axelar.Contracts[args[0]]; ok {
				entry.CodeID = codeIDU64
				return session.rt.save()
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&codeID, "code-id", 0, "target code id")
	cmd.Flags().StringVar(&migrateArgs, "migrate-args", "{}", "migrate message JSON")
	_ = cmd.MarkFlagRequired("code-id")
	govFlags(cmd)

	return cmd
}

func buildCosmWasmSubmitProposalCmd() *cobra.Command {
	var funds string

	cmd := &cobra.Command{
		Use:   "submit-proposal <contract> <msg-json>",
		Short: "Wrap a contract execution into a governance proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			address, err := session.contractAddr(args[0])
			if err != nil {
				return err
			}
			prop, err := readGovProposal(cmd)
			if err != nil {
				return err
			}

			var coins sdktypes.Coins
			if funds != "" {
				coins, err = sdktypes.ParseCoinsNormalized(funds)
				if err != nil {
					return fmt.Errorf("parse funds: %w", err)
				}
			}

			if err := session.rt.confirm(fmt.Sprintf("submit proposal executing on %s", address)); err != nil {
				return err
			}

			result, err := session.client.ExecuteProposal(cmd.Context(), address, []byte(args[1]), coins, prop)
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("txHash", result.TxHash).
				Uint64("proposalId", result.ProposalID).
				Msg("proposal submitted")

			return nil
		},
	}

	cmd.Flags().StringVar(&funds, "funds", "", "coins attached to the proposed call")
	govFlags(cmd)

	return cmd
}

func buildCosmWasmQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <contract> <query-json>",
		Short: "Run a smart query and print the raw response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			address, err := session.contractAddr(args[0])
			if err != nil {
				return err
			}

			response, err := session.client.QuerySmart(cmd.Context(), address, []byte(args[1]))
			if err != nil {
				return err
			}

			cmd.Println(string(response))

			return nil
		},
	}
}
