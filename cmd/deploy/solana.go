package deploy

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	deployments "github.com/axelarnetwork/axelar-deployments"
	"github.com/axelarnetwork/axelar-deployments/internal/artifacts"
	"github.com/axelarnetwork/axelar-deployments/internal/utils/safecast"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	"github.com/axelarnetwork/axelar-deployments/sdk/solana"
	"github.com/axelarnetwork/axelar-deployments/types"
)

type solanaSession struct {
	rt     *runtime
	chain  *deployments.ChainConfig
	client *solana.Client
}

func buildSolanaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solana",
		Short: "Operate deployed programs on Solana",
	}

	cmd.PersistentFlags().Int("compute-units", 0, "compute unit limit per transaction; 0 uses the default")
	cmd.PersistentFlags().Int64("priority-fee", 0, "priority fee in micro-lamports per compute unit")

	cmd.AddCommand(
		buildSolanaGatewayCmd(),
		buildSolanaItsCmd(),
		buildSolanaGasServiceCmd(),
		buildSolanaOperatorsCmd(),
		buildSolanaDownloadProgramCmd(),
	)

	return cmd
}

// Programs are deployed with the solana CLI, not this toolkit; this fetches
// the released binary and prints its checksum for the operator to verify.
func buildSolanaDownloadProgramCmd() *cobra.Command {
	var (
		version string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "download-program <program-name>",
		Short: "Download a released program binary for solana program deploy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := artifacts.SolanaReleaseURL(args[0], version)
			if err != nil {
				return err
			}
			code, err := artifacts.NewFetcher().Fetch(cmd.Context(), url)
			if err != nil {
				return err
			}

			if out == "" {
				out = args[0] + ".so"
			}
			if err := os.WriteFile(out, code, 0o644); err != nil {
				return fmt.Errorf("write program: %w", err)
			}

			cmd.Printf("%s  %s\n", artifacts.Checksum(code), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "published release version: semver or commit hash")
	cmd.Flags().StringVar(&out, "out", "", "output path; defaults to <program-name>.so")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func newSolanaSession(cmd *cobra.Command) (*solanaSession, error) {
	rt, err := newRuntime(cmd)
	if err != nil {
		return nil, err
	}
	chain, err := rt.chain(types.FamilySVM)
	if err != nil {
		return nil, err
	}
	key, err := rt.requireKey()
	if err != nil {
		return nil, err
	}

	client, err := solana.NewClient(chain.RPC, key)
	if err != nil {
		return nil, err
	}

	units, err := cmd.Flags().GetInt("compute-units")
	if err != nil {
		return nil, err
	}
	fee, err := cmd.Flags().GetInt64("priority-fee")
	if err != nil {
		return nil, err
	}
	if units != 0 || fee != 0 {
		unitLimit, err := safecast.IntToUint32(units)
		if err != nil {
			return nil, fmt.Errorf("parse compute units: %w", err)
		}
		microLamports, err := safecast.Int64ToUint64(fee)
		if err != nil {
			return nil, fmt.Errorf("parse priority fee: %w", err)
		}
		client.SetComputeBudget(unitLimit, microLamports)
	}

	return &solanaSession{rt: rt, chain: chain, client: client}, nil
}

func (s *solanaSession) programID(name string) (string, error) {
	return contractAddress(s.chain, name)
}

func (s *solanaSession) gateway() (*solana.Gateway, error) {
	program, err := s.programID(contractGateway)
	if err != nil {
		return nil, err
	}

	return solana.NewGateway(s.client, program)
}

func (s *solanaSession) logGatewayState(cmd *cobra.Command) {
	program, err := s.programID(contractGateway)
	if err != nil {
		s.rt.log.Warn().Err(err).Msg("skipping gateway state read-back")
		return
	}
	inspector, err := solana.NewInspector(s.client, program)
	if err != nil {
		s.rt.log.Warn().Err(err).Msg("skipping gateway state read-back")
		return
	}
	state, err := inspector.GatewayState(cmd.Context())
	if err != nil {
		s.rt.log.Warn().Err(err).Msg("gateway state read-back failed")
		return
	}

	s.rt.log.Info().
		Str("operator", state.Operator).
		Uint64("epoch", state.Epoch).
		Str("signersHash", fmt.Sprintf("%x", state.SignersHash)).
		Msg("gateway state")
}

func buildSolanaGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Operate the gateway program",
	}

	initializeConfig := buildSolanaInitConfigCmd()

	approve := &cobra.Command{
		Use:   "approve <execute-data-hex>",
		Short: "Submit a message-approval proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSolanaSession(cmd)
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

			session.rt.log.Info().Str("signature", result.Hash).Msg("messages approved")
			session.logGatewayState(cmd)

			return nil
		},
	}

	rotate := &cobra.Command{
		Use:   "rotate <execute-data-hex>",
		Short: "Submit a verifier-set rotation proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSolanaSession(cmd)
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

			session.rt.log.Info().Str("signature", result.Hash).Msg("signers rotated")
			session.logGatewayState(cmd)

			return nil
		},
	}

	callContract := &cobra.Command{
		Use:   "call-contract <destination-chain> <destination-address> <payload-hex>",
		Short: "Send a cross-chain message through the gateway",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSolanaSession(cmd)
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

			session.rt.log.Info().Str("signature", result.Hash).Msg("contract call sent")

			return nil
		},
	}

	transferOperatorship := &cobra.Command{
		Use:   "transfer-operatorship <new-operator>",
		Short: "Hand the gateway operator role to a new address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSolanaSession(cmd)
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

			session.rt.log.Info().Str("signature", result.Hash).Msg("operatorship transferred")
			session.logGatewayState(cmd)

			return nil
		},
	}

	state := &cobra.Command{
		Use:   "state",
		Short: "Print the gateway config account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSolanaSession(cmd)
			if err != nil {
				return err
			}
			program, err := session.programID(contractGateway)
			if err != nil {
				return err
			}
			inspector, err := solana.NewInspector(session.client, program)
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

	cmd.AddCommand(initializeConfig, approve, rotate, callContract, transferOperatorship, state)
	cmd.AddCommand(buildGatewayQueryCommands(func(cmd *cobra.Command) (*runtime, sdk.Gateway, error) {
		session, err := newSolanaSession(cmd)
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

func buildSolanaInitConfigCmd() *cobra.Command {
	var (
		domainSeparator   string
		verifierSetRoot   string
		rotationDelay     int64
		operator          string
		verifierRetention int64
	)

	cmd := &cobra.Command{
		Use:   "initialize-config",
		Short: "Initialize the gateway config account after deployment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSolanaSession(cmd)
			if err != nil {
				return err
			}
			separator, err := parseHex32("domain separator", domainSeparator)
			if err != nil {
				return err
			}
			setRoot, err := parseHex32("verifier set root", verifierSetRoot)
			if err != nil {
				return err
			}
			delay, err := safecast.Int64ToUint64(rotationDelay)
			if err != nil {
				return fmt.Errorf("parse minimum rotation delay: %w", err)
			}
			retention, err := safecast.Int64ToUint64(verifierRetention)
			if err != nil {
				return fmt.Errorf("parse previous verifier retention: %w", err)
			}
			gateway, err := session.gateway()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("initialize gateway config on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := gateway.InitializeConfig(cmd.Context(), solana.InitializeConfigParams{
				DomainSeparator:           separator,
				InitialVerifierSetRoot:    setRoot,
				MinimumRotationDelay:      delay,
				Operator:                  operator,
				PreviousVerifierRetention: retention,
			})
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("signature", result.Hash).Msg("gateway config initialized")
			session.logGatewayState(cmd)

			return nil
		},
	}

	cmd.Flags().StringVar(&domainSeparator, "domain-separator", "", "32-byte domain separator hex")
	cmd.Flags().StringVar(&verifierSetRoot, "verifier-set-root", "", "32-byte initial verifier set merkle root hex")
	cmd.Flags().Int64Var(&rotationDelay, "minimum-rotation-delay", 0, "minimum seconds between signer rotations")
	cmd.Flags().StringVar(&operator, "operator", "", "gateway operator address")
	cmd.Flags().Int64Var(&verifierRetention, "previous-verifier-retention", 1, "how many previous verifier sets stay valid")
	_ = cmd.MarkFlagRequired("domain-separator")
	_ = cmd.MarkFlagRequired("verifier-set-root")
	_ = cmd.MarkFlagRequired("operator")

	return cmd
}

func (s *solanaSession) its() (*solana.Its, error) {
	program, err := s.programID(contractITS)
	if err != nil {
		return nil, err
	}

	return solana.NewIts(s.client, program)
}

func buildSolanaItsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "its",
		Short: "Operate the interchain token service program",
	}

	var (
		initOperator      string
		initChainName     string
		initItsHubAddress string
	)

	initialize := &cobra.Command{
		Use:   "initialize",
		Short: "Initialize the token service root account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSolanaSession(cmd)
			if err != nil {
				return err
			}
			its, err := session.its()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("initialize token service on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := its.Initialize(cmd.Context(), initOperator, initChainName, initItsHubAddress)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("signature", result.Hash).Msg("token service initialized")

			return nil
		},
	}
	initialize.Flags().StringVar(&initOperator, "operator", "", "token service operator address")
	initialize.Flags().StringVar(&initChainName, "chain-name", "", "axelar chain name of this chain")
	initialize.Flags().StringVar(&initItsHubAddress, "its-hub-address", "", "ITS hub address on axelar")
	_ = initialize.MarkFlagRequired("operator")
	_ = initialize.MarkFlagRequired("chain-name")
	_ = initialize.MarkFlagRequired("its-hub-address")

	var canonicalMint string
	canonicalTokenID := &cobra.Command{
		Use:   "canonical-token-id",
		Short: "Derive the token id of a canonical mint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSolanaSession(cmd)
			if err != nil {
				return err
			}
			its, err := session.its()
			if err != nil {
				return err
			}

			id, err := its.CanonicalTokenID(canonicalMint)
			if err != nil {
				return err
			}

			cmd.Println(id.String())

			return nil
		},
	}
	canonicalTokenID.Flags().StringVar(&canonicalMint, "mint", "", "canonical token mint address")
	_ = canonicalTokenID.MarkFlagRequired("mint")

	var (
		linkedSender string
		linkedSalt   string
	)
	linkedTokenID := &cobra.Command{
		Use:   "linked-token-id",
		Short: "Derive the token id of a linked custom token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSolanaSession(cmd)
			if err != nil {
				return err
			}
			salt, err := parseSalt32(linkedSalt)
			if err != nil {
				return err
			}
			its, err := session.its()
			if err != nil {
				return err
			}

			id, err := its.LinkedTokenID(linkedSender, salt)
			if err != nil {
				return err
			}

			cmd.Println(id.String())

			return nil
		},
	}
	linkedTokenID.Flags().StringVar(&linkedSender, "sender", "", "token linker address")
	linkedTokenID.Flags().StringVar(&linkedSalt, "salt", "", "link salt: 32-byte hex or a key to hash")
	_ = linkedTokenID.MarkFlagRequired("sender")
	_ = linkedTokenID.MarkFlagRequired("salt")

	var managerTokenID string
	tokenManager := &cobra.Command{
		Use:   "token-manager",
		Short: "Print the token manager account for a token id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newSolanaSession(cmd)
			if err != nil {
				return err
			}
			id, err := parseTokenID(managerTokenID)
			if err != nil {
				return err
			}
			its, err := session.its()
			if err != nil {
				return err
			}

			info, err := its.TokenManager(cmd.Context(), id)
			if err != nil {
				return err
			}

			cmd.Printf("token address: %s\n", info.TokenAddress)
			cmd.Printf("manager type:  %d\n", info.Type)
			if info.FlowLimit != nil {
				cmd.Printf("flow limit:    %d\n", *info.FlowLimit)
			} else {
				cmd.Println("flow limit:    none")
			}

			return nil
		},
	}
	tokenManager.Flags().StringVar(&managerTokenID, "token-id", "", "32-byte token id hex")
	_ = tokenManager.MarkFlagRequired("token-id")

	cmd.AddCommand(initialize, canonicalTokenID, linkedTokenID, tokenManager)

	cmd.AddCommand(buildItsCommands(func(cmd *cobra.Command) (*runtime, sdk.InterchainTokenService, error) {
		session, err := newSolanaSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		its, err := session.its()
		if err != nil {
			return nil, nil, err
		}

		return session.rt, its, nil
	})...)

	return cmd
}

func buildSolanaGasServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gas-service",
		Short: "Operate the gas service program",
	}

	connect := func(cmd *cobra.Command) (*solanaSession, *solana.GasService, error) {
		session, err := newSolanaSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		program, err := session.programID(contractGasService)
		if err != nil {
			return nil, nil, err
		}
		operatorsProgram, err := session.programID(contractOperators)
		if err != nil {
			return nil, nil, err
		}
		service, err := solana.NewGasService(session.client, program, operatorsProgram)
		if err != nil {
			return nil, nil, err
		}

		return session, service, nil
	}

	var initOperator string
	initialize := &cobra.Command{
		Use:   "initialize",
		Short: "Initialize the gas service config account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, service, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("initialize gas service on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := service.Initialize(cmd.Context(), initOperator)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("signature", result.Hash).Msg("gas service initialized")

			return nil
		},
	}
	initialize.Flags().StringVar(&initOperator, "operator", "", "gas collector operator address")
	_ = initialize.MarkFlagRequired("operator")

	cmd.AddCommand(initialize)

	cmd.AddCommand(buildGasServiceCommands(func(cmd *cobra.Command) (*runtime, sdk.GasService, error) {
		session, service, err := connect(cmd)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, service, nil
	})...)

	return cmd
}

func buildSolanaOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "Manage the operators program",
	}

	connect := func(cmd *cobra.Command) (*solanaSession, *solana.Operators, error) {
		session, err := newSolanaSession(cmd)
		if err != nil {
			return nil, nil, err
		}
		program, err := session.programID(contractOperators)
		if err != nil {
			return nil, nil, err
		}
		operators, err := solana.NewOperators(session.client, program)
		if err != nil {
			return nil, nil, err
		}

		return session, operators, nil
	}

	var initOwner string
	initialize := &cobra.Command{
		Use:   "initialize",
		Short: "Initialize the operators registry account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, operators, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("initialize operators registry on %s", session.chain.Name)); err != nil {
				return err
			}

			result, err := operators.Initialize(cmd.Context(), initOwner)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("signature", result.Hash).Msg("operators registry initialized")

			return nil
		},
	}
	initialize.Flags().StringVar(&initOwner, "owner", "", "registry owner address")
	_ = initialize.MarkFlagRequired("owner")

	cmd.AddCommand(initialize)

	cmd.AddCommand(buildOperatorCommands(func(cmd *cobra.Command) (*runtime, sdk.OperatorRegistry, error) {
		session, operators, err := connect(cmd)
		if err != nil {
			return nil, nil, err
		}

		return session.rt, operators, nil
	})...)

	return cmd
}
