package deploy

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axelarnetwork/axelar-deployments/sdk/cosmwasm"
)

// amplifier builds the protocol-contract client from the manifest axelar
// section. Missing router/coordinator/multisig entries are tolerated so
// prover-only commands work on partially wired environments.
func (s *cosmwasmSession) amplifier() (*cosmwasm.Amplifier, error) {
	lookup := func(name string) string {
		if contract, ok := s.axelar.Contracts[name]; ok {
			return contract.Address
		}
		return ""
	}

	return cosmwasm.NewAmplifier(s.client,
		lookup(contractRouter),
		lookup(contractCoordinator),
		lookup(contractMultisig))
}

// prover resolves the MultisigProver address for a chain: an explicit
// address wins, otherwise the per-chain entry under the prover record.
func (s *cosmwasmSession) prover(explicit, forChain string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if forChain == "" {
		return "", fmt.Errorf("need --prover or --for-chain")
	}

	record, ok := s.axelar.Contracts[contractMultisigProver]
	if !ok {
		return "", fmt.Errorf("manifest has no %s record", contractMultisigProver)
	}
	entry, err := record.ChainEntry(forChain)
	if err != nil {
		return "", err
	}
	if entry.Address == "" {
		return "", fmt.Errorf("prover entry for %s has no address", forChain)
	}

	return entry.Address, nil
}

func buildCosmWasmAmplifierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amplifier",
		Short: "Wire chains into the amplifier protocol contracts",
	}

	cmd.AddCommand(
		buildAmplifierRegisterChainCmd(),
		buildAmplifierRegisterProverCmd(),
		buildAmplifierAuthorizeCallersCmd(),
		buildAmplifierUpdateVerifierSetCmd(),
		buildAmplifierConstructProofCmd(),
		buildAmplifierProofCmd(),
		buildAmplifierVerifierSetCmd(),
	)

	return cmd
}

func buildAmplifierRegisterChainCmd() *cobra.Command {
	var (
		gatewayAddress string
		msgIDFormat    string
	)

	cmd := &cobra.Command{
		Use:   "register-chain <chain-name>",
		Short: "Register a chain and its gateway with the router",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("register chain %s with the router", args[0])); err != nil {
				return err
			}

			result, err := amplifier.RegisterChain(cmd.Context(), args[0], gatewayAddress, msgIDFormat)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Str("chain", args[0]).Msg("chain registered")

			return nil
		},
	}

	cmd.Flags().StringVar(&gatewayAddress, "gateway-address", "", "amplifier gateway contract for the chain")
	cmd.Flags().StringVar(&msgIDFormat, "msg-id-format", "hex_tx_hash_and_event_index", "message id format the chain emits")
	_ = cmd.MarkFlagRequired("gateway-address")

	return cmd
}

func buildAmplifierRegisterProverCmd() *cobra.Command {
	var prover string

	cmd := &cobra.Command{
		Use:   "register-prover <chain-name>",
		Short: "Register a chain's multisig prover with the coordinator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			proverAddr, err := session.prover(prover, args[0])
			if err != nil {
				return err
			}
			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("register prover for %s", args[0])); err != nil {
				return err
			}

			result, err := amplifier.RegisterProver(cmd.Context(), args[0], proverAddr)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Str("prover", proverAddr).Msg("prover registered")

			return nil
		},
	}

	cmd.Flags().StringVar(&prover, "prover", "", "prover address; defaults to the manifest entry")

	return cmd
}

func buildAmplifierAuthorizeCallersCmd() *cobra.Command {
	var callers []string

	cmd := &cobra.Command{
		Use:   "authorize-callers",
		Short: "Authorize prover contracts on the multisig",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}

			contracts := make(map[string]string, len(callers))
			for _, caller := range callers {
				address, chain, found := strings.Cut(caller, "=")
				if !found || address == "" || chain == "" {
					return fmt.Errorf("caller %q must be <address>=<chain-name>", caller)
				}
				contracts[address] = chain
			}
			if len(contracts) == 0 {
				return fmt.Errorf("no callers given")
			}

			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("authorize %d callers on the multisig", len(contracts))); err != nil {
				return err
			}

			result, err := amplifier.AuthorizeCallers(cmd.Context(), contracts)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("callers authorized")

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&callers, "caller", nil, "caller to authorize as <address>=<chain-name>; repeatable")
	_ = cmd.MarkFlagRequired("caller")

	return cmd
}

func buildAmplifierUpdateVerifierSetCmd() *cobra.Command {
	var (
		prover   string
		forChain string
	)

	cmd := &cobra.Command{
		Use:   "update-verifier-set",
		Short: "Ask a prover to adopt the active verifier set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			proverAddr, err := session.prover(prover, forChain)
			if err != nil {
				return err
			}
			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("update verifier set on %s", proverAddr)); err != nil {
				return err
			}

			result, err := amplifier.UpdateVerifierSet(cmd.Context(), proverAddr)
			if err != nil {
				return err
			}

			session.rt.log.Info().Str("txHash", result.Hash).Msg("verifier set update submitted")

			return nil
		},
	}

	cmd.Flags().StringVar(&prover, "prover", "", "prover address; defaults to the manifest entry")
	cmd.Flags().StringVar(&forChain, "for-chain", "", "chain whose prover to use")

	return cmd
}

func buildAmplifierConstructProofCmd() *cobra.Command {
	var (
		prover   string
		forChain string
		messages []string
		wait     bool
	)

	cmd := &cobra.Command{
		Use:   "construct-proof",
		Short: "Open a signing session over routed messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			proverAddr, err := session.prover(prover, forChain)
			if err != nil {
				return err
			}

			ids := make([]cosmwasm.CrossChainID, 0, len(messages))
			for _, message := range messages {
				sourceChain, messageID, found := strings.Cut(message, ":")
				if !found || sourceChain == "" || messageID == "" {
					return fmt.Errorf("message %q must be <source-chain>:<message-id>", message)
				}
				ids = append(ids, cosmwasm.CrossChainID{SourceChain: sourceChain, MessageID: messageID})
			}

			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}
			if err := session.rt.confirm(fmt.Sprintf("construct proof for %d messages", len(ids))); err != nil {
				return err
			}

			proofSession, err := amplifier.ConstructProof(cmd.Context(), proverAddr, ids)
			if err != nil {
				return err
			}

			session.rt.log.Info().
				Str("txHash", proofSession.TxHash).
				Uint64("multisigSessionId", proofSession.MultisigSessionID).
				Msg("signing session opened")

			if !wait {
				return nil
			}

			proof, err := amplifier.WaitProof(cmd.Context(), proverAddr, proofSession.MultisigSessionID)
			if err != nil {
				return err
			}

			cmd.Println("0x" + hex.EncodeToString(proof.Status.ExecuteData))

			return nil
		},
	}

	cmd.Flags().StringVar(&prover, "prover", "", "prover address; defaults to the manifest entry")
	cmd.Flags().StringVar(&forChain, "for-chain", "", "chain whose prover to use")
	cmd.Flags().StringArrayVar(&messages, "message", nil, "message as <source-chain>:<message-id>; repeatable")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the session completes and print the execute data")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func buildAmplifierProofCmd() *cobra.Command {
	var (
		prover    string
		forChain  string
		sessionID uint64
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Fetch the execute data of a signing session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			proverAddr, err := session.prover(prover, forChain)
			if err != nil {
				return err
			}
			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}

			fetch := amplifier.Proof
			if wait {
				fetch = amplifier.WaitProof
			}
			proof, err := fetch(cmd.Context(), proverAddr, sessionID)
			if err != nil {
				return err
			}

			if !proof.Status.Completed {
				session.rt.log.Info().Uint64("multisigSessionId", sessionID).Msg("session still pending")
				return nil
			}

			cmd.Println("0x" + hex.EncodeToString(proof.Status.ExecuteData))

			return nil
		},
	}

	cmd.Flags().StringVar(&prover, "prover", "", "prover address; defaults to the manifest entry")
	cmd.Flags().StringVar(&forChain, "for-chain", "", "chain whose prover to use")
	cmd.Flags().Uint64Var(&sessionID, "session-id", 0, "multisig session id")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the session completes")
	_ = cmd.MarkFlagRequired("session-id")

	return cmd
}

func buildAmplifierVerifierSetCmd() *cobra.Command {
	var (
		prover   string
		forChain string
	)

	cmd := &cobra.Command{
		Use:   "current-verifier-set",
		Short: "Print the verifier set a prover signs with",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newCosmWasmSession(cmd)
			if err != nil {
				return err
			}
			proverAddr, err := session.prover(prover, forChain)
			if err != nil {
				return err
			}
			amplifier, err := session.amplifier()
			if err != nil {
				return err
			}

			verifierSet, err := amplifier.CurrentVerifierSet(cmd.Context(), proverAddr)
			if err != nil {
				return err
			}

			cmd.Printf("id: %s\n", verifierSet.ID)
			cmd.Println(string(verifierSet.VerifierSet))

			return nil
		},
	}

	cmd.Flags().StringVar(&prover, "prover", "", "prover address; defaults to the manifest entry")
	cmd.Flags().StringVar(&forChain, "for-chain", "", "chain whose prover to use")

	return cmd
}
