package deploy

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	deployments "github.com/axelarnetwork/axelar-deployments"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// The token service, operators, gas service, ownership handover and gateway
// queries expose the same operations on every chain family, so each family
// tree assembles its verbs from these builders and contributes only the
// session wiring.

type itsConnect func(cmd *cobra.Command) (*runtime, sdk.InterchainTokenService, error)

func buildItsCommands(connect itsConnect) []*cobra.Command {
	setTrusted := &cobra.Command{
		Use:   "set-trusted-chain <chain>",
		Short: "Authorize inbound token service messages from a chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("trust chain %s", args[0])); err != nil {
				return err
			}

			result, err := its.SetTrustedChain(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			trusted, err := its.IsTrustedChain(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("verify trusted chain: %w", err)
			}

			rt.log.Info().Str("txHash", result.Hash).Bool("trusted", trusted).Msg("trusted chain set")

			return nil
		},
	}

	removeTrusted := &cobra.Command{
		Use:   "remove-trusted-chain <chain>",
		Short: "Revoke a chain's trusted status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("remove trusted chain %s", args[0])); err != nil {
				return err
			}

			result, err := its.RemoveTrustedChain(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			trusted, err := its.IsTrustedChain(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("verify trusted chain: %w", err)
			}

			rt.log.Info().Str("txHash", result.Hash).Bool("trusted", trusted).Msg("trusted chain removed")

			return nil
		},
	}

	isTrusted := &cobra.Command{
		Use:   "is-trusted-chain <chain>",
		Short: "Check whether a chain is trusted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, its, err := connect(cmd)
			if err != nil {
				return err
			}

			trusted, err := its.IsTrustedChain(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), trusted)

			return nil
		},
	}

	var (
		token         types.TokenMetadata
		salt          string
		initialSupply string
		minter        string
	)
	deployToken := &cobra.Command{
		Use:   "deploy-token",
		Short: "Mint a new interchain token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			salt32, err := parseSalt32(salt)
			if err != nil {
				return err
			}
			supply, err := parseBigInt(initialSupply)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("deploy interchain token %s (%s)", token.Name, token.Symbol)); err != nil {
				return err
			}

			result, err := its.DeployInterchainToken(cmd.Context(), sdk.DeployTokenParams{
				Token:         token,
				Salt:          salt32,
				InitialSupply: supply,
				Minter:        minter,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("interchain token deployed")

			return nil
		},
	}
	deployToken.Flags().StringVar(&token.Name, "name", "", "token name")
	deployToken.Flags().StringVar(&token.Symbol, "symbol", "", "token symbol")
	deployToken.Flags().Uint8Var(&token.Decimals, "decimals", 18, "token decimals")
	deployToken.Flags().StringVar(&salt, "salt", "", "deployment salt")
	deployToken.Flags().StringVar(&initialSupply, "initial-supply", "", "initial supply in base units")
	deployToken.Flags().StringVar(&minter, "minter", "", "minter address")
	_ = deployToken.MarkFlagRequired("name")
	_ = deployToken.MarkFlagRequired("symbol")
	_ = deployToken.MarkFlagRequired("salt")

	var (
		remoteSalt  string
		remoteChain string
		remoteGas   string
	)
	deployRemote := &cobra.Command{
		Use:   "deploy-remote-token",
		Short: "Extend a local interchain token to another chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			salt32, err := parseSalt32(remoteSalt)
			if err != nil {
				return err
			}
			gasValue, err := parseBigInt(remoteGas)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("deploy token remotely to %s", remoteChain)); err != nil {
				return err
			}

			result, err := its.DeployRemoteInterchainToken(cmd.Context(), sdk.RemoteDeployParams{
				Salt:             salt32,
				DestinationChain: remoteChain,
				GasValue:         gasValue,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Str("destinationChain", remoteChain).Msg("remote token deployment sent")

			return nil
		},
	}
	deployRemote.Flags().StringVar(&remoteSalt, "salt", "", "salt of the local deployment")
	deployRemote.Flags().StringVar(&remoteChain, "destination-chain", "", "chain to deploy to")
	deployRemote.Flags().StringVar(&remoteGas, "gas-value", "", "cross-chain gas in native base units")
	_ = deployRemote.MarkFlagRequired("salt")
	_ = deployRemote.MarkFlagRequired("destination-chain")

	registerCanonical := &cobra.Command{
		Use:   "register-canonical-token <token-address>",
		Short: "Register an existing token under its canonical id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("register canonical token %s", args[0])); err != nil {
				return err
			}

			result, err := its.RegisterCanonicalToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("canonical token registered")

			return nil
		},
	}

	var (
		customAddress  string
		customType     uint8
		customSalt     string
		customOperator string
	)
	registerCustom := &cobra.Command{
		Use:   "register-custom-token",
		Short: "Register a token under an operator-chosen salt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			salt32, err := parseSalt32(customSalt)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("register custom token %s", customAddress)); err != nil {
				return err
			}

			result, err := its.RegisterCustomToken(cmd.Context(), sdk.RegisterTokenParams{
				TokenAddress:     customAddress,
				TokenManagerType: customType,
				Salt:             salt32,
				Operator:         customOperator,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("custom token registered")

			return nil
		},
	}
	registerCustom.Flags().StringVar(&customAddress, "token-address", "", "token to register")
	registerCustom.Flags().Uint8Var(&customType, "token-manager-type", 0, "token manager type")
	registerCustom.Flags().StringVar(&customSalt, "salt", "", "registration salt")
	registerCustom.Flags().StringVar(&customOperator, "operator", "", "token manager operator")
	_ = registerCustom.MarkFlagRequired("token-address")
	_ = registerCustom.MarkFlagRequired("salt")

	var metadataGas string
	registerMetadata := &cobra.Command{
		Use:   "register-token-metadata <token-address>",
		Short: "Report a token's decimals to the ITS hub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			gasValue, err := parseBigInt(metadataGas)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("register token metadata for %s", args[0])); err != nil {
				return err
			}

			result, err := its.RegisterTokenMetadata(cmd.Context(), args[0], gasValue)
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("token metadata registered")

			return nil
		},
	}
	registerMetadata.Flags().StringVar(&metadataGas, "gas-value", "", "cross-chain gas in native base units")

	var (
		linkSalt   string
		linkChain  string
		linkToken  string
		linkType   uint8
		linkParams string
		linkGas    string
	)
	link := &cobra.Command{
		Use:   "link-token",
		Short: "Link a destination-chain token to a local registration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			salt32, err := parseSalt32(linkSalt)
			if err != nil {
				return err
			}
			params, err := hexBytes(linkParams)
			if err != nil {
				return fmt.Errorf("parse link params: %w", err)
			}
			gasValue, err := parseBigInt(linkGas)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("link token %s on %s", linkToken, linkChain)); err != nil {
				return err
			}

			result, err := its.LinkToken(cmd.Context(), sdk.LinkTokenParams{
				Salt:                    salt32,
				DestinationChain:        linkChain,
				DestinationTokenAddress: linkToken,
				TokenManagerType:        linkType,
				LinkParams:              params,
				GasValue:                gasValue,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("token link sent")

			return nil
		},
	}
	link.Flags().StringVar(&linkSalt, "salt", "", "salt of the local registration")
	link.Flags().StringVar(&linkChain, "destination-chain", "", "chain the token lives on")
	link.Flags().StringVar(&linkToken, "destination-token", "", "token address on the destination chain")
	link.Flags().Uint8Var(&linkType, "token-manager-type", 0, "token manager type")
	link.Flags().StringVar(&linkParams, "link-params", "", "chain-specific link parameters, hex")
	link.Flags().StringVar(&linkGas, "gas-value", "", "cross-chain gas in native base units")
	_ = link.MarkFlagRequired("salt")
	_ = link.MarkFlagRequired("destination-chain")
	_ = link.MarkFlagRequired("destination-token")

	var (
		transferTokenID string
		transferChain   string
		transferDest    string
		transferAmount  string
		transferGas     string
		transferData    string
	)
	transfer := &cobra.Command{
		Use:   "transfer",
		Short: "Move tokens to another chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			tokenID, err := parseTokenID(transferTokenID)
			if err != nil {
				return err
			}
			amount, err := parseBigInt(transferAmount)
			if err != nil {
				return err
			}
			gasValue, err := parseBigInt(transferGas)
			if err != nil {
				return err
			}
			data, err := hexBytes(transferData)
			if err != nil {
				return fmt.Errorf("parse data: %w", err)
			}
			if err := rt.confirm(fmt.Sprintf("transfer %s of token %s to %s", transferAmount, transferTokenID, transferChain)); err != nil {
				return err
			}

			result, err := its.InterchainTransfer(cmd.Context(), sdk.TransferParams{
				TokenID:            tokenID,
				DestinationChain:   transferChain,
				DestinationAddress: transferDest,
				Amount:             amount,
				GasValue:           gasValue,
				Data:               data,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("interchain transfer sent")

			return nil
		},
	}
	transfer.Flags().StringVar(&transferTokenID, "token-id", "", "interchain token id, hex")
	transfer.Flags().StringVar(&transferChain, "destination-chain", "", "chain to transfer to")
	transfer.Flags().StringVar(&transferDest, "destination-address", "", "recipient on the destination chain")
	transfer.Flags().StringVar(&transferAmount, "amount", "", "amount in base units")
	transfer.Flags().StringVar(&transferGas, "gas-value", "", "cross-chain gas in native base units")
	transfer.Flags().StringVar(&transferData, "data", "", "payload delivered with the transfer, hex")
	_ = transfer.MarkFlagRequired("token-id")
	_ = transfer.MarkFlagRequired("destination-chain")
	_ = transfer.MarkFlagRequired("destination-address")
	_ = transfer.MarkFlagRequired("amount")

	var (
		idDeployer string
		idSalt     string
	)
	tokenID := &cobra.Command{
		Use:   "token-id",
		Short: "Derive the token id for a deployer and salt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, its, err := connect(cmd)
			if err != nil {
				return err
			}
			salt32, err := parseSalt32(idSalt)
			if err != nil {
				return err
			}

			id, err := its.InterchainTokenID(cmd.Context(), idDeployer, salt32)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id.String())

			return nil
		},
	}
	tokenID.Flags().StringVar(&idDeployer, "deployer", "", "token deployer address")
	tokenID.Flags().StringVar(&idSalt, "salt", "", "deployment salt")
	_ = tokenID.MarkFlagRequired("deployer")
	_ = tokenID.MarkFlagRequired("salt")

	var (
		limitTokenID string
		limitValue   string
	)
	flowLimit := &cobra.Command{
		Use:   "set-flow-limit",
		Short: "Cap the per-epoch flow for a token id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, its, err := connect(cmd)
			if err != nil {
				return err
			}
			tokenID, err := parseTokenID(limitTokenID)
			if err != nil {
				return err
			}
			limit, err := parseBigInt(limitValue)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("set flow limit %s for token %s", limitValue, limitTokenID)); err != nil {
				return err
			}

			result, err := its.SetFlowLimit(cmd.Context(), tokenID, limit)
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("flow limit set")

			return nil
		},
	}
	flowLimit.Flags().StringVar(&limitTokenID, "token-id", "", "interchain token id, hex")
	flowLimit.Flags().StringVar(&limitValue, "limit", "", "flow limit in base units")
	_ = flowLimit.MarkFlagRequired("token-id")
	_ = flowLimit.MarkFlagRequired("limit")

	pause := &cobra.Command{
		Use:   "pause",
		Short: "Pause the token service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setPauseStatus(cmd, connect, true)
		},
	}
	unpause := &cobra.Command{
		Use:   "unpause",
		Short: "Unpause the token service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setPauseStatus(cmd, connect, false)
		},
	}

	return []*cobra.Command{
		setTrusted, removeTrusted, isTrusted,
		deployToken, deployRemote,
		registerCanonical, registerCustom, registerMetadata,
		link, transfer, tokenID, flowLimit,
		pause, unpause,
	}
}

func setPauseStatus(cmd *cobra.Command, connect itsConnect, paused bool) error {
	rt, its, err := connect(cmd)
	if err != nil {
		return err
	}

	action := "unpause"
	if paused {
		action = "pause"
	}
	if err := rt.confirm(action + " the token service"); err != nil {
		return err
	}

	result, err := its.SetPauseStatus(cmd.Context(), paused)
	if err != nil {
		return err
	}

	rt.log.Info().Str("txHash", result.Hash).Bool("paused", paused).Msg("pause status set")

	return nil
}

type operatorsConnect func(cmd *cobra.Command) (*runtime, sdk.OperatorRegistry, error)

func buildOperatorCommands(connect operatorsConnect) []*cobra.Command {
	add := &cobra.Command{
		Use:   "add <address>",
		Short: "Add an operator to the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, registry, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("add operator %s", args[0])); err != nil {
				return err
			}

			result, err := registry.AddOperator(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			isOperator, err := registry.IsOperator(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("verify operator: %w", err)
			}

			rt.log.Info().Str("txHash", result.Hash).Bool("isOperator", isOperator).Msg("operator added")

			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <address>",
		Short: "Remove an operator from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, registry, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("remove operator %s", args[0])); err != nil {
				return err
			}

			result, err := registry.RemoveOperator(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			isOperator, err := registry.IsOperator(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("verify operator: %w", err)
			}

			rt.log.Info().Str("txHash", result.Hash).Bool("isOperator", isOperator).Msg("operator removed")

			return nil
		},
	}

	isOperator := &cobra.Command{
		Use:   "is-operator <address>",
		Short: "Check whether an address is an operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := connect(cmd)
			if err != nil {
				return err
			}

			ok, err := registry.IsOperator(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)

			return nil
		},
	}

	return []*cobra.Command{add, remove, isOperator}
}

type gasServiceConnect func(cmd *cobra.Command) (*runtime, sdk.GasService, error)

func buildGasServiceCommands(connect gasServiceConnect) []*cobra.Command {
	var (
		collectReceiver string
		collectAmount   string
	)
	collectFees := &cobra.Command{
		Use:   "collect-fees",
		Short: "Withdraw accrued fees to a receiver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, service, err := connect(cmd)
			if err != nil {
				return err
			}
			amount, err := parseBigInt(collectAmount)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("collect fees to %s", collectReceiver)); err != nil {
				return err
			}

			result, err := service.CollectFees(cmd.Context(), collectReceiver, amount)
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("fees collected")

			return nil
		},
	}
	collectFees.Flags().StringVar(&collectReceiver, "receiver", "", "fee receiver address")
	collectFees.Flags().StringVar(&collectAmount, "amount", "", "amount in base units; empty collects the full balance")
	_ = collectFees.MarkFlagRequired("receiver")

	var refundParams struct {
		txHash   string
		logIndex uint64
		receiver string
		amount   string
	}
	refund := &cobra.Command{
		Use:   "refund",
		Short: "Return escrowed gas for a message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, service, err := connect(cmd)
			if err != nil {
				return err
			}
			amount, err := parseBigInt(refundParams.amount)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("refund gas for %s to %s", refundParams.txHash, refundParams.receiver)); err != nil {
				return err
			}

			result, err := service.Refund(cmd.Context(), sdk.RefundParams{
				TxHash:   refundParams.txHash,
				LogIndex: refundParams.logIndex,
				Receiver: refundParams.receiver,
				Amount:   amount,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("gas refunded")

			return nil
		},
	}
	refund.Flags().StringVar(&refundParams.txHash, "tx-hash", "", "source transaction of the message")
	refund.Flags().Uint64Var(&refundParams.logIndex, "log-index", 0, "event index of the message")
	refund.Flags().StringVar(&refundParams.receiver, "receiver", "", "refund receiver")
	refund.Flags().StringVar(&refundParams.amount, "amount", "", "amount in base units")
	_ = refund.MarkFlagRequired("tx-hash")
	_ = refund.MarkFlagRequired("receiver")

	var addGasParams struct {
		txHash        string
		logIndex      uint64
		refundAddress string
		amount        string
	}
	addGas := &cobra.Command{
		Use:   "add-gas",
		Short: "Escrow additional gas for an in-flight message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, service, err := connect(cmd)
			if err != nil {
				return err
			}
			amount, err := parseBigInt(addGasParams.amount)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("add gas for %s", addGasParams.txHash)); err != nil {
				return err
			}

			result, err := service.AddGas(cmd.Context(), sdk.AddGasParams{
				TxHash:        addGasParams.txHash,
				LogIndex:      addGasParams.logIndex,
				RefundAddress: addGasParams.refundAddress,
				Amount:        amount,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("gas added")

			return nil
		},
	}
	addGas.Flags().StringVar(&addGasParams.txHash, "tx-hash", "", "source transaction of the message")
	addGas.Flags().Uint64Var(&addGasParams.logIndex, "log-index", 0, "event index of the message")
	addGas.Flags().StringVar(&addGasParams.refundAddress, "refund-address", "", "address refunded if the gas is unused")
	addGas.Flags().StringVar(&addGasParams.amount, "amount", "", "amount in base units")
	_ = addGas.MarkFlagRequired("tx-hash")
	_ = addGas.MarkFlagRequired("amount")

	var payGasParams struct {
		destinationChain   string
		destinationAddress string
		payload            string
		refundAddress      string
		amount             string
	}
	payGas := &cobra.Command{
		Use:   "pay-gas",
		Short: "Escrow gas for an outbound contract call",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, service, err := connect(cmd)
			if err != nil {
				return err
			}
			payload, err := hexBytes(payGasParams.payload)
			if err != nil {
				return err
			}
			amount, err := parseBigInt(payGasParams.amount)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("pay gas for a call to %s", payGasParams.destinationChain)); err != nil {
				return err
			}

			result, err := service.PayGas(cmd.Context(), sdk.PayGasParams{
				DestinationChain:   payGasParams.destinationChain,
				DestinationAddress: payGasParams.destinationAddress,
				Payload:            payload,
				RefundAddress:      payGasParams.refundAddress,
				Amount:             amount,
			})
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("gas paid")

			return nil
		},
	}
	payGas.Flags().StringVar(&payGasParams.destinationChain, "destination-chain", "", "destination chain name")
	payGas.Flags().StringVar(&payGasParams.destinationAddress, "destination-address", "", "destination contract address")
	payGas.Flags().StringVar(&payGasParams.payload, "payload", "", "hex payload of the call")
	payGas.Flags().StringVar(&payGasParams.refundAddress, "refund-address", "", "address refunded if the gas is unused")
	payGas.Flags().StringVar(&payGasParams.amount, "amount", "", "amount in base units")
	_ = payGas.MarkFlagRequired("destination-chain")
	_ = payGas.MarkFlagRequired("destination-address")
	_ = payGas.MarkFlagRequired("refund-address")
	_ = payGas.MarkFlagRequired("amount")

	return []*cobra.Command{collectFees, refund, addGas, payGas}
}

type ownableConnect func(cmd *cobra.Command) (*runtime, *deployments.ChainConfig, sdk.Ownable, error)

// buildOwnershipCommands produces the ownership handover verbs. The contract
// argument is a manifest contract name; raw addresses pass through for
// contracts the manifest does not track.
func buildOwnershipCommands(connect ownableConnect) []*cobra.Command {
	var transferOwner string
	transfer := &cobra.Command{
		Use:   "transfer <contract>",
		Short: "Hand a contract to a new owner in one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, chain, ownable, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("transfer ownership of %s to %s", args[0], transferOwner)); err != nil {
				return err
			}

			result, err := ownable.TransferOwnership(cmd.Context(), resolveContract(chain, args[0]), transferOwner)
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("ownership transferred")

			return nil
		},
	}
	transfer.Flags().StringVar(&transferOwner, "new-owner", "", "address of the new owner")
	_ = transfer.MarkFlagRequired("new-owner")

	var proposedOwner string
	propose := &cobra.Command{
		Use:   "propose <contract>",
		Short: "Nominate a new owner who must accept the handover",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, chain, ownable, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("propose %s as owner of %s", proposedOwner, args[0])); err != nil {
				return err
			}

			result, err := ownable.ProposeOwnership(cmd.Context(), resolveContract(chain, args[0]), proposedOwner)
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("ownership proposed")

			return nil
		},
	}
	propose.Flags().StringVar(&proposedOwner, "new-owner", "", "address of the proposed owner")
	_ = propose.MarkFlagRequired("new-owner")

	accept := &cobra.Command{
		Use:   "accept <contract>",
		Short: "Accept a proposed ownership handover",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, chain, ownable, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := rt.confirm(fmt.Sprintf("accept ownership of %s", args[0])); err != nil {
				return err
			}

			result, err := ownable.AcceptOwnership(cmd.Context(), resolveContract(chain, args[0]))
			if err != nil {
				return err
			}

			rt.log.Info().Str("txHash", result.Hash).Msg("ownership accepted")

			return nil
		},
	}

	return []*cobra.Command{transfer, propose, accept}
}

type gatewayConnect func(cmd *cobra.Command) (*runtime, sdk.Gateway, error)

// buildGatewayQueryCommands produces the message status queries every
// gateway answers.
func buildGatewayQueryCommands(connect gatewayConnect) []*cobra.Command {
	var msg types.Message
	var payloadHash string
	isApproved := &cobra.Command{
		Use:   "is-approved",
		Short: "Check whether the gateway approved a message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, gateway, err := connect(cmd)
			if err != nil {
				return err
			}

			hash, err := hexBytes(payloadHash)
			if err != nil || len(hash) != 32 {
				return fmt.Errorf("payload hash must be 32 bytes of hex")
			}
			msg.PayloadHash = common.BytesToHash(hash)

			approved, err := gateway.IsMessageApproved(cmd.Context(), msg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), approved)

			return nil
		},
	}
	isApproved.Flags().StringVar(&msg.SourceChain, "source-chain", "", "source chain name")
	isApproved.Flags().StringVar(&msg.MessageID, "message-id", "", "amplifier message id")
	isApproved.Flags().StringVar(&msg.SourceAddress, "source-address", "", "source contract address")
	isApproved.Flags().StringVar(&msg.DestinationAddress, "destination-address", "", "destination contract address")
	isApproved.Flags().StringVar(&payloadHash, "payload-hash", "", "keccak256 of the payload, hex")

	isExecuted := &cobra.Command{
		Use:   "is-executed <source-chain> <message-id>",
		Short: "Check whether a message has been executed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gateway, err := connect(cmd)
			if err != nil {
				return err
			}

			executed, err := gateway.IsMessageExecuted(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), executed)

			return nil
		},
	}

	return []*cobra.Command{isApproved, isExecuted}
}

// resolveContract maps a manifest contract name to its recorded address.
// Raw addresses pass through for contracts the manifest does not track.
func resolveContract(chain *deployments.ChainConfig, arg string) string {
	if address, err := contractAddress(chain, arg); err == nil {
		return address
	}

	return arg
}

func printGatewayState(cmd *cobra.Command, state sdk.GatewayState) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "operator:         %s\n", state.Operator)
	fmt.Fprintf(out, "domain separator: %s\n", hex.EncodeToString(state.DomainSeparator[:]))
	fmt.Fprintf(out, "epoch:            %d\n", state.Epoch)
	fmt.Fprintf(out, "signers hash:     %s\n", hex.EncodeToString(state.SignersHash[:]))
}
