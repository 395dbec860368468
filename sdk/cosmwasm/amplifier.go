package cosmwasm

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

const proofPollPeriod = time.Second

// Message id formats the router accepts when a chain registers. Each format
// names how the chain's gateway events are keyed.
const (
	MsgIDFormatHexTxHashAndEventIndex               = "hex_tx_hash_and_event_index"
	MsgIDFormatBase58TxDigestAndEventIndex          = "base58_tx_digest_and_event_index"
	MsgIDFormatBase58SolanaTxSignatureAndEventIndex = "base58_solana_tx_signature_and_event_index"
)

// The prover emits the signing session id under this event when a proof
// starts building.
const (
	eventProofUnderConstruction = "wasm-proof_under_construction"
	attrMultisigSessionID       = "multisig_session_id"
)

// CrossChainID names one routed message: its source chain and the
// chain-native message id.
type CrossChainID struct {
	SourceChain string `json:"source_chain"`
	MessageID   string `json:"message_id"`
}

// Amplifier wires a chain into the amplifier protocol contracts and reads
// prover output back. Router, coordinator and multisig addresses may stay
// empty when only prover calls are needed.
type Amplifier struct {
	client      *Client
	router      string
	coordinator string
	multisig    string
}

// NewAmplifier creates an Amplifier around the protocol contracts. Prover
// addresses are per destination chain and passed per call.
func NewAmplifier(client *Client, router, coordinator, multisig string) (*Amplifier, error) {
	for _, address := range []string{router, coordinator, multisig} {
		if address == "" {
			continue
		}
		if err := validateAddress(client.prefix, address); err != nil {
			return nil, err
		}
	}

	return &Amplifier{
		client:      client,
		router:      router,
		coordinator: coordinator,
		multisig:    multisig,
	}, nil
}

type registerChainMsg struct {
	Chain          string `json:"chain"`
	GatewayAddress string `json:"gateway_address"`
	MsgIDFormat    string `json:"msg_id_format"`
}

// RegisterChain announces a chain and its amplifier gateway to the router.
func (a *Amplifier) RegisterChain(ctx context.Context, chain, gatewayAddress, msgIDFormat string) (sdk.TxResult, error) {
	if a.router == "" {
		return sdk.TxResult{}, errors.New("router address is not configured")
	}
	if chain == "" {
		return sdk.TxResult{}, errors.New("chain name cannot be empty")
	}
	if gatewayAddress == "" {
		return sdk.TxResult{}, errors.New("gateway address cannot be empty")
	}

	msg, err := json.Marshal(map[string]registerChainMsg{"register_chain": {
		Chain:          chain,
		GatewayAddress: gatewayAddress,
		MsgIDFormat:    msgIDFormat,
	}})
	if err != nil {
		return sdk.TxResult{}, fmt.Errorf("marshal register chain: %w", err)
	}

	return a.client.Execute(ctx, a.router, msg, nil)
}

type registerProverMsg struct {
	ChainName     string `json:"chain_name"`
	NewProverAddr string `json:"new_prover_addr"`
}

// RegisterProver announces a chain's multisig prover to the coordinator.
func (a *Amplifier) RegisterProver(ctx context.Context, chainName, proverAddress string) (sdk.TxResult, error) {
	if a.coordinator == "" {
		return sdk.TxResult{}, errors.New("coordinator address is not configured")
	}
	if chainName == "" {
		return sdk.TxResult{}, errors.New("chain name cannot be empty")
	}
	if err := validateAddress(a.client.prefix, proverAddress); err != nil {
		return sdk.TxResult{}, err
	}

	msg, err := json.Marshal(map[string]registerProverMsg{"register_prover_contract": {
		ChainName:     chainName,
		NewProverAddr: proverAddress,
	}})
	if err != nil {
		return sdk.TxResult{}, fmt.Errorf("marshal register prover: %w", err)
	}

	return a.client.Execute(ctx, a.coordinator, msg, nil)
}

type authorizeCallersMsg struct {
	Contracts map[string]string `json:"contracts"`
}

// AuthorizeCallers lets the listed prover contracts open signing sessions on
// the multisig. contracts maps prover address to the chain it proves for.
func (a *Amplifier) AuthorizeCallers(ctx context.Context, contracts map[string]string) (sdk.TxResult, error) {
	if a.multisig == "" {
		return sdk.TxResult{}, errors.New("multisig address is not configured")
	}
	if len(contracts) == 0 {
		return sdk.TxResult{}, errors.New("no caller contracts to authorize")
	}
	for prover := range contracts {
		if err := validateAddress(a.client.prefix, prover); err != nil {
			return sdk.TxResult{}, err
		}
	}

	msg, err := json.Marshal(map[string]authorizeCallersMsg{"authorize_callers": {Contracts: contracts}})
	if err != nil {
		return sdk.TxResult{}, fmt.Errorf("marshal authorize callers: %w", err)
	}

	return a.client.Execute(ctx, a.multisig, msg, nil)
}

// UpdateVerifierSet tells a prover to adopt the verifier set currently
// registered for its chain.
func (a *Amplifier) UpdateVerifierSet(ctx context.Context, prover string) (sdk.TxResult, error) {
	msg, err := json.Marshal("update_verifier_set")
	if err != nil {
		return sdk.TxResult{}, fmt.Errorf("marshal update verifier set: %w", err)
	}

	return a.client.Execute(ctx, prover, msg, nil)
}

// ProofSession records an opened signing session. MultisigSessionID keys the
// session on the prover; Proof polls it.
type ProofSession struct {
	TxHash            string
	MultisigSessionID uint64
}

// ConstructProof asks a prover to build a proof over the given messages and
// returns the signing session it opened.
func (a *Amplifier) ConstructProof(ctx context.Context, prover string, ids []CrossChainID) (ProofSession, error) {
	if len(ids) == 0 {
		return ProofSession{}, errors.New("no message ids to prove")
	}

	msg, err := json.Marshal(map[string][]CrossChainID{"construct_proof": ids})
	if err != nil {
		return ProofSession{}, fmt.Errorf("marshal construct proof: %w", err)
	}

	res, err := a.client.execute(ctx, prover, msg, nil)
	if err != nil {
		return ProofSession{}, err
	}

	value, ok := findEventAttribute(res.Events, eventProofUnderConstruction, attrMultisigSessionID)
	if !ok {
		return ProofSession{}, fmt.Errorf("no multisig session id in transaction %s", res.Hash)
	}
	id, err := parseSessionID(value)
	if err != nil {
		return ProofSession{}, err
	}

	return ProofSession{TxHash: res.Hash, MultisigSessionID: id}, nil
}

// parseSessionID strips the JSON quoting the contract emits around the
// numeric id.
func parseSessionID(value string) (uint64, error) {
	id, err := strconv.ParseUint(strings.Trim(value, `"`), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse multisig session id %q: %w", value, err)
	}

	return id, nil
}

// ProofStatus reports whether the verifiers finished signing. ExecuteData
// carries the completed proof, ready for the destination gateway.
type ProofStatus struct {
	Completed   bool
	ExecuteData []byte
}

func (s *ProofStatus) UnmarshalJSON(data []byte) error {
	var status string
	if err := json.Unmarshal(data, &status); err == nil {
		if status != "pending" {
			return fmt.Errorf("unknown proof status %q", status)
		}
		*s = ProofStatus{}

		return nil
	}

	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("parse proof status: %w", err)
	}
	raw, ok := variants["completed"]
	if !ok {
		return fmt.Errorf("unknown proof status %s", data)
	}

	var completed struct {
		ExecuteData string `json:"execute_data"`
	}
	if err := json.Unmarshal(raw, &completed); err != nil {
		return fmt.Errorf("parse completed proof: %w", err)
	}
	executeData, err := hex.DecodeString(strings.TrimPrefix(completed.ExecuteData, "0x"))
	if err != nil {
		return fmt.Errorf("decode execute data: %w", err)
	}

	*s = ProofStatus{Completed: true, ExecuteData: executeData}

	return nil
}

// ProofResponse is the prover's view of one signing session. The session id
// serializes as a string on the wire.
type ProofResponse struct {
	MultisigSessionID string         `json:"multisig_session_id"`
	MessageIDs        []CrossChainID `json:"message_ids"`
	Status            ProofStatus    `json:"status"`
}

type proofQuery struct {
	MultisigSessionID string `json:"multisig_session_id"`
}

// Proof fetches the state of one signing session from the prover.
func (a *Amplifier) Proof(ctx context.Context, prover string, multisigSessionID uint64) (ProofResponse, error) {
	query, err := json.Marshal(map[string]proofQuery{"proof": {
		MultisigSessionID: strconv.FormatUint(multisigSessionID, 10),
	}})
	if err != nil {
		return ProofResponse{}, fmt.Errorf("marshal proof query: %w", err)
	}

	data, err := a.client.QuerySmart(ctx, prover, query)
	if err != nil {
		return ProofResponse{}, err
	}

	var resp ProofResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return ProofResponse{}, fmt.Errorf("parse proof response: %w", err)
	}

	return resp, nil
}

// WaitProof polls the prover until the verifiers complete the session.
func (a *Amplifier) WaitProof(ctx context.Context, prover string, multisigSessionID uint64) (ProofResponse, error) {
	ticker := time.NewTicker(proofPollPeriod)
	defer ticker.Stop()

	for {
		resp, err := a.Proof(ctx, prover, multisigSessionID)
		if err != nil {
			return ProofResponse{}, err
		}
		if resp.Status.Completed {
			return resp, nil
		}

		select {
		case <-ctx.Done():
			return ProofResponse{}, fmt.Errorf("proof for session %d not completed: %w", multisigSessionID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// VerifierSetResponse carries the verifier set as the prover reports it. The
// set itself stays opaque JSON for display and record keeping.
type VerifierSetResponse struct {
	ID          string          `json:"id"`
	VerifierSet json.RawMessage `json:"verifier_set"`
}

// CurrentVerifierSet reads the verifier set a prover is signing with.
func (a *Amplifier) CurrentVerifierSet(ctx context.Context, prover string) (VerifierSetResponse, error) {
	query, err := json.Marshal("current_verifier_set")
	if err != nil {
		return VerifierSetResponse{}, fmt.Errorf("marshal verifier set query: %w", err)
	}

	data, err := a.client.QuerySmart(ctx, prover, query)
	if err != nil {
		return VerifierSetResponse{}, err
	}

	var resp VerifierSetResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return VerifierSetResponse{}, fmt.Errorf("parse verifier set response: %w", err)
	}

	return resp, nil
}

// DomainSeparator derives the 32-byte value isolating one chain's proofs
// from every other chain the same prover serves: the keccak256 of the chain
// name, the router address and the little-endian chain id.
func DomainSeparator(chainName, routerAddress string, chainID uint64) [32]byte {
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], chainID)

	var out [32]byte
	copy(out[:], crypto.Keccak256([]byte(chainName), []byte(routerAddress), id[:]))

	return out
}
