package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed prefixes for the gateway program's PDAs.
const (
	gatewayConfigSeed   = "gateway"
	verifierTrackerSeed = "ver-set-tracker"
	verifySessionSeed   = "gtw-sig-verif"
	incomingMessageSeed = "incoming message"

	// Anchor's event CPI authority, shared by every program.
	eventAuthoritySeed = "__event_authority"
)

// Seed prefixes for the gas service and operators programs.
const (
	treasurySeed         = "gas-service"
	operatorRegistrySeed = "operator_registry"
	operatorSeed         = "operator"
)

// Seed prefixes for the interchain token service program.
const (
	itsRootSeed         = "interchain-token-service"
	tokenManagerSeed    = "token-manager"
	interchainTokenSeed = "interchain-token"
	userRolesSeed       = "user-roles"
)

func findPDA(program solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive program address: %w", err)
	}

	return address, nil
}

// GatewayConfigPDA is the gateway's root config account.
func GatewayConfigPDA(gateway solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(gateway, []byte(gatewayConfigSeed))
}

// VerifierSetTrackerPDA tracks one registered verifier set, addressed by its
// merkle root.
func VerifierSetTrackerPDA(gateway solana.PublicKey, merkleRoot [32]byte) (solana.PublicKey, error) {
	return findPDA(gateway, []byte(verifierTrackerSeed), merkleRoot[:])
}

// VerificationSessionPDA holds the signature verification progress for one
// payload signed by one verifier set.
func VerificationSessionPDA(gateway solana.PublicKey, payloadRoot, signingSetRoot [32]byte) (solana.PublicKey, error) {
	return findPDA(gateway, []byte(verifySessionSeed), payloadRoot[:], signingSetRoot[:])
}

// IncomingMessagePDA records an approved inbound message, addressed by its
// command id.
func IncomingMessagePDA(gateway solana.PublicKey, commandID [32]byte) (solana.PublicKey, error) {
	return findPDA(gateway, []byte(incomingMessageSeed), commandID[:])
}

// EventAuthorityPDA is the anchor event CPI signer for a program.
func EventAuthorityPDA(program solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(program, []byte(eventAuthoritySeed))
}

// ProgramDataAddress is the upgradeable loader's data account for a program,
// which records the upgrade authority.
func ProgramDataAddress(program solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(solana.BPFLoaderUpgradeableProgramID, program.Bytes())
}

// TreasuryPDA is the gas service account that escrows gas payments.
func TreasuryPDA(gasService solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(gasService, []byte(treasurySeed))
}

// OperatorRegistryPDA is the operators program's root account.
func OperatorRegistryPDA(operators solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(operators, []byte(operatorRegistrySeed))
}

// OperatorPDA marks one registered operator.
func OperatorPDA(operators, operator solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(operators, []byte(operatorSeed), operator.Bytes())
}

// ItsRootPDA is the token service's root config account.
func ItsRootPDA(its solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(its, []byte(itsRootSeed))
}

// TokenManagerPDA manages one interchain token registration.
func TokenManagerPDA(its, itsRoot solana.PublicKey, tokenID [32]byte) (solana.PublicKey, error) {
	return findPDA(its, []byte(tokenManagerSeed), itsRoot.Bytes(), tokenID[:])
}

// InterchainTokenPDA is the mint account of a natively deployed interchain
// token.
func InterchainTokenPDA(its, itsRoot solana.PublicKey, tokenID [32]byte) (solana.PublicKey, error) {
	return findPDA(its, []byte(interchainTokenSeed), itsRoot.Bytes(), tokenID[:])
}

// UserRolesPDA records the roles a user holds on a token service resource.
func UserRolesPDA(its, resource, user solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(its, []byte(userRolesSeed), resource.Bytes(), user.Bytes())
}
