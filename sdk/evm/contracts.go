package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI fragments for the deployed contracts, trimmed to the entry points the
// toolkit drives. Artifact ABIs for contracts being deployed are supplied at
// runtime; these cover the already-deployed estate.

const gatewayABIJSON = `[
	{"type":"function","name":"approveMessages","stateMutability":"nonpayable","inputs":[{"name":"messages","type":"tuple[]","components":[{"name":"sourceChain","type":"string"},{"name":"messageId","type":"string"},{"name":"sourceAddress","type":"string"},{"name":"contractAddress","type":"address"},{"name":"payloadHash","type":"bytes32"}]},{"name":"proof","type":"tuple","components":[{"name":"signers","type":"tuple","components":[{"name":"signers","type":"tuple[]","components":[{"name":"signer","type":"address"},{"name":"weight","type":"uint128"}]},{"name":"threshold","type":"uint128"},{"name":"nonce","type":"bytes32"}]},{"name":"signatures","type":"bytes[]"}]}],"outputs":[]},
	{"type":"function","name":"rotateSigners","stateMutability":"nonpayable","inputs":[{"name":"newSigners","type":"tuple","components":[{"name":"signers","type":"tuple[]","components":[{"name":"signer","type":"address"},{"name":"weight","type":"uint128"}]},{"name":"threshold","type":"uint128"},{"name":"nonce","type":"bytes32"}]},{"name":"proof","type":"tuple","components":[{"name":"signers","type":"tuple","components":[{"name":"signers","type":"tuple[]","components":[{"name":"signer","type":"address"},{"name":"weight","type":"uint128"}]},{"name":"threshold","type":"uint128"},{"name":"nonce","type":"bytes32"}]},{"name":"signatures","type":"bytes[]"}]}],"outputs":[]},
	{"type":"function","name":"callContract","stateMutability":"nonpayable","inputs":[{"name":"destinationChain","type":"string"},{"name":"destinationContractAddress","type":"string"},{"name":"payload","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"transferOperatorship","stateMutability":"nonpayable","inputs":[{"name":"newOperator","type":"address"}],"outputs":[]},
	{"type":"function","name":"operator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"epoch","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"signerHashByEpoch","stateMutability":"view","inputs":[{"name":"signerEpoch","type":"uint256"}],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"domainSeparator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"isMessageApproved","stateMutability":"view","inputs":[{"name":"sourceChain","type":"string"},{"name":"messageId","type":"string"},{"name":"sourceAddress","type":"string"},{"name":"contractAddress","type":"address"},{"name":"payloadHash","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"isMessageExecuted","stateMutability":"view","inputs":[{"name":"sourceChain","type":"string"},{"name":"messageId","type":"string"}],"outputs":[{"name":"","type":"bool"}]}
]`

const itsABIJSON = `[
	{"type":"function","name":"setTrustedChain","stateMutability":"nonpayable","inputs":[{"name":"chainName","type":"string"}],"outputs":[]},
	{"type":"function","name":"removeTrustedChain","stateMutability":"nonpayable","inputs":[{"name":"chainName","type":"string"}],"outputs":[]},
	{"type":"function","name":"isTrustedChain","stateMutability":"view","inputs":[{"name":"chainName","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"interchainTransfer","stateMutability":"payable","inputs":[{"name":"tokenId","type":"bytes32"},{"name":"destinationChain","type":"string"},{"name":"destinationAddress","type":"bytes"},{"name":"amount","type":"uint256"},{"name":"metadata","type":"bytes"},{"name":"gasValue","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"interchainTokenId","stateMutability":"view","inputs":[{"name":"operator_","type":"address"},{"name":"salt_","type":"bytes32"}],"outputs":[{"name":"tokenId","type":"bytes32"}]},
	{"type":"function","name":"registerTokenMetadata","stateMutability":"payable","inputs":[{"name":"tokenAddress","type":"address"},{"name":"gasValue","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"registerCustomToken","stateMutability":"payable","inputs":[{"name":"salt","type":"bytes32"},{"name":"tokenAddress","type":"address"},{"name":"tokenManagerType","type":"uint8"},{"name":"operator","type":"address"}],"outputs":[{"name":"tokenId","type":"bytes32"}]},
	{"type":"function","name":"linkToken","stateMutability":"payable","inputs":[{"name":"salt","type":"bytes32"},{"name":"destinationChain","type":"string"},{"name":"destinationTokenAddress","type":"bytes"},{"name":"tokenManagerType","type":"uint8"},{"name":"linkParams","type":"bytes"},{"name":"gasValue","type":"uint256"}],"outputs":[{"name":"tokenId","type":"bytes32"}]},
	{"type":"function","name":"setFlowLimits","stateMutability":"nonpayable","inputs":[{"name":"tokenIds","type":"bytes32[]"},{"name":"flowLimits","type":"uint256[]"}],"outputs":[]},
	{"type":"function","name":"setPauseStatus","stateMutability":"nonpayable","inputs":[{"name":"paused","type":"bool"}],"outputs":[]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const itsFactoryABIJSON = `[
	{"type":"function","name":"deployInterchainToken","stateMutability":"payable","inputs":[{"name":"salt","type":"bytes32"},{"name":"name","type":"string"},{"name":"symbol","type":"string"},{"name":"decimals","type":"uint8"},{"name":"initialSupply","type":"uint256"},{"name":"minter","type":"address"}],"outputs":[{"name":"tokenId","type":"bytes32"}]},
	{"type":"function","name":"deployRemoteInterchainToken","stateMutability":"payable","inputs":[{"name":"salt","type":"bytes32"},{"name":"destinationChain","type":"string"},{"name":"gasValue","type":"uint256"}],"outputs":[{"name":"tokenId","type":"bytes32"}]},
	{"type":"function","name":"registerCanonicalInterchainToken","stateMutability":"payable","inputs":[{"name":"tokenAddress","type":"address"}],"outputs":[{"name":"tokenId","type":"bytes32"}]},
	{"type":"function","name":"deployRemoteCanonicalInterchainToken","stateMutability":"payable","inputs":[{"name":"originalTokenAddress","type":"address"},{"name":"destinationChain","type":"string"},{"name":"gasValue","type":"uint256"}],"outputs":[{"name":"tokenId","type":"bytes32"}]}
]`

const gasServiceABIJSON = `[
	{"type":"function","name":"payNativeGasForContractCall","stateMutability":"payable","inputs":[{"name":"sender","type":"address"},{"name":"destinationChain","type":"string"},{"name":"destinationAddress","type":"string"},{"name":"payload","type":"bytes"},{"name":"refundAddress","type":"address"}],"outputs":[]},
	{"type":"function","name":"addNativeGas","stateMutability":"payable","inputs":[{"name":"txHash","type":"bytes32"},{"name":"logIndex","type":"uint256"},{"name":"refundAddress","type":"address"}],"outputs":[]},
	{"type":"function","name":"collectFees","stateMutability":"nonpayable","inputs":[{"name":"receiver","type":"address"},{"name":"tokens","type":"address[]"},{"name":"amounts","type":"uint256[]"}],"outputs":[]},
	{"type":"function","name":"refund","stateMutability":"nonpayable","inputs":[{"name":"txHash","type":"bytes32"},{"name":"logIndex","type":"uint256"},{"name":"receiver","type":"address"},{"name":"token","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}
]`

const operatorsABIJSON = `[
	{"type":"function","name":"isOperator","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"addOperator","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"}],"outputs":[]},
	{"type":"function","name":"removeOperator","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"}],"outputs":[]}
]`

const create2DeployerABIJSON = `[
	{"type":"function","name":"deploy","stateMutability":"nonpayable","inputs":[{"name":"bytecode","type":"bytes"},{"name":"salt","type":"bytes32"}],"outputs":[{"name":"deployedAddress_","type":"address"}]},
	{"type":"function","name":"deployAndInit","stateMutability":"nonpayable","inputs":[{"name":"bytecode","type":"bytes"},{"name":"salt","type":"bytes32"},{"name":"init","type":"bytes"}],"outputs":[{"name":"deployedAddress_","type":"address"}]},
	{"type":"function","name":"deployedAddress","stateMutability":"view","inputs":[{"name":"bytecode","type":"bytes"},{"name":"sender","type":"address"},{"name":"salt","type":"bytes32"}],"outputs":[{"name":"deployedAddress_","type":"address"}]}
]`

const create3DeployerABIJSON = `[
	{"type":"function","name":"deploy","stateMutability":"nonpayable","inputs":[{"name":"bytecode","type":"bytes"},{"name":"salt","type":"bytes32"}],"outputs":[{"name":"deployedAddress_","type":"address"}]},
	{"type":"function","name":"deployedAddress","stateMutability":"view","inputs":[{"name":"sender","type":"address"},{"name":"salt","type":"bytes32"}],"outputs":[{"name":"deployedAddress_","type":"address"}]}
]`

const ownableABIJSON = `[
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"operator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"transferOwnership","stateMutability":"nonpayable","inputs":[{"name":"newOwner","type":"address"}],"outputs":[]},
	{"type":"function","name":"proposeOwnership","stateMutability":"nonpayable","inputs":[{"name":"newOwner","type":"address"}],"outputs":[]},
	{"type":"function","name":"acceptOwnership","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"upgrade","stateMutability":"nonpayable","inputs":[{"name":"newImplementation","type":"address"},{"name":"newImplementationCodeHash","type":"bytes32"},{"name":"params","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"implementation","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

var (
	gatewayABI         = mustParseABI(gatewayABIJSON)
	itsABI             = mustParseABI(itsABIJSON)
	itsFactoryABI      = mustParseABI(itsFactoryABIJSON)
	gasServiceABI      = mustParseABI(gasServiceABIJSON)
	operatorsABI       = mustParseABI(operatorsABIJSON)
	create2DeployerABI = mustParseABI(create2DeployerABIJSON)
	create3DeployerABI = mustParseABI(create3DeployerABIJSON)
	ownableABI         = mustParseABI(ownableABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}

	return parsed
}
