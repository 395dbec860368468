// Package artifacts resolves compiled contract artifacts. Sources are local
// files or the axelar release endpoints: semver versions are GitHub release
// assets, commit hashes live in the static R2 bucket.
package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	r2BaseURL          = "https://static.axelar.network"
	githubDownloadBase = "https://github.com/axelarnetwork"

	downloadTimeout = 2 * time.Minute
)

var (
	semverPattern     = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	commitHashPattern = regexp.MustCompile(`(?i)^[a-f0-9]{7,}$`)
)

// Fetcher loads artifact bytes from a local path or an HTTP(S) URL.
type Fetcher struct {
	http *resty.Client
}

// NewFetcher creates a Fetcher with the default download timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{http: resty.New().SetTimeout(downloadTimeout)}
}

// Fetch returns the artifact bytes at source. Sources with an http or https
// scheme are downloaded; everything else is read from disk.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("artifact source is required")
	}

	if strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "http://") {
		return f.download(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	return data, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("download artifact: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download artifact from %s: %s", url, resp.Status())
	}

	return resp.Body(), nil
}

// Checksum returns the hex sha256 of the artifact, the form the manifests
// record next to code ids and wasm hashes.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SolanaReleaseURL maps a published program version to its .so artifact.
// program is the release package name, e.g. "solana-axelar-gateway".
func SolanaReleaseURL(program, version string) (string, error) {
	object := strings.ReplaceAll(program, "-", "_") + ".so"

	switch {
	case semverPattern.MatchString(version):
		return fmt.Sprintf("%s/axelar-amplifier-solana/releases/download/%s-v%s/%s",
			githubDownloadBase, program, version, object), nil
	case commitHashPattern.MatchString(version):
		return fmt.Sprintf("%s/releases/solana/%s/%s/programs/%s",
			r2BaseURL, program, strings.ToLower(version), object), nil
	default:
		return "", invalidVersionError(version)
	}
}

// StellarReleaseURL maps a published contract version to its optimized wasm.
// contract is the release package name, e.g. "stellar-axelar-gateway".
func StellarReleaseURL(contract, version string) (string, error) {
	object := strings.ReplaceAll(contract, "-", "_") + ".optimized.wasm"

	switch {
	case semverPattern.MatchString(version):
		return fmt.Sprintf("%s/axelar-amplifier-stellar/releases/download/%s-v%s/%s",
			githubDownloadBase, contract, version, object), nil
	case commitHashPattern.MatchString(version):
		return fmt.Sprintf("%s/releases/stellar/%s/%s/wasm/%s",
			r2BaseURL, contract, strings.ToLower(version), object), nil
	default:
		return "", invalidVersionError(version)
	}
}

func invalidVersionError(version string) error {
	return fmt.Errorf("invalid version %q: use semver (0.1.7) or a commit hash (12e6126)", version)
}

// EVMArtifact is the solidity compiler output carried in the release
// packages: the contract ABI plus creation bytecode.
type EVMArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// ParseEVMArtifact decodes a compiler artifact JSON and checks it carries
// deployable bytecode.
func ParseEVMArtifact(data []byte) (*EVMArtifact, error) {
	var artifact EVMArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if strings.TrimPrefix(artifact.Bytecode, "0x") == "" {
		return nil, fmt.Errorf("artifact %q has no bytecode", artifact.ContractName)
	}

	return &artifact, nil
}

// BytecodeBytes decodes the creation bytecode hex.
func (a *EVMArtifact) BytecodeBytes() ([]byte, error) {
	code, err := hex.DecodeString(strings.TrimPrefix(a.Bytecode, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode artifact bytecode: %w", err)
	}

	return code, nil
}
