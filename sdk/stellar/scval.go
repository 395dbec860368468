package stellar

import (
	"encoding/binary"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// Contract-value codec between Go values and xdr.ScVal. Conversions are
// exact: out-of-range numbers and unsupported kinds return errors instead of
// truncating.

var (
	maxI128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxU128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

func Void() xdr.ScVal {
	return xdr.ScVal{Type: xdr.ScValTypeScvVoid}
}

func Bool(v bool) xdr.ScVal {
	return xdr.ScVal{Type: xdr.ScValTypeScvBool, B: &v}
}

func U32(v uint32) xdr.ScVal {
	u := xdr.Uint32(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU32, U32: &u}
}

func U64(v uint64) xdr.ScVal {
	u := xdr.Uint64(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU64, U64: &u}
}

func I64(v int64) xdr.ScVal {
	i := xdr.Int64(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvI64, I64: &i}
}

func String(v string) xdr.ScVal {
	s := xdr.ScString(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvString, Str: &s}
}

func Symbol(v string) xdr.ScVal {
	s := xdr.ScSymbol(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvSymbol, Sym: &s}
}

func Bytes(v []byte) xdr.ScVal {
	b := xdr.ScBytes(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvBytes, Bytes: &b}
}

func Bytes32(v [32]byte) xdr.ScVal {
	return Bytes(v[:])
}

func Vec(vals ...xdr.ScVal) xdr.ScVal {
	vec := xdr.ScVec(vals)
	pv := &vec
	return xdr.ScVal{Type: xdr.ScValTypeScvVec, Vec: &pv}
}

// MapEntry pairs a symbol key with a value for struct-style contract maps.
type MapEntry struct {
	Key string
	Val xdr.ScVal
}

// Map builds an ScMap with symbol keys. Soroban requires map keys in sorted
// order; entries are sorted here so callers can list fields naturally.
func Map(entries ...MapEntry) xdr.ScVal {
	slices.SortFunc(entries, func(a, b MapEntry) int {
		return strings.Compare(a.Key, b.Key)
	})

	scEntries := make([]xdr.ScMapEntry, len(entries))
	for i, entry := range entries {
		scEntries[i] = xdr.ScMapEntry{Key: Symbol(entry.Key), Val: entry.Val}
	}

	m := xdr.ScMap(scEntries)
	pm := &m
	return xdr.ScVal{Type: xdr.ScValTypeScvMap, Map: &pm}
}

// I128FromBig converts a big integer into a signed 128-bit contract value.
func I128FromBig(v *big.Int) (xdr.ScVal, error) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Cmp(maxI128) > 0 || v.Cmp(minI128) < 0 {
		return xdr.ScVal{}, fmt.Errorf("%s does not fit in i128", v)
	}

	twos := new(big.Int).Set(v)
	if twos.Sign() < 0 {
		twos.Add(twos, twoTo128)
	}

	var buf [16]byte
	twos.FillBytes(buf[:])

	parts := xdr.Int128Parts{
		Hi: xdr.Int64(int64(binary.BigEndian.Uint64(buf[:8]))),
		Lo: xdr.Uint64(binary.BigEndian.Uint64(buf[8:])),
	}

	return xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}, nil
}

// U128FromBig converts a non-negative big integer into an unsigned 128-bit
// contract value.
func U128FromBig(v *big.Int) (xdr.ScVal, error) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return xdr.ScVal{}, fmt.Errorf("%s does not fit in u128", v)
	}

	var buf [16]byte
	v.FillBytes(buf[:])

	parts := xdr.UInt128Parts{
		Hi: xdr.Uint64(binary.BigEndian.Uint64(buf[:8])),
		Lo: xdr.Uint64(binary.BigEndian.Uint64(buf[8:])),
	}

	return xdr.ScVal{Type: xdr.ScValTypeScvU128, U128: &parts}, nil
}

// I128ToBig converts signed 128-bit contract parts back to a big integer.
func I128ToBig(parts xdr.Int128Parts) *big.Int {
	result := big.NewInt(int64(parts.Hi))
	result.Lsh(result, 64)
	return result.Add(result, new(big.Int).SetUint64(uint64(parts.Lo)))
}

// U128ToBig converts unsigned 128-bit contract parts back to a big integer.
func U128ToBig(parts xdr.UInt128Parts) *big.Int {
	result := new(big.Int).SetUint64(uint64(parts.Hi))
	result.Lsh(result, 64)
	return result.Add(result, new(big.Int).SetUint64(uint64(parts.Lo)))
}

// Address converts a strkey account (G...) or contract (C...) address into a
// contract value.
func Address(address string) (xdr.ScVal, error) {
	scAddress, err := ScAddressFromString(address)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &scAddress}, nil
}

// ScAddressFromString parses a strkey address into its XDR form.
func ScAddressFromString(address string) (xdr.ScAddress, error) {
	switch {
	case strkey.IsValidEd25519PublicKey(address):
		var accountID xdr.AccountId
		if err := accountID.SetAddress(address); err != nil {
			return xdr.ScAddress{}, sdkerrors.NewInvalidAddressError(address)
		}

		return xdr.ScAddress{Type: xdr.ScAddressTypeScAddressTypeAccount, AccountId: &accountID}, nil
	case IsValidContractAddress(address):
		raw, err := strkey.Decode(strkey.VersionByteContract, address)
		if err != nil {
			return xdr.ScAddress{}, sdkerrors.NewInvalidAddressError(address)
		}

		var contractID xdr.ContractId
		copy(contractID[:], raw)

		return xdr.ScAddress{Type: xdr.ScAddressTypeScAddressTypeContract, ContractId: &contractID}, nil
	default:
		return xdr.ScAddress{}, sdkerrors.NewInvalidAddressError(address)
	}
}

// ContractScAddress parses a contract strkey (C...) only.
func ContractScAddress(address string) (xdr.ScAddress, error) {
	if !IsValidContractAddress(address) {
		return xdr.ScAddress{}, sdkerrors.NewInvalidAddressError(address)
	}

	return ScAddressFromString(address)
}

// ScAddressToString renders an XDR address as a strkey.
func ScAddressToString(address xdr.ScAddress) (string, error) {
	switch address.Type {
	case xdr.ScAddressTypeScAddressTypeAccount:
		return address.AccountId.Address(), nil
	case xdr.ScAddressTypeScAddressTypeContract:
		return strkey.Encode(strkey.VersionByteContract, address.ContractId[:])
	default:
		return "", fmt.Errorf("unsupported address type %d", address.Type)
	}
}

// ToScVal converts a natural Go value into a contract value. Strings map to
// ScString; use Symbol and Address for those kinds explicitly.
func ToScVal(v any) (xdr.ScVal, error) {
	switch val := v.(type) {
	case nil:
		return Void(), nil
	case xdr.ScVal:
		return val, nil
	case bool:
		return Bool(val), nil
	case uint32:
		return U32(val), nil
	case uint64:
		return U64(val), nil
	case int:
		return I64(int64(val)), nil
	case int64:
		return I64(val), nil
	case string:
		return String(val), nil
	case []byte:
		return Bytes(val), nil
	case [32]byte:
		return Bytes32(val), nil
	case *big.Int:
		return I128FromBig(val)
	case []any:
		vals := make([]xdr.ScVal, len(val))
		for i, item := range val {
			converted, err := ToScVal(item)
			if err != nil {
				return xdr.ScVal{}, err
			}
			vals[i] = converted
		}

		return Vec(vals...), nil
	case map[string]any:
		entries := make([]MapEntry, 0, len(val))
		for _, key := range slices.Sorted(maps.Keys(val)) {
			converted, err := ToScVal(val[key])
			if err != nil {
				return xdr.ScVal{}, err
			}
			entries = append(entries, MapEntry{Key: key, Val: converted})
		}

		return Map(entries...), nil
	default:
		return xdr.ScVal{}, fmt.Errorf("cannot convert %T to a contract value", v)
	}
}

// FromScVal converts a contract value back into a natural Go value.
// Addresses render as strkeys, 128-bit integers as *big.Int, maps as
// map[string]any keyed by symbol or string keys.
func FromScVal(v xdr.ScVal) (any, error) {
	switch v.Type {
	case xdr.ScValTypeScvVoid:
		return nil, nil
	case xdr.ScValTypeScvBool:
		return *v.B, nil
	case xdr.ScValTypeScvU32:
		return uint32(*v.U32), nil
	case xdr.ScValTypeScvI32:
		return int32(*v.I32), nil
	case xdr.ScValTypeScvU64:
		return uint64(*v.U64), nil
	case xdr.ScValTypeScvI64:
		return int64(*v.I64), nil
	case xdr.ScValTypeScvU128:
		return U128ToBig(*v.U128), nil
	case xdr.ScValTypeScvI128:
		return I128ToBig(*v.I128), nil
	case xdr.ScValTypeScvString:
		return string(*v.Str), nil
	case xdr.ScValTypeScvSymbol:
		return string(*v.Sym), nil
	case xdr.ScValTypeScvBytes:
		return []byte(*v.Bytes), nil
	case xdr.ScValTypeScvAddress:
		return ScAddressToString(*v.Address)
	case xdr.ScValTypeScvVec:
		if v.Vec == nil || *v.Vec == nil {
			return []any{}, nil
		}

		items := make([]any, len(**v.Vec))
		for i, item := range **v.Vec {
			decoded, err := FromScVal(item)
			if err != nil {
				return nil, err
			}
			items[i] = decoded
		}

		return items, nil
	case xdr.ScValTypeScvMap:
		if v.Map == nil || *v.Map == nil {
			return map[string]any{}, nil
		}

		result := make(map[string]any, len(**v.Map))
		for _, entry := range **v.Map {
			key, err := FromScVal(entry.Key)
			if err != nil {
				return nil, err
			}
			keyString, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported map key type %s", entry.Key.Type)
			}

			decoded, err := FromScVal(entry.Val)
			if err != nil {
				return nil, err
			}
			result[keyString] = decoded
		}

		return result, nil
	default:
		return nil, fmt.Errorf("unsupported contract value type %s", v.Type)
	}
}

// i128FromScVal extracts a signed 128-bit integer returned by a contract.
func i128FromScVal(v xdr.ScVal) (*big.Int, error) {
	if v.Type != xdr.ScValTypeScvI128 || v.I128 == nil {
		return nil, fmt.Errorf("contract returned %s, expected i128", v.Type)
	}

	return I128ToBig(*v.I128), nil
}
