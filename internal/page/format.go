package page

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
)

// ChecksumAddress returns the EIP-55 form of an address, or s unchanged
// when it is not one
func ChecksumAddress(s string) string {
	if !common.IsHexAddress(s) {
		return s
	}
	return common.HexToAddress(s).Hex()
}

// FormatEther renders a decimal wei amount in ether
func FormatEther(wei string) string {
	return formatUnits(wei, big.NewInt(params.Ether))
}

// FormatGwei renders a decimal wei amount in gwei
func FormatGwei(wei string) string {
	return formatUnits(wei, big.NewInt(params.GWei))
}

func formatUnits(amount string, unit *big.Int) string {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return amount
	}
	s := new(big.Rat).SetFrac(v, unit).FloatString(18)
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// InputInfo summarises raw call data
type InputInfo struct {
	Size     int    `json:"size"`
	MethodID string `json:"method_id,omitempty"`
}

// DescribeInput decodes raw call data. Malformed input reports size 0.
func DescribeInput(raw string) InputInfo {
	b, err := hexutil.Decode(raw)
	if err != nil {
		return InputInfo{}
	}
	info := InputInfo{Size: len(b)}
	if len(b) >= 4 {
		info.MethodID = hexutil.Encode(b[:4])
	}
	return info
}

// FormatTokenAmount renders a raw token amount using the token's decimals.
// Unknown decimals leave the amount as is.
func FormatTokenAmount(value, decimals string) string {
	d, err := strconv.Atoi(decimals)
	if err != nil || d < 0 || d > 77 {
		return value
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil)
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return value
	}
	s := new(big.Rat).SetFrac(v, unit).FloatString(d)
	if d > 0 {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	return s
}
