// Package stubs holds placeholder records shown while real data is loading.
// Values are shaped like real responses so templates render without nil
// checks; they are never cached or presented as resolved data.
package stubs

import (
	"time"

	"github.com/thanhnp/tx-explorer/internal/models"
)

const (
	placeholderHash    = "0x3ed9d81e7c1001bdda1caa1dc62c0acbbe3d2c671cdc20dc1e65efdaa4186967"
	placeholderAddress = "0x2B51Ae4412F79c3c1cB12AA40Ea4ECEb4e80511a"
)

var placeholderBlock int64 = 29611750

var placeholderTime = time.Date(2023, 3, 21, 10, 35, 5, 0, time.UTC)

func address() models.AddressParam {
	return models.AddressParam{Hash: placeholderAddress}
}

// TX returns a fresh placeholder transaction
func TX() *models.Transaction {
	block := placeholderBlock
	ts := placeholderTime
	to := address()
	return &models.Transaction{
		Hash:          placeholderHash,
		Result:        "success",
		Status:        "ok",
		Block:         &block,
		Timestamp:     &ts,
		Confirmations: 510,
		From:          address(),
		To:            &to,
		Value:         "0",
		Fee:           models.Fee{Type: "actual", Value: "2100000000000000"},
		GasPrice:      "1000000000",
		GasUsed:       "21000",
		GasLimit:      "21000",
		Nonce:         1,
		Type:          2,
		RawInput:      "0x",
		TxTypes:       []string{"coin_transfer"},
	}
}

// TokenTransfers returns placeholder rows for the token transfers tab
func TokenTransfers() models.Page[models.TokenTransfer] {
	row := models.TokenTransfer{
		TxHash:   placeholderHash,
		LogIndex: "0",
		Type:     "token_transfer",
		From:     address(),
		To:       address(),
		Token: models.TokenInfo{
			Address:  placeholderAddress,
			Name:     "Tether USD",
			Symbol:   "USDT",
			Decimals: "6",
			Type:     "ERC-20",
		},
		Total: models.TokenTotal{Decimals: "6", Value: "1000000"},
	}
	return models.Page[models.TokenTransfer]{Items: repeat(row, 3)}
}

// InternalTxs returns placeholder rows for the internal transactions tab
func InternalTxs() models.Page[models.InternalTransaction] {
	to := address()
	row := models.InternalTransaction{
		Type:     "call",
		Success:  true,
		From:     address(),
		To:       &to,
		Value:    "0",
		GasLimit: "21000",
	}
	return models.Page[models.InternalTransaction]{Items: repeat(row, 3)}
}

// Logs returns placeholder rows for the logs tab
func Logs() models.Page[models.Log] {
	topic := "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	row := models.Log{
		Address: address(),
		Topics:  []*string{&topic, nil, nil, nil},
		Data:    "0x",
	}
	return models.Page[models.Log]{Items: repeat(row, 3)}
}

// StateChanges returns placeholder rows for the state tab
func StateChanges() models.Page[models.StateChange] {
	row := models.StateChange{
		Type:          "coin",
		Address:       address(),
		BalanceBefore: "0",
		BalanceAfter:  "0",
		Change:        "0",
	}
	return models.Page[models.StateChange]{Items: repeat(row, 3)}
}

// RawTrace returns a placeholder raw trace
func RawTrace() models.RawTrace {
	return models.RawTrace{[]byte(`{"action":{"callType":"call"},"type":"call"}`)}
}

func repeat[T any](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}
