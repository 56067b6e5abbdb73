package models

import "encoding/json"

// TokenInfo describes the token moved by a transfer
type TokenInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
	Type     string `json:"type"` // ERC-20, ERC-721, ERC-1155
}

// TokenTotal is the amount moved; TokenID is set for NFTs
type TokenTotal struct {
	Decimals string `json:"decimals,omitempty"`
	Value    string `json:"value,omitempty"`
	TokenID  string `json:"token_id,omitempty"`
}

// TokenTransfer is one row of the token transfers tab
type TokenTransfer struct {
	TxHash   string       `json:"tx_hash"`
	LogIndex string       `json:"log_index"`
	Type     string       `json:"type"`
	From     AddressParam `json:"from"`
	To       AddressParam `json:"to"`
	Token    TokenInfo    `json:"token"`
	Total    TokenTotal   `json:"total"`
}

// InternalTransaction is one row of the internal transactions tab
type InternalTransaction struct {
	Index           int           `json:"index"`
	Type            string        `json:"type"`
	Success         bool          `json:"success"`
	Error           string        `json:"error,omitempty"`
	From            AddressParam  `json:"from"`
	To              *AddressParam `json:"to"`
	CreatedContract *AddressParam `json:"created_contract"`
	Value           string        `json:"value"`
	GasLimit        string        `json:"gas_limit"`
}

// LogDecoded is the ABI-decoded event
type LogDecoded struct {
	MethodCall string                  `json:"method_call"`
	MethodID   string                  `json:"method_id"`
	Parameters []DecodedInputParameter `json:"parameters"`
}

// Log is one entry of the logs tab
type Log struct {
	Index   int          `json:"index"`
	Address AddressParam `json:"address"`
	Topics  []*string    `json:"topics"`
	Data    string       `json:"data"`
	Decoded *LogDecoded  `json:"decoded"`
}

// StateChange is one row of the state tab
type StateChange struct {
	Type          string       `json:"type"` // coin or token
	IsMiner       bool         `json:"is_miner"`
	Address       AddressParam `json:"address"`
	Token         *TokenInfo   `json:"token"`
	BalanceBefore string       `json:"balance_before"`
	BalanceAfter  string       `json:"balance_after"`
	Change        interface{}  `json:"change"`
}

// Page wraps a paginated list response
type Page[T any] struct {
	Items          []T             `json:"items"`
	NextPageParams json.RawMessage `json:"next_page_params"`
}

// HasNextPage reports whether the upstream has more rows
func (p Page[T]) HasNextPage() bool {
	return len(p.NextPageParams) > 0 && string(p.NextPageParams) != "null"
}

// RawTrace is the node trace returned for the raw trace tab
type RawTrace []json.RawMessage

// BackendVersion is the reply of the backend version endpoint
type BackendVersion struct {
	BackendVersion string `json:"backend_version"`
}
