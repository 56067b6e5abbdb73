package models

import (
	"time"
)

// AddressParam is an address reference as returned by the explorer API
type AddressParam struct {
	Hash       string `json:"hash"`
	Name       string `json:"name,omitempty"`
	IsContract bool   `json:"is_contract"`
	IsVerified bool   `json:"is_verified,omitempty"`
}

// Fee is a fee amount with its kind ("actual" or "maximum")
type Fee struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// DecodedInput is the ABI-decoded call data
type DecodedInput struct {
	MethodCall string                  `json:"method_call"`
	MethodID   string                  `json:"method_id"`
	Parameters []DecodedInputParameter `json:"parameters"`
}

// DecodedInputParameter is a single decoded argument
type DecodedInputParameter struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Transaction represents the explorer's transaction record
type Transaction struct {
	Hash                 string        `json:"hash"`
	Result               string        `json:"result"`
	Status               string        `json:"status"` // "ok", "error" or empty while pending
	Block                *int64        `json:"block"`
	Timestamp            *time.Time    `json:"timestamp"`
	Confirmations        int64         `json:"confirmations"`
	From                 AddressParam  `json:"from"`
	To                   *AddressParam `json:"to"`
	CreatedContract      *AddressParam `json:"created_contract"`
	Value                string        `json:"value"`
	Fee                  Fee           `json:"fee"`
	GasPrice             string        `json:"gas_price"`
	GasUsed              string        `json:"gas_used"`
	GasLimit             string        `json:"gas_limit"`
	MaxFeePerGas         string        `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas string        `json:"max_priority_fee_per_gas,omitempty"`
	Nonce                int64         `json:"nonce"`
	Position             int64         `json:"position"`
	Type                 int           `json:"type"`
	Method               string        `json:"method,omitempty"`
	RawInput             string        `json:"raw_input"`
	DecodedInput         *DecodedInput `json:"decoded_input"`
	TxTypes              []string      `json:"tx_types"`
	TxTag                string        `json:"tx_tag,omitempty"`
	RevertReason         interface{}   `json:"revert_reason,omitempty"`

	// Wrapped is the regular companion transaction of a confidential
	// compute (SUAVE) transaction.
	Wrapped *WrappedTransaction `json:"wrapped,omitempty"`

	// SUAVE specific
	ExecutionNode  *AddressParam `json:"execution_node,omitempty"`
	AllowedPeekers []string      `json:"allowed_peekers,omitempty"`
}

// WrappedTransaction is the subset of fields carried by a wrapped record
type WrappedTransaction struct {
	Hash                 string        `json:"hash,omitempty"`
	Type                 int           `json:"type"`
	Nonce                int64         `json:"nonce"`
	To                   *AddressParam `json:"to"`
	GasLimit             string        `json:"gas_limit"`
	GasPrice             string        `json:"gas_price"`
	Fee                  *Fee          `json:"fee,omitempty"`
	MaxFeePerGas         string        `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas string        `json:"max_priority_fee_per_gas,omitempty"`
	Value                string        `json:"value"`
	Method               string        `json:"method,omitempty"`
	RawInput             string        `json:"raw_input"`
	DecodedInput         *DecodedInput `json:"decoded_input"`
}

// HasWrapped reports whether the record carries a wrapped companion
func (t *Transaction) HasWrapped() bool {
	return t != nil && t.Wrapped != nil
}

// IsPending reports whether the transaction has not been mined yet
func (t *Transaction) IsPending() bool {
	return t.Block == nil
}
