package page

import (
	"context"
	"time"

	"github.com/thanhnp/tx-explorer/internal/explorerapi"
	"github.com/thanhnp/tx-explorer/internal/models"
	"github.com/thanhnp/tx-explorer/internal/query"
	"github.com/thanhnp/tx-explorer/internal/stubs"
)

// Section kinds, one per tab partial
const (
	KindDetails        = "details"
	KindWrapped        = "wrapped"
	KindTokenTransfers = "token_transfers"
	KindInternal       = "internal"
	KindLogs           = "logs"
	KindState          = "state"
	KindRawTrace       = "raw_trace"
)

// Input is what a tab body is derived from
type Input struct {
	Hash    string
	TX      *models.Transaction
	Loading bool // the transaction itself is still placeholder data
}

// Section is a rendered-ready tab body
type Section struct {
	Kind        string      `json:"kind"`
	Loading     bool        `json:"loading"`
	Data        interface{} `json:"data"`
	HasNextPage bool        `json:"has_next_page,omitempty"`
}

// Content produces the body of one tab
type Content interface {
	Load(ctx context.Context, in Input) Section
}

// AddressView is an address prepared for display
type AddressView struct {
	Hash       string `json:"hash"`
	Name       string `json:"name,omitempty"`
	IsContract bool   `json:"is_contract"`
}

func newAddressView(a *models.AddressParam) *AddressView {
	if a == nil {
		return nil
	}
	return &AddressView{Hash: ChecksumAddress(a.Hash), Name: a.Name, IsContract: a.IsContract}
}

// DetailsView is the body of the details tab
type DetailsView struct {
	Hash                 string               `json:"hash"`
	Status               string               `json:"status"`
	Result               string               `json:"result"`
	Pending              bool                 `json:"pending"`
	Block                *int64               `json:"block"`
	Timestamp            *time.Time           `json:"timestamp"`
	Confirmations        int64                `json:"confirmations"`
	From                 *AddressView         `json:"from"`
	To                   *AddressView         `json:"to"`
	CreatedContract      *AddressView         `json:"created_contract,omitempty"`
	Value                string               `json:"value"`
	Fee                  string               `json:"fee"`
	GasPrice             string               `json:"gas_price"`
	GasUsed              string               `json:"gas_used"`
	GasLimit             string               `json:"gas_limit"`
	MaxFeePerGas         string               `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas string               `json:"max_priority_fee_per_gas,omitempty"`
	Nonce                int64                `json:"nonce"`
	Position             int64                `json:"position"`
	Type                 int                  `json:"type"`
	TxTypes              []string             `json:"tx_types"`
	Method               string               `json:"method,omitempty"`
	RawInput             string               `json:"raw_input"`
	Input                InputInfo            `json:"input"`
	DecodedInput         *models.DecodedInput `json:"decoded_input,omitempty"`
	RevertReason         interface{}          `json:"revert_reason,omitempty"`
	ExecutionNode        *AddressView         `json:"execution_node,omitempty"`
	AllowedPeekers       []string             `json:"allowed_peekers,omitempty"`
}

// NewDetailsView formats tx for the details tab
func NewDetailsView(tx *models.Transaction) *DetailsView {
	v := &DetailsView{
		Hash:            tx.Hash,
		Status:          tx.Status,
		Result:          tx.Result,
		Pending:         tx.IsPending(),
		Block:           tx.Block,
		Timestamp:       tx.Timestamp,
		Confirmations:   tx.Confirmations,
		From:            newAddressView(&tx.From),
		To:              newAddressView(tx.To),
		CreatedContract: newAddressView(tx.CreatedContract),
		Value:           FormatEther(tx.Value),
		Fee:             FormatEther(tx.Fee.Value),
		GasPrice:        FormatGwei(tx.GasPrice),
		GasUsed:         tx.GasUsed,
		GasLimit:        tx.GasLimit,
		Nonce:           tx.Nonce,
		Position:        tx.Position,
		Type:            tx.Type,
		TxTypes:         tx.TxTypes,
		Method:          tx.Method,
		RawInput:        tx.RawInput,
		Input:           DescribeInput(tx.RawInput),
		DecodedInput:    tx.DecodedInput,
		RevertReason:    tx.RevertReason,
		ExecutionNode:   newAddressView(tx.ExecutionNode),
		AllowedPeekers:  tx.AllowedPeekers,
	}
	if tx.MaxFeePerGas != "" {
		v.MaxFeePerGas = FormatGwei(tx.MaxFeePerGas)
	}
	if tx.MaxPriorityFeePerGas != "" {
		v.MaxPriorityFeePerGas = FormatGwei(tx.MaxPriorityFeePerGas)
	}
	return v
}

// WrappedView is the body of the regular tx details tab
type WrappedView struct {
	Hash                 string               `json:"hash,omitempty"`
	Type                 int                  `json:"type"`
	Nonce                int64                `json:"nonce"`
	To                   *AddressView         `json:"to"`
	Value                string               `json:"value"`
	Fee                  string               `json:"fee,omitempty"`
	GasPrice             string               `json:"gas_price"`
	GasLimit             string               `json:"gas_limit"`
	MaxFeePerGas         string               `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas string               `json:"max_priority_fee_per_gas,omitempty"`
	Method               string               `json:"method,omitempty"`
	RawInput             string               `json:"raw_input"`
	Input                InputInfo            `json:"input"`
	DecodedInput         *models.DecodedInput `json:"decoded_input,omitempty"`
}

// NewWrappedView formats a wrapped companion record
func NewWrappedView(w *models.WrappedTransaction) *WrappedView {
	v := &WrappedView{
		Hash:         w.Hash,
		Type:         w.Type,
		Nonce:        w.Nonce,
		To:           newAddressView(w.To),
		Value:        FormatEther(w.Value),
		GasPrice:     FormatGwei(w.GasPrice),
		GasLimit:     w.GasLimit,
		Method:       w.Method,
		RawInput:     w.RawInput,
		Input:        DescribeInput(w.RawInput),
		DecodedInput: w.DecodedInput,
	}
	if w.Fee != nil {
		v.Fee = FormatEther(w.Fee.Value)
	}
	if w.MaxFeePerGas != "" {
		v.MaxFeePerGas = FormatGwei(w.MaxFeePerGas)
	}
	if w.MaxPriorityFeePerGas != "" {
		v.MaxPriorityFeePerGas = FormatGwei(w.MaxPriorityFeePerGas)
	}
	return v
}

// DetailsContent renders the transaction record itself
type DetailsContent struct{}

// Load implements Content
func (DetailsContent) Load(_ context.Context, in Input) Section {
	return Section{Kind: KindDetails, Loading: in.Loading, Data: NewDetailsView(in.TX)}
}

// WrappedContent renders the wrapped companion record
type WrappedContent struct {
	Data *models.WrappedTransaction
}

// Load implements Content
func (c WrappedContent) Load(_ context.Context, in Input) Section {
	return Section{Kind: KindWrapped, Loading: in.Loading, Data: NewWrappedView(c.Data)}
}

// ResourceContent renders a sub-resource of the transaction that has its
// own query. The query stays disabled until the transaction resolved.
type ResourceContent[T any] struct {
	client      *query.Client
	resource    string
	kind        string
	placeholder func() T
	wait        time.Duration
}

// NewResourceContent creates a ResourceContent
func NewResourceContent[T any](client *query.Client, resource, kind string, placeholder func() T, wait time.Duration) *ResourceContent[T] {
	return &ResourceContent[T]{
		client:      client,
		resource:    resource,
		kind:        kind,
		placeholder: placeholder,
		wait:        wait,
	}
}

type pager interface {
	HasNextPage() bool
}

// Load implements Content
func (c *ResourceContent[T]) Load(ctx context.Context, in Input) Section {
	res := query.Fetch(ctx, c.client, c.resource, TXParams(in.Hash), query.Options[T]{
		Enabled:     !in.Loading && in.Hash != "",
		Placeholder: c.placeholder,
		Wait:        c.wait,
	})

	s := Section{Kind: c.kind, Loading: res.IsPlaceholderData, Data: res.Data}
	if p, ok := any(res.Data).(pager); ok && !res.IsPlaceholderData {
		s.HasNextPage = p.HasNextPage()
	}
	return s
}

// DefaultContents wires every fixed tab to its explorer resource
func DefaultContents(client *query.Client, wait time.Duration) Contents {
	return Contents{
		Details:        DetailsContent{},
		TokenTransfers: NewResourceContent(client, explorerapi.ResourceTxTokenTransfers, KindTokenTransfers, stubs.TokenTransfers, wait),
		Internal:       NewResourceContent(client, explorerapi.ResourceTxInternalTxs, KindInternal, stubs.InternalTxs, wait),
		Logs:           NewResourceContent(client, explorerapi.ResourceTxLogs, KindLogs, stubs.Logs, wait),
		State:          NewResourceContent(client, explorerapi.ResourceTxStateChanges, KindState, stubs.StateChanges, wait),
		RawTrace:       NewResourceContent(client, explorerapi.ResourceTxRawTrace, KindRawTrace, stubs.RawTrace, wait),
	}
}
