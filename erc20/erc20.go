// Package erc20 builds calls to, and reads state and events from, Starknet
// ERC-20 token contracts such as the ones escrowing ICS-20 transfers.
package erc20

import (
	"context"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/informalsystems/feltcodec"
)

// Entry points of the Starknet ERC-20 interface.
const (
	TransferEntrypoint    = "transfer"
	ApproveEntrypoint     = "approve"
	BalanceOfEntrypoint   = "balance_of"
	AllowanceEntrypoint   = "allowance"
	TotalSupplyEntrypoint = "total_supply"
)

type (
	recipientAmount = feltcodec.Pair[feltcodec.ContractAddress, *uint256.Int]
	ownerSpender    = feltcodec.Pair[feltcodec.ContractAddress, feltcodec.ContractAddress]
)

// NewEncoding assembles the encoding of ERC-20 call arguments, return values and events.
func NewEncoding(opts ...feltcodec.RegistryOption) (*feltcodec.Encoding, error) {
	all := make([]feltcodec.RegistryOption, 0, len(opts)+1)
	all = append(all, feltcodec.WithName("erc20"))
	r := feltcodec.NewCairoRegistry(append(all, opts...)...)
	feltcodec.RegisterPair[feltcodec.ViaCairo, feltcodec.ContractAddress, *uint256.Int](r)
	feltcodec.RegisterPair[feltcodec.ViaCairo, feltcodec.ContractAddress, feltcodec.ContractAddress](r)
	// Event payloads are decoded with a per-token codec that is never bound.
	for _, k := range (transferCodec{}).Dependencies() {
		feltcodec.RequireKey(r, k)
	}

	enc, err := r.Build()
	if err != nil {
		return nil, errors.Wrap(err, "assemble erc20 encoding")
	}
	return enc, nil
}

// TransferCall builds transfer(recipient, amount) on token.
func TransferCall(enc *feltcodec.Encoding, token, recipient feltcodec.ContractAddress, amount *uint256.Int) (rpc.InvokeFunctionCall, error) {
	return invoke(enc, token, TransferEntrypoint, feltcodec.NewPair(recipient, amount))
}

// ApproveCall builds approve(spender, amount) on token.
func ApproveCall(enc *feltcodec.Encoding, token, spender feltcodec.ContractAddress, amount *uint256.Int) (rpc.InvokeFunctionCall, error) {
	return invoke(enc, token, ApproveEntrypoint, feltcodec.NewPair(spender, amount))
}

// BalanceOfCall builds the balance_of(account) view call on token.
func BalanceOfCall(enc *feltcodec.Encoding, token, account feltcodec.ContractAddress) (rpc.FunctionCall, error) {
	return viewCall(enc, token, BalanceOfEntrypoint, account)
}

func invoke(enc *feltcodec.Encoding, token feltcodec.ContractAddress, function string, args recipientAmount) (rpc.InvokeFunctionCall, error) {
	if args.Second == nil {
		args.Second = new(uint256.Int)
	}
	calldata, err := feltcodec.Encode[feltcodec.ViaCairo](enc, args)
	if err != nil {
		return rpc.InvokeFunctionCall{}, errors.Wrapf(err, "encode %s calldata", function)
	}
	return rpc.InvokeFunctionCall{
		ContractAddress: token.Value,
		FunctionName:    function,
		CallData:        calldata,
	}, nil
}

func viewCall[A any](enc *feltcodec.Encoding, token feltcodec.ContractAddress, function string, args A) (rpc.FunctionCall, error) {
	calldata, err := feltcodec.Encode[feltcodec.ViaCairo](enc, args)
	if err != nil {
		return rpc.FunctionCall{}, errors.Wrapf(err, "encode %s calldata", function)
	}
	return rpc.FunctionCall{
		ContractAddress:    token.Value,
		EntryPointSelector: feltcodec.Selector(function),
		Calldata:           calldata,
	}, nil
}

// Caller executes view calls. *rpc.Provider satisfies it.
type Caller interface {
	Call(ctx context.Context, call rpc.FunctionCall, blockID rpc.BlockID) ([]*felt.Felt, error)
}

// Reader is used for ERC-20 view functions
type Reader struct {
	token  feltcodec.ContractAddress
	caller Caller
	enc    *feltcodec.Encoding
	log    *zap.Logger
}

// NewReader creates a reader for the token at the given address.
func NewReader(token feltcodec.ContractAddress, caller Caller, enc *feltcodec.Encoding) *Reader {
	return &Reader{
		token:  token,
		caller: caller,
		enc:    enc,
		log:    feltcodec.Logger().Named("erc20").With(zap.Stringer("token", token)),
	}
}

// BalanceOf returns the balance of account.
func (r *Reader) BalanceOf(ctx context.Context, account feltcodec.ContractAddress, opts ...CallOption) (*uint256.Int, error) {
	return call[feltcodec.ContractAddress, *uint256.Int](ctx, r, BalanceOfEntrypoint, account, opts)
}

// Allowance returns how much spender may transfer on behalf of owner.
func (r *Reader) Allowance(ctx context.Context, owner, spender feltcodec.ContractAddress, opts ...CallOption) (*uint256.Int, error) {
	return call[ownerSpender, *uint256.Int](ctx, r, AllowanceEntrypoint, feltcodec.NewPair(owner, spender), opts)
}

// TotalSupply returns the token supply.
func (r *Reader) TotalSupply(ctx context.Context, opts ...CallOption) (*uint256.Int, error) {
	return call[feltcodec.Unit, *uint256.Int](ctx, r, TotalSupplyEntrypoint, feltcodec.Unit{}, opts)
}

func call[A, R any](ctx context.Context, r *Reader, function string, args A, options []CallOption) (R, error) {
	var zero R
	req, err := viewCall(r.enc, r.token, function, args)
	if err != nil {
		return zero, err
	}

	opts := NewCallOpts(options...)
	res, err := r.caller.Call(ctx, req, opts.blockID())
	if err != nil {
		return zero, errors.Wrapf(err, "call %s", function)
	}
	r.log.Debug("view call", zap.String("function", function), zap.Int("result_felts", len(res)))

	v, err := feltcodec.Decode[feltcodec.ViaCairo, R](r.enc, res)
	if err != nil {
		return zero, errors.Wrapf(err, "decode %s result", function)
	}
	return v, nil
}
