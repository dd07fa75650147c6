package erc20

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/informalsystems/feltcodec"
)

// TransferEventName is the name whose selector is the first key of a Transfer event.
const TransferEventName = "Transfer"

// TransferEvent is an ERC-20 Transfer. Token is the emitting contract, which the
// event itself does not carry.
type TransferEvent struct {
	Token feltcodec.ContractAddress
	From  feltcodec.ContractAddress
	To    feltcodec.ContractAddress
	Value *uint256.Int
}

// transferCodec reads from, to and value in that order and takes the token from
// the caller.
type transferCodec struct{}

func (transferCodec) EncodeFeltsWith(enc *feltcodec.Encoding, _ feltcodec.ContractAddress, buf *feltcodec.Buffer, v TransferEvent) error {
	if err := feltcodec.EncodeWith[feltcodec.ViaCairo](enc, buf, v.From); err != nil {
		return err
	}
	if err := feltcodec.EncodeWith[feltcodec.ViaCairo](enc, buf, v.To); err != nil {
		return err
	}
	value := v.Value
	if value == nil {
		value = new(uint256.Int)
	}
	return feltcodec.EncodeWith[feltcodec.ViaCairo](enc, buf, value)
}

func (transferCodec) DecodeFeltsWith(enc *feltcodec.Encoding, token feltcodec.ContractAddress, cur *feltcodec.Cursor) (TransferEvent, error) {
	ev := TransferEvent{Token: token}
	var err error
	if ev.From, err = feltcodec.DecodeWith[feltcodec.ViaCairo, feltcodec.ContractAddress](enc, cur); err != nil {
		return TransferEvent{}, err
	}
	if ev.To, err = feltcodec.DecodeWith[feltcodec.ViaCairo, feltcodec.ContractAddress](enc, cur); err != nil {
		return TransferEvent{}, err
	}
	if ev.Value, err = feltcodec.DecodeWith[feltcodec.ViaCairo, *uint256.Int](enc, cur); err != nil {
		return TransferEvent{}, err
	}
	return ev, nil
}

func (transferCodec) Dependencies() []feltcodec.Key {
	return []feltcodec.Key{
		feltcodec.KeyOf[feltcodec.ViaCairo, feltcodec.ContractAddress](),
		feltcodec.KeyOf[feltcodec.ViaCairo, *uint256.Int](),
	}
}

// TransferEventCodec returns the codec of Transfer events emitted by token.
func TransferEventCodec(token feltcodec.ContractAddress) feltcodec.AuxCodec[feltcodec.ContractAddress, TransferEvent] {
	return feltcodec.WithAux[feltcodec.ContractAddress, TransferEvent](token, transferCodec{})
}

// EncodeTransferEvent returns the keys and data of the Transfer event ev, as the
// token contract emits it.
func EncodeTransferEvent(enc *feltcodec.Encoding, ev TransferEvent) (keys, data []*felt.Felt, err error) {
	payload, err := feltcodec.EncodeUsing[TransferEvent](enc, TransferEventCodec(ev.Token), ev)
	if err != nil {
		return nil, nil, errors.Wrap(err, "encode Transfer event")
	}
	keys = append([]*felt.Felt{feltcodec.Selector(TransferEventName)}, payload[:2]...)
	return keys, payload[2:], nil
}

// DecodeTransferEvent decodes a Transfer event emitted by token from its keys
// and data. from and to are indexed, so they follow the selector in keys.
func DecodeTransferEvent(enc *feltcodec.Encoding, token feltcodec.ContractAddress, keys, data []*felt.Felt) (TransferEvent, error) {
	if len(keys) == 0 || !keys[0].Equal(feltcodec.Selector(TransferEventName)) {
		return TransferEvent{}, errors.Wrap(feltcodec.ErrInvalidValue, "not a Transfer event")
	}
	payload := make([]*felt.Felt, 0, len(keys)-1+len(data))
	payload = append(payload, keys[1:]...)
	payload = append(payload, data...)

	ev, err := feltcodec.DecodeUsing[TransferEvent](enc, TransferEventCodec(token), payload)
	if err != nil {
		return TransferEvent{}, errors.Wrap(err, "decode Transfer event")
	}
	return ev, nil
}
