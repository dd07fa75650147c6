// Package feltcodec encodes Go values to and from the flat felt sequences accepted
// and returned by Cairo contracts.
//
// This package includes:
//   - Buffer and Cursor, the felt sequences encoders append to and decoders consume
//   - Strategy tags (ViaCairo, ViaProtobuf) selecting an encoding convention
//   - Registry and Encoding, the assembled (strategy, type) → codec bindings
//   - Codecs for felts, bool, u8..u128, u256, ByteArray, pairs and arrays
//   - Either/Void tagged unions, and the Option and Result types built on them
//   - StarkNet types (ContractAddress, ClassHash, EthAddress)
//   - Adapters threading auxiliary context through nested codecs
//
// Example usage:
//
//	r := feltcodec.NewCairoRegistry()
//	feltcodec.RegisterPair[feltcodec.ViaCairo, uint64, string](r)
//	enc, err := r.Build()
//	if err != nil {
//	    return err
//	}
//
//	felts, err := feltcodec.Encode[feltcodec.ViaCairo](enc, feltcodec.NewPair(uint64(7), "transfer"))
//	pair, err := feltcodec.Decode[feltcodec.ViaCairo, feltcodec.Pair[uint64, string]](enc, felts)
//
// Decoding failures are *Error values carrying an ErrorKind and the felt offset
// where decoding stopped. They describe malformed input and are never transient.
package feltcodec
