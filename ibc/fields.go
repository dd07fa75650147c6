package ibc

import (
	"github.com/informalsystems/feltcodec"
)

// writer encodes record fields in order under ViaCairo, keeping the first error.
type writer struct {
	enc *feltcodec.Encoding
	buf *feltcodec.Buffer
	err error
}

func newWriter(enc *feltcodec.Encoding, buf *feltcodec.Buffer) *writer {
	return &writer{enc: enc, buf: buf}
}

func put[T any](w *writer, v T) {
	if w.err == nil {
		w.err = feltcodec.EncodeWith[feltcodec.ViaCairo](w.enc, w.buf, v)
	}
}

func putProto[T any](w *writer, v T) {
	if w.err == nil {
		w.err = feltcodec.EncodeWith[feltcodec.ViaProtobuf](w.enc, w.buf, v)
	}
}

// reader decodes record fields in order under ViaCairo, keeping the first error.
type reader struct {
	enc *feltcodec.Encoding
	cur *feltcodec.Cursor
	err error
}

func newReader(enc *feltcodec.Encoding, cur *feltcodec.Cursor) *reader {
	return &reader{enc: enc, cur: cur}
}

func get[T any](r *reader, dst *T) {
	if r.err == nil {
		*dst, r.err = feltcodec.DecodeWith[feltcodec.ViaCairo, T](r.enc, r.cur)
	}
}

func getProto[T any](r *reader, dst *T) {
	if r.err == nil {
		*dst, r.err = feltcodec.DecodeWith[feltcodec.ViaProtobuf, T](r.enc, r.cur)
	}
}
