package models

import (
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// Session state is cached as msgpack bytes; every load yields a fresh copy.

// EncodeMsgPack serializes a snapshot.
func EncodeMsgPack(v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, serr.Wrap(err, "failed to msgpack encode snapshot")
	}
	return b, nil
}

// DecodeMsgPack restores a snapshot produced by EncodeMsgPack into v.
func DecodeMsgPack(b []byte, v any) error {
	if len(b) == 0 {
		return serr.New("empty msgpack snapshot")
	}
	if err := msgpack.Unmarshal(b, v); err != nil {
		return serr.Wrap(err, "failed to unmarshal msgpack snapshot")
	}
	return nil
}
