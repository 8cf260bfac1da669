package repo

import (
	perr "combatlog/internal/platform/errors"

	"github.com/vmihailenco/msgpack/v5"
)

// encode serializes a stored value as msgpack
func encode(what string, v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeCodec, "encode %s", what)
	}
	return b, nil
}

// decode reads a stored msgpack value into v
func decode(what string, b []byte, v any) error {
	if err := msgpack.Unmarshal(b, v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeCodec, "decode %s", what)
	}
	return nil
}
