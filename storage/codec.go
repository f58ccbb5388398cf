// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import (
	"encoding/binary"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

type tableMeta struct {
	Name    string
	Columns []string
}

func msgpackMarshal(v interface{}) ([]byte, error) {
	bytes, err := msgpack.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "msgpack marshal")
	}
	return bytes, nil
}

func msgpackUnmarshal(data []byte, v interface{}) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "msgpack unmarshal")
	}
	return nil
}

// Row payloads are msgpack, snappy-compressed.
func encodeRow(r *Row) ([]byte, error) {
	raw, err := msgpackMarshal(r)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

func decodeRow(data []byte) (*Row, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "snappy decode")
	}
	r := &Row{}
	if err := msgpackUnmarshal(raw, r); err != nil {
		return nil, err
	}
	return r, nil
}

func concatBytes(elem ...interface{}) []byte {
	var bytes []byte
	for _, e := range elem {
		switch v := e.(type) {
		case string:
			bytes = append(bytes, v...)
		case []byte:
			bytes = append(bytes, v...)
		case byte:
			bytes = append(bytes, v)
		}
	}
	return bytes
}

func packUint64(u uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, u)
	return buf
}
