// Package serialization provides the codec and compression pipeline used to
// persist queue snapshots.
package serialization

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes snapshot payloads.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// JSONCodec encodes payloads as JSON. Slowest but human-readable, useful
// when snapshots are inspected by hand.
type JSONCodec struct{}

// NewJSONCodec creates a JSON codec.
func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (c *JSONCodec) Encode(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (c *JSONCodec) Decode(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func (c *JSONCodec) Name() string { return "json" }

// MsgpackCodec encodes payloads as MessagePack; the default for savers.
type MsgpackCodec struct{}

// NewMsgpackCodec creates a MessagePack codec.
func NewMsgpackCodec() *MsgpackCodec { return &MsgpackCodec{} }

func (c *MsgpackCodec) Encode(v interface{}) ([]byte, error) { return msgpack.Marshal(v) }

func (c *MsgpackCodec) Decode(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }

func (c *MsgpackCodec) Name() string { return "msgpack" }
