package serialization

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressionType selects the compression applied after encoding.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionZstd CompressionType = "zstd"
)

// Config holds serializer settings.
type Config struct {
	Codec       Codec
	Compression CompressionType
}

// Serializer runs the encode+compress pipeline and its inverse.
type Serializer struct {
	config Config
}

// NewSerializer creates a serializer. A nil codec defaults to msgpack, an
// empty compression to none.
func NewSerializer(config Config) *Serializer {
	if config.Codec == nil {
		config.Codec = NewMsgpackCodec()
	}
	if config.Compression == "" {
		config.Compression = CompressionNone
	}
	return &Serializer{config: config}
}

// Default returns the saver default: msgpack with zstd compression.
func Default() *Serializer {
	return NewSerializer(Config{Codec: NewMsgpackCodec(), Compression: CompressionZstd})
}

// Name describes the pipeline, e.g. "msgpack+zstd".
func (s *Serializer) Name() string {
	return fmt.Sprintf("%s+%s", s.config.Codec.Name(), s.config.Compression)
}

// Serialize encodes and then compresses v.
func (s *Serializer) Serialize(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}

	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return data, nil
}

// Deserialize decompresses and then decodes data into v.
func (s *Serializer) Deserialize(data []byte, v interface{}) error {
	data, err := s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}

	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionNone:
		return data, nil

	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case CompressionZstd:
		w, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer w.Close()
		return w.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("unknown compression type: %s", s.config.Compression)
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionNone:
		return data, nil

	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)

	case CompressionZstd:
		r, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.DecodeAll(data, nil)

	default:
		return nil, fmt.Errorf("unknown compression type: %s", s.config.Compression)
	}
}
