package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipCompress(data []byte) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(data)
	_ = gz.Close()
	return buf.Bytes()
}

func brCompress(data []byte) []byte {
	var buf bytes.Buffer
	br := brotli.NewWriter(&buf)
	_, _ = br.Write(data)
	_ = br.Close()
	return buf.Bytes()
}

func zstdCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func rawDeflateCompress(data []byte) []byte {
	var buf bytes.Buffer
	dw, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = dw.Write(data)
	_ = dw.Close()
	return buf.Bytes()
}

func TestDecodeChain(t *testing.T) {
	payload := []byte(`var ytInitialPlayerResponse = {"captions":{}};`)

	tests := []struct {
		name     string
		encoding string
		body     []byte
		changed  bool
	}{
		{name: "none", encoding: "", body: payload, changed: false},
		{name: "identity", encoding: "identity", body: payload, changed: false},
		{name: "gzip", encoding: "gzip", body: gzipCompress(payload), changed: true},
		{name: "brotli", encoding: "br", body: brCompress(payload), changed: true},
		{name: "zstd", encoding: "zstd", body: zstdCompress(payload), changed: true},
		{name: "zlib deflate", encoding: "deflate", body: zlibCompress(payload), changed: true},
		{name: "raw deflate", encoding: "deflate", body: rawDeflateCompress(payload), changed: true},
		{name: "chain", encoding: "gzip, br", body: brCompress(gzipCompress(payload)), changed: true},
		{name: "upper case", encoding: "GZIP", body: gzipCompress(payload), changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed, err := DecodeChain(tt.encoding, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, payload, out)
		})
	}
}

func TestDecodeChain_Errors(t *testing.T) {
	_, _, err := DecodeChain("compress-lzw", []byte("x"))
	assert.ErrorContains(t, err, "unsupported content-encoding")

	_, _, err = DecodeChain("gzip", []byte("not gzip"))
	assert.ErrorContains(t, err, "decode gzip")
}
