package compression

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 20)

	for _, typ := range []Type{None, Snappy, LZ4, Zstd} {
		t.Run(typ.String(), func(t *testing.T) {
			compressed, err := Compress(typ, payload)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			got, err := Decompress(typ, compressed, len(payload))
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("round trip mismatch for %s", typ)
			}
		})
	}
}

func TestNoneIsIdentity(t *testing.T) {
	payload := []byte("unchanged")
	compressed, _ := Compress(None, payload)
	if !bytes.Equal(compressed, payload) {
		t.Fatal("None compression should be identity")
	}
}

func TestUnsupportedType(t *testing.T) {
	if _, err := Compress(Type(99), []byte("x")); err == nil {
		t.Fatal("expected error for unsupported compression type")
	}
	if _, err := Decompress(Type(99), []byte("x"), 0); err == nil {
		t.Fatal("expected error for unsupported compression type")
	}
}

func TestLZ4StoresIncompressibleInput(t *testing.T) {
	// Random bytes: CompressBlock reports n==0 rather than expanding them.
	payload := []byte{0x9f, 0x01, 0xde, 0xad, 0xbe, 0xef, 0x13, 0x37}
	compressed, err := Compress(LZ4, payload)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := Decompress(LZ4, compressed, len(payload))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, payload)
	}
}

func TestLZ4EmptyPayload(t *testing.T) {
	compressed, err := Compress(LZ4, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := Decompress(LZ4, compressed, 0)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestTypeString(t *testing.T) {
	cases := map[Type]string{None: "None", Snappy: "Snappy", LZ4: "LZ4", Zstd: "Zstd"}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
