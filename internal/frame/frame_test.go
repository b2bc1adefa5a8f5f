package frame

import (
	"bytes"
	"testing"
)

func TestSize(t *testing.T) {
	cases := []struct {
		payload uint32
		want    uint32
	}{
		{0, 8},
		{4, 8},
		{5, 16},
		{20, 24},
		{1024, 1032},
	}
	for _, c := range cases {
		if got := Size(c.payload); got != c.want {
			t.Errorf("Size(%d) = %d, want %d", c.payload, got, c.want)
		}
	}
}

func TestEncodeAtZeroesPadding(t *testing.T) {
	buf := bytes.Repeat([]byte{0xFF}, 16)
	EncodeAt(buf, 0, []byte("hi"))
	if got := buf[4:6]; !bytes.Equal(got, []byte("hi")) {
		t.Fatalf("payload = %q, want %q", got, "hi")
	}
	for i, b := range buf[6:Size(2)] {
		if b != 0 {
			t.Fatalf("padding byte %d = %#x, want 0", i, b)
		}
	}
}

func TestPublicationRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	payload := []byte("hello")
	EncodeAt(buf, 0, payload)
	StoreRelease(buf, 0, uint32(len(payload)))

	word := LoadAcquire(buf, 0)
	res, length := Decode(word, 1024)
	if res != Record {
		t.Fatalf("Decode result = %v, want Record", res)
	}
	if length != uint32(len(payload)) {
		t.Fatalf("decoded length = %d, want %d", length, len(payload))
	}
	got := buf[4 : 4+length]
	if !bytes.Equal(got, payload) {
		t.Fatalf("decoded payload = %q, want %q", got, payload)
	}
}

func TestDecodeNotReady(t *testing.T) {
	res, _ := Decode(0, 1024)
	if res != NotReady {
		t.Fatalf("Decode(0) = %v, want NotReady", res)
	}
}

func TestDecodeSentinels(t *testing.T) {
	cases := []struct {
		word uint32
		want Result
	}{
		{Watermark, EndWatermark},
		{Closed, EndClosed},
		{Aborted, EndAborted},
	}
	for _, c := range cases {
		if res, _ := Decode(c.word, 1024); res != c.want {
			t.Errorf("Decode(%#x) = %v, want %v", c.word, res, c.want)
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	// A length within the legal tag but larger than max_record_len.
	if res, _ := Decode(2000, 1024); res != Corrupt {
		t.Errorf("Decode(2000) with max 1024 = %v, want Corrupt", res)
	}
	// An unused tag combination (e.g. low bits set under a sentinel tag).
	if res, _ := Decode(Watermark|1, 1024); res != Corrupt {
		t.Errorf("Decode(Watermark|1) = %v, want Corrupt", res)
	}
}

func TestAlignUpAndIsAligned(t *testing.T) {
	if !IsAligned(16, 8) || IsAligned(15, 8) {
		t.Fatal("IsAligned mismatch")
	}
	if AlignUp(15, 8) != 16 || AlignUp(16, 8) != 16 {
		t.Fatal("AlignUp mismatch")
	}
}
