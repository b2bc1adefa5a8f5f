package encoding

import "testing"

func TestFixed32RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0xFFFFFFFF, 0xDEADBEEF, 12345}
	for _, v := range cases {
		buf := make([]byte, 4)
		EncodeFixed32(buf, v)
		if got := DecodeFixed32(buf); got != v {
			t.Errorf("DecodeFixed32(EncodeFixed32(%d)) = %d", v, got)
		}
	}
}

func TestFixed64RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0xDEADBEEFCAFEBABE, 12345}
	for _, v := range cases {
		buf := make([]byte, 8)
		EncodeFixed64(buf, v)
		if got := DecodeFixed64(buf); got != v {
			t.Errorf("DecodeFixed64(EncodeFixed64(%d)) = %d", v, got)
		}
	}
}

func TestFixed32LittleEndian(t *testing.T) {
	buf := make([]byte, 4)
	EncodeFixed32(buf, 0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("EncodeFixed32 not little-endian: got %x, want %x", buf, want)
		}
	}
}

func TestAppendFixed(t *testing.T) {
	var buf []byte
	buf = AppendFixed32(buf, 1)
	buf = AppendFixed64(buf, 2)
	if len(buf) != 12 {
		t.Fatalf("len(buf) = %d, want 12", len(buf))
	}
	if DecodeFixed32(buf[:4]) != 1 {
		t.Error("AppendFixed32 did not append correctly")
	}
	if DecodeFixed64(buf[4:]) != 2 {
		t.Error("AppendFixed64 did not append correctly")
	}
}
