package win32

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

// packNibbles packs an even-length sequence of nibble values into bytes,
// high nibble first.
func packNibbles(digits ...byte) []byte {
	if len(digits)%2 != 0 {
		panic("packNibbles: odd digit count")
	}
	b := make([]byte, len(digits)/2)
	for i := 0; i < len(b); i++ {
		b[i] = digits[2*i]<<4 | digits[2*i+1]
	}
	return b
}

func TestDecode_MinimalContainerNoSubrecords(t *testing.T) {
	var buf bytes.Buffer

	buf.Write([]byte{0x0A, 0x02, 0x00, 0x00}) // magic
	buf.Write([]byte{0x0C, 0x00, 0x00, 0x00})
	buf.Write([]byte{1, 2}) // org, network
	binary.Write(&buf, binary.BigEndian, uint16(100))
	binary.Write(&buf, binary.BigEndian, uint32(0)) // infoLen: no subrecords

	// one second block, one channel, pack mode nibble, 3 samples.
	timeDigits := packNibbles(2, 0, 2, 4, 0, 6, 0, 1, 1, 2, 0, 0, 0, 0, 5, 0)
	buf.Write(timeDigits)
	binary.Write(&buf, binary.BigEndian, uint32(10)) // frameDuration: 1.0s
	channel := new(bytes.Buffer)
	channel.Write([]byte{1, 2})
	binary.Write(channel, binary.BigEndian, uint16(5)) // channelId
	sampleMeta := uint16(3)                            // pack mode 0 (nibble) in top 4 bits, sampleCount 3 in low 12
	binary.Write(channel, binary.BigEndian, sampleMeta)
	binary.Write(channel, binary.BigEndian, int32(1000)) // first value
	channel.Write([]byte{0x3E})                          // deltas 3, -2
	binary.Write(&buf, binary.BigEndian, uint32(channel.Len()))
	buf.Write(channel.Bytes())

	data, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if data.Organization != 1 || data.Network != 2 || data.StationID != 100 {
		t.Fatalf("header mismatch: %+v", data)
	}
	if data.StationInfo != nil {
		t.Fatalf("expected no StationInfo, got %+v", data.StationInfo)
	}
	if len(data.Seconds) != 1 {
		t.Fatalf("Seconds: got %d, want 1", len(data.Seconds))
	}

	sec := data.Seconds[0]
	wantStart := time.Date(2024, 6, 1, 12, 0, 0, 500*int(time.Millisecond), jst)
	if !sec.SamplingStartTime.Equal(wantStart) {
		t.Fatalf("SamplingStartTime = %v, want %v", sec.SamplingStartTime, wantStart)
	}
	if sec.FrameDuration != time.Second {
		t.Fatalf("FrameDuration = %v, want 1s", sec.FrameDuration)
	}
	if len(sec.Channels) != 1 {
		t.Fatalf("Channels: got %d, want 1", len(sec.Channels))
	}

	ch := sec.Channels[0]
	if ch.ChannelID != 5 {
		t.Fatalf("ChannelID = %d, want 5", ch.ChannelID)
	}
	want := []int32{1000, 1003, 1001}
	if len(ch.Data) != len(want) {
		t.Fatalf("Data length = %d, want %d", len(ch.Data), len(want))
	}
	for i := range want {
		if ch.Data[i] != want[i] {
			t.Errorf("Data[%d] = %d, want %d", i, ch.Data[i], want[i])
		}
	}
}

func TestDecode_BadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x00, 0x00, 0x00})
	if _, err := Decode(buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestDecode_TruncatedStream(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x0A, 0x02})
	if _, err := Decode(buf); err == nil {
		t.Fatal("expected error for truncated stream")
	}
}

func TestDecode_UnknownSubrecordIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x0A, 0x02, 0x00, 0x00})
	buf.Write([]byte{0x0C, 0x00, 0x00, 0x00})
	buf.Write([]byte{1, 2})
	binary.Write(&buf, binary.BigEndian, uint16(100))

	sub := new(bytes.Buffer)
	binary.Write(sub, binary.BigEndian, uint16(0xF000)) // unknown type
	binary.Write(sub, binary.BigEndian, uint16(2))
	sub.Write([]byte{0xAB, 0xCD})

	binary.Write(&buf, binary.BigEndian, uint32(sub.Len()))
	buf.Write(sub.Bytes())

	data, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if data.StationInfo != nil || data.HypocenterInfo != nil {
		t.Fatalf("expected no known subrecords decoded, got %+v", data)
	}
	if len(data.Seconds) != 0 {
		t.Fatalf("Seconds: got %d, want 0", len(data.Seconds))
	}
}
