package win32

import (
	"bufio"
	"encoding/binary"
	"io"
	"time"
)

const (
	subrecordStationInfoNoBorehole = 0xE000
	subrecordStationInfoBorehole   = 0xE001
	subrecordHypocenterInfo        = 0xE020
)

// Decode reads one WIN32 container from r in a single pass and returns
// its fully decoded contents. r is consumed sequentially; Decode never
// seeks and never attempts to resynchronize after a structural error.
func Decode(r io.Reader) (*Data, error) {
	br := bufio.NewReader(r)

	if err := readMagic(br); err != nil {
		return nil, err
	}

	data, err := readInfoBlock(br)
	if err != nil {
		return nil, err
	}

	for {
		_, err := br.Peek(1)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, formatErrorf(errShortRead, "peeking next second block: %v", err)
		}
		sec, err := readSecondBlock(br)
		if err != nil {
			return nil, err
		}
		data.Seconds = append(data.Seconds, *sec)
	}

	return data, nil
}

func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, formatErrorf(errShortRead, "%v", err)
	}
	return buf, nil
}

func readMagic(r io.Reader) error {
	b, err := readFull(r, 4)
	if err != nil {
		return err
	}
	if b[0] != 0x0A || b[1] != 0x02 {
		return formatErrorf(errBadMagic, "got %#x %#x", b[0], b[1])
	}
	return nil
}

func readInfoBlock(r io.Reader) (*Data, error) {
	head, err := readFull(r, 12)
	if err != nil {
		return nil, err
	}
	if head[0] != 0x0C {
		return nil, formatErrorf(errBadMagic, "info block prefix %#x", head[0])
	}

	data := &Data{
		Organization: head[4],
		Network:      head[5],
		StationID:    binary.BigEndian.Uint16(head[6:8]),
	}
	infoLen := binary.BigEndian.Uint32(head[8:12])

	var consumed uint32
	for consumed < infoLen {
		sub, err := readFull(r, 4)
		if err != nil {
			return nil, err
		}
		subType := binary.BigEndian.Uint16(sub[0:2])
		payloadLen := binary.BigEndian.Uint16(sub[2:4])
		payload, err := readFull(r, int(payloadLen))
		if err != nil {
			return nil, err
		}
		consumed += uint32(payloadLen) + 4

		switch subType {
		case subrecordStationInfoNoBorehole:
			si, err := decodeStationInfo(payload, false)
			if err != nil {
				return nil, err
			}
			data.StationInfo = si
		case subrecordStationInfoBorehole:
			si, err := decodeStationInfo(payload, true)
			if err != nil {
				return nil, err
			}
			data.StationInfo = si
		case subrecordHypocenterInfo:
			hi, err := decodeHypocenterInfo(payload)
			if err != nil {
				return nil, err
			}
			data.HypocenterInfo = hi
		default:
			// unknown subrecord type: skip its payload, already consumed above.
		}
	}

	return data, nil
}

func readSecondBlock(r io.Reader) (*SecondBlock, error) {
	head, err := readFull(r, 8+4+4)
	if err != nil {
		return nil, err
	}

	start, err := decodeBCDTime(nibblesOf(head[0:8]))
	if err != nil {
		return nil, err
	}
	frameDurationTenths := binary.BigEndian.Uint32(head[8:12])
	dataLen := binary.BigEndian.Uint32(head[12:16])

	sec := &SecondBlock{
		SamplingStartTime: start,
		FrameDuration:     time.Duration(frameDurationTenths) * 100 * time.Millisecond,
	}

	var consumed uint32
	for consumed < dataLen {
		chHead, err := readFull(r, 10)
		if err != nil {
			return nil, err
		}
		org := chHead[0]
		net := chHead[1]
		channelID := binary.BigEndian.Uint16(chHead[2:4])
		sampleMeta := binary.BigEndian.Uint16(chHead[4:6])
		mode := PackMode(sampleMeta >> 12)
		sampleCount := int(sampleMeta & 0x0FFF)
		firstValue := int32(binary.BigEndian.Uint32(chHead[6:10]))
		consumed += 10

		diffCount := sampleCount - 1
		need, ok := bytesNeeded(mode, diffCount)
		if !ok {
			return nil, formatErrorf(errUnknownPackMode, "mode %d", mode)
		}
		payload, err := readFull(r, need)
		if err != nil {
			return nil, err
		}
		consumed += uint32(need)

		samples, err := decodeWaveform(mode, sampleCount, firstValue, payload)
		if err != nil {
			return nil, err
		}

		sec.Channels = append(sec.Channels, ChannelData{
			Organization: org,
			Network:      net,
			ChannelID:    channelID,
			Data:         samples,
		})
	}
	if consumed != dataLen {
		return nil, formatErrorf(errShortRead, "second block: consumed %d bytes, want %d", consumed, dataLen)
	}

	return sec, nil
}
