package win32

import "time"

// decodeBCDTime decodes the 16-nibble BCD timestamp field used by the
// second-block header and by station/hypocenter timing fields:
// yyyy(4) mm(2) dd(2) hh(2) mi(2) ss(2) ff(2, hundredths of a second),
// interpreted in Japan Standard Time.
func decodeBCDTime(nibbles []byte) (time.Time, error) {
	if len(nibbles) < 16 {
		return time.Time{}, formatErrorf(errShortRead, "BCD time field: need 16 nibbles, have %d", len(nibbles))
	}

	digit := func(i int) (int, error) {
		nb := nibbles[i]
		if nb > 9 {
			return 0, formatErrorf(errInvalidBCDDigit, "time nibble %#x at position %d", nb, i)
		}
		return int(nb), nil
	}

	field := func(start, width int) (int, error) {
		v := 0
		for i := 0; i < width; i++ {
			d, err := digit(start + i)
			if err != nil {
				return 0, err
			}
			v = v*10 + d
		}
		return v, nil
	}

	year, err := field(0, 4)
	if err != nil {
		return time.Time{}, err
	}
	month, err := field(4, 2)
	if err != nil {
		return time.Time{}, err
	}
	day, err := field(6, 2)
	if err != nil {
		return time.Time{}, err
	}
	hour, err := field(8, 2)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := field(10, 2)
	if err != nil {
		return time.Time{}, err
	}
	second, err := field(12, 2)
	if err != nil {
		return time.Time{}, err
	}
	hundredths, err := field(14, 2)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, hundredths*10*int(time.Millisecond), jst), nil
}
