package win32

func decodeHypocenterInfo(payload []byte) (*HypocenterInfo, error) {
	need := bcdTimeBytes + latLonFieldBytes*2 + latLonFieldBytes*2 + 1 + 1
	if len(payload) < need {
		return nil, formatErrorf(errShortRead, "HypocenterInfo subrecord: need %d bytes, have %d", need, len(payload))
	}

	off := 0
	readN := func(n int) []byte {
		b := payload[off : off+n]
		off += n
		return b
	}

	originTime, err := decodeBCDTime(nibblesOf(readN(bcdTimeBytes)))
	if err != nil {
		return nil, err
	}

	lat, err := decodeBCDField(nibblesOf(readN(latLonFieldBytes)), 3)
	if err != nil {
		return nil, err
	}
	lon, err := decodeBCDField(nibblesOf(readN(latLonFieldBytes)), 3)
	if err != nil {
		return nil, err
	}
	if lat != nil {
		applyCoordinateSign(lat, 90)
	}
	if lon != nil {
		applyCoordinateSign(lon, 180)
	}

	depth, err := decodeBCDField(nibblesOf(readN(latLonFieldBytes)), 3)
	if err != nil {
		return nil, err
	}
	magnitude, err := decodeBCDField(nibblesOf(readN(latLonFieldBytes)), 1)
	if err != nil {
		return nil, err
	}

	geodeticSystem := readN(1)[0]
	hypocenterType := readN(1)[0]

	return &HypocenterInfo{
		OriginTime:     originTime,
		Latitude:       lat,
		Longitude:      lon,
		Depth:          depth,
		Magnitude:      magnitude,
		GeodeticSystem: geodeticSystem,
		HypocenterType: hypocenterType,
	}, nil
}
