package sdp

import (
	"fmt"
	"math"

	"github.com/safermobility/sdpcodec/util"
)

// Each parser here takes the text after the "x=" prefix of one line.

func ParseVersion(value string) (uint32, error) {
	v, err := util.ParseUint32(value)
	if err != nil {
		return 0, fmt.Errorf("version: %w", err)
	}
	if v != Version {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	return v, nil
}

// I want a string that looks like "root 31589 31589 IN IP4 10.0.0.38".
// A "-" username, session id or version is stored as blank.
func ParseOrigin(value string) (Origin, error) {
	tokens := util.Fields(value, 0)
	if len(tokens) != 6 {
		return Origin{}, fmt.Errorf("%w: origin needs 6 fields, got %d", ErrInvalidValue, len(tokens))
	}
	nt, err := ParseNetworkType(tokens[3])
	if err != nil {
		return Origin{}, fmt.Errorf("origin: %w", err)
	}
	at, err := ParseAddressType(tokens[4])
	if err != nil {
		return Origin{}, fmt.Errorf("origin: %w", err)
	}
	return Origin{
		Username:       blankIfDash(tokens[0]),
		SessionID:      blankIfDash(tokens[1]),
		SessionVersion: blankIfDash(tokens[2]),
		NetworkType:    nt,
		AddressType:    at,
		Host:           tokens[5],
	}, nil
}

// I want a string that looks like "IN IP4 10.0.0.38".
func ParseConnectionData(value string) (ConnectionData, error) {
	tokens := util.Fields(value, 0)
	if len(tokens) != 3 {
		return ConnectionData{}, fmt.Errorf("%w: connection data needs 3 fields, got %d", ErrInvalidValue, len(tokens))
	}
	nt, err := ParseNetworkType(tokens[0])
	if err != nil {
		return ConnectionData{}, fmt.Errorf("connection data: %w", err)
	}
	at, err := ParseAddressType(tokens[1])
	if err != nil {
		return ConnectionData{}, fmt.Errorf("connection data: %w", err)
	}
	return ConnectionData{
		NetworkType: nt,
		AddressType: at,
		Host:        tokens[2],
	}, nil
}

// "AS:64"
func ParseBandwidth(value string) (Bandwidth, error) {
	parts := util.Split(value, ":", 0)
	if len(parts) != 2 {
		return Bandwidth{}, fmt.Errorf("%w: error parsing bandwidth '%s'", ErrInvalidValue, value)
	}
	t, err := ParseBandwidthType(parts[0])
	if err != nil {
		return Bandwidth{}, err
	}
	kbps, err := util.ParseUint64(parts[1])
	if err != nil {
		return Bandwidth{}, fmt.Errorf("bandwidth: %w", err)
	}
	return Bandwidth{Type: t, Kbps: kbps}, nil
}

// "<start> <stop>"
func ParseTiming(value string) (Timing, error) {
	tokens := util.Fields(value, 0)
	if len(tokens) != 2 {
		return Timing{}, fmt.Errorf("%w: error parsing timing '%s'", ErrInvalidValue, value)
	}
	start, err := util.ParseUint64(tokens[0])
	if err != nil {
		return Timing{}, fmt.Errorf("timing start: %w", err)
	}
	end, err := util.ParseUint64(tokens[1])
	if err != nil {
		return Timing{}, fmt.Errorf("timing end: %w", err)
	}
	return Timing{Start: start, End: end}, nil
}

// "<interval> <duration> <offset> [<offset>...]", each with an optional
// d/h/m/s unit.
func ParseRepeatingTime(value string) (RepeatingTime, error) {
	tokens := util.Fields(value, 0)
	if len(tokens) < 3 {
		return RepeatingTime{}, fmt.Errorf("%w: error parsing repeating times '%s'", ErrInvalidValue, value)
	}

	var rt RepeatingTime
	var err error
	if rt.Interval, err = ParseDurationUnsigned(tokens[0]); err != nil {
		return RepeatingTime{}, fmt.Errorf("repeat interval: %w", err)
	}
	if rt.Duration, err = ParseDurationUnsigned(tokens[1]); err != nil {
		return RepeatingTime{}, fmt.Errorf("repeat duration: %w", err)
	}
	for _, tok := range tokens[2:] {
		off, err := ParseDurationUnsigned(tok)
		if err != nil {
			return RepeatingTime{}, fmt.Errorf("repeat offset: %w", err)
		}
		rt.Offsets = append(rt.Offsets, off)
	}
	return rt, nil
}

// These fields are transmitted in pairs
// z=<adjustment time> <offset> <adjustment time> <offset> ....
func ParseTimeZones(value string) ([]TimeZoneAdjustment, error) {
	tokens := util.Fields(value, 0)
	if len(tokens) == 0 || len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: error parsing time zone information '%s'", ErrInvalidValue, value)
	}

	adjustments := make([]TimeZoneAdjustment, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		at, err := util.ParseUint64(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("time zone adjustment time: %w", err)
		}
		adj, err := ParseDurationSigned(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("time zone offset: %w", err)
		}
		adjustments = append(adjustments, TimeZoneAdjustment{AdjustAtTime: at, Adjustment: adj})
	}
	return adjustments, nil
}

// "<media> <port>[/<count>] <proto> <fmt> ..."
func ParseMediaDescription(value string) (MediaDescription, error) {
	tokens := util.Fields(value, 4)
	if len(tokens) < 4 {
		return MediaDescription{}, fmt.Errorf("%w: error parsing media description '%s'", ErrInvalidValue, value)
	}

	var md MediaDescription
	var err error
	if md.Type, err = ParseMediaType(tokens[0]); err != nil {
		return MediaDescription{}, err
	}

	port := util.Split(tokens[1], "/", 2)
	if md.Port, err = util.ParseUint16(port[0]); err != nil {
		return MediaDescription{}, fmt.Errorf("media port: %w", err)
	}
	if len(port) > 1 {
		if md.PortCount, err = util.ParseUint16(port[1]); err != nil {
			return MediaDescription{}, fmt.Errorf("media port count: %w", err)
		}
	}

	if md.Protocol, err = ParseProtocol(tokens[2]); err != nil {
		return MediaDescription{}, err
	}

	if md.Protocol.IsRTP() {
		for _, f := range util.Fields(tokens[3], 0) {
			pt, err := ParsePayloadType(f)
			if err != nil {
				return MediaDescription{}, fmt.Errorf("media format: %w", err)
			}
			md.PayloadTypes = append(md.PayloadTypes, pt)
		}
	} else {
		md.Codec = tokens[3]
	}

	return md, nil
}

// "<method>[:<key>]"
func ParseEncryption(value string) (Encryption, error) {
	parts := util.Split(value, ":", 2)
	t, err := ParseEncryptionType(parts[0])
	if err != nil {
		return Encryption{}, err
	}
	enc := Encryption{Type: t}
	if len(parts) > 1 {
		enc.Key = parts[1]
	}
	return enc, nil
}

// ParsePayloadType accepts 0 through 127.
func ParsePayloadType(s string) (uint8, error) {
	v, err := util.ParseInt32(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > MaxPayloadType {
		return 0, fmt.Errorf("%w: payload type %s", ErrOutOfRange, s)
	}
	return uint8(v), nil
}

// Some time offsets in the protocol can be provided with a shorthand
// notation: d (days), h (hours), m (minutes) or s (seconds).
func unitMultiplier(s string) (string, uint64, error) {
	if s == "" {
		return "", 0, fmt.Errorf("%w: empty time value", ErrInvalidValue)
	}
	switch last := s[len(s)-1]; {
	case last == 'd':
		return s[:len(s)-1], 86400, nil
	case last == 'h':
		return s[:len(s)-1], 3600, nil
	case last == 'm':
		return s[:len(s)-1], 60, nil
	case last == 's':
		return s[:len(s)-1], 1, nil
	case last >= '0' && last <= '9':
		return s, 1, nil
	default:
		return "", 0, fmt.Errorf("%w: unknown time unit in '%s'", ErrInvalidValue, s)
	}
}

// ParseDurationUnsigned converts a typed time such as "7d" to seconds.
func ParseDurationUnsigned(s string) (uint64, error) {
	num, mult, err := unitMultiplier(s)
	if err != nil {
		return 0, err
	}
	v, err := util.ParseUint64(num)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint64/mult {
		return 0, fmt.Errorf("%w: '%s' in seconds", ErrOutOfRange, s)
	}
	return v * mult, nil
}

// ParseDurationSigned is ParseDurationUnsigned for values such as "-1h".
func ParseDurationSigned(s string) (int64, error) {
	num, mult, err := unitMultiplier(s)
	if err != nil {
		return 0, err
	}
	v, err := util.ParseInt64(num)
	if err != nil {
		return 0, err
	}
	m := int64(mult)
	if v > math.MaxInt64/m || v < math.MinInt64/m {
		return 0, fmt.Errorf("%w: '%s' in seconds", ErrOutOfRange, s)
	}
	return v * m, nil
}

func blankIfDash(s string) string {
	if s == "-" {
		return ""
	}
	return s
}
