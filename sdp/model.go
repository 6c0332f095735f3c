package sdp

import (
	"strconv"
	"strings"
)

// Origin is the o= line. Blank username, session id and version are written
// as "-"; a blank host becomes the null address of the address type. Blank
// network and address types default to IN and IP4.
type Origin struct {
	Username       string
	SessionID      string
	SessionVersion string
	NetworkType    NetworkType
	AddressType    AddressType
	Host           string
}

func (o Origin) Format() (string, error) {
	nt, err := o.NetworkType.format()
	if err != nil {
		return "", err
	}
	addrType := o.AddressType
	if addrType == "" {
		addrType = AddressIP4
	}
	at, err := addrType.format()
	if err != nil {
		return "", err
	}

	return strings.Join([]string{
		dashIfEmpty(o.Username),
		dashIfEmpty(o.SessionID),
		dashIfEmpty(o.SessionVersion),
		nt,
		at,
		nullAddrIfEmpty(o.Host, addrType),
	}, " "), nil
}

// ConnectionData is a c= line. It is omitted from output while AddressType
// is unset. Host is kept verbatim, including any multicast /ttl/count suffix.
type ConnectionData struct {
	NetworkType NetworkType
	AddressType AddressType
	Host        string
}

func (c ConnectionData) Format() (string, error) {
	nt, err := c.NetworkType.format()
	if err != nil {
		return "", err
	}
	at, err := c.AddressType.format()
	if err != nil {
		return "", err
	}
	return nt + " " + at + " " + nullAddrIfEmpty(c.Host, c.AddressType), nil
}

// Bandwidth is a b= line, omitted while Type is unset.
type Bandwidth struct {
	Type BandwidthType
	Kbps uint64
}

func (b Bandwidth) Format() (string, error) {
	t, err := b.Type.format()
	if err != nil {
		return "", err
	}
	return t + ":" + strconv.FormatUint(b.Kbps, 10), nil
}

// Timing is a t= line. Times are NTP seconds; an End of 0 means unbounded.
type Timing struct {
	Start          uint64
	End            uint64
	RepeatingTimes []RepeatingTime // r= lines following this t=
}

func (t Timing) Format() string {
	return strconv.FormatUint(t.Start, 10) + " " + strconv.FormatUint(t.End, 10)
}

// RepeatingTime is an r= line, all values in seconds.
type RepeatingTime struct {
	Interval uint64
	Duration uint64
	Offsets  []uint64
}

func (r RepeatingTime) Format() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(r.Interval, 10))
	b.WriteString(" ")
	b.WriteString(strconv.FormatUint(r.Duration, 10))
	for _, off := range r.Offsets {
		b.WriteString(" ")
		b.WriteString(strconv.FormatUint(off, 10))
	}
	return b.String()
}

// TimeZoneAdjustment says to add Adjustment seconds to the clock at
// AdjustAtTime. All adjustments share one z= line.
type TimeZoneAdjustment struct {
	AdjustAtTime uint64
	Adjustment   int64
}

func (z TimeZoneAdjustment) Format() string {
	return strconv.FormatUint(z.AdjustAtTime, 10) + " " + strconv.FormatInt(z.Adjustment, 10)
}

func formatTimeZones(adjustments []TimeZoneAdjustment) string {
	parts := make([]string, len(adjustments))
	for i, z := range adjustments {
		parts[i] = z.Format()
	}
	return strings.Join(parts, " ")
}

// Encryption is a k= line, omitted while Type is unset. Key is not written
// for EncryptionPromptForKey.
type Encryption struct {
	Type EncryptionType
	Key  string
}

func (e Encryption) Format() (string, error) {
	t, err := e.Type.format()
	if err != nil {
		return "", err
	}
	if e.Type == EncryptionPromptForKey {
		return t, nil
	}
	return t + ":" + e.Key, nil
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func nullAddrIfEmpty(host string, t AddressType) string {
	if host == "" {
		return t.nullAddr()
	}
	return host
}
