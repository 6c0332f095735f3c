// Package pionsdp converts between sdp.SDP and the session description type
// of github.com/pion/sdp/v3, so documents can be handed to pion based media
// stacks and read back from them.
package pionsdp

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	psdp "github.com/pion/sdp/v3"
	"github.com/safermobility/sdpcodec/sdp"
)

var ErrNotRepresentable = errors.New("value cannot be represented")

// ToPion builds a pion session description carrying the same fields as s.
// Blank origin fields get the same defaults sdp.Format writes. Origin
// session ids and versions must be decimal because pion stores them as
// integers.
func ToPion(s *sdp.SDP) (*psdp.SessionDescription, error) {
	if s.Version != sdp.Version {
		return nil, fmt.Errorf("%w: %d", sdp.ErrUnsupportedVersion, s.Version)
	}

	origin, err := originToPion(s.Origin)
	if err != nil {
		return nil, err
	}

	sessionName := s.SessionName
	if sessionName == "" {
		sessionName = " "
	}

	out := &psdp.SessionDescription{
		Version:     0,
		Origin:      origin,
		SessionName: psdp.SessionName(sessionName),
	}

	if s.SessionInformation != "" {
		info := psdp.Information(s.SessionInformation)
		out.SessionInformation = &info
	}
	if s.URI != "" {
		if out.URI, err = url.Parse(s.URI); err != nil {
			return nil, fmt.Errorf("session uri: %w", err)
		}
	}
	if s.Email != "" {
		email := psdp.EmailAddress(s.Email)
		out.EmailAddress = &email
	}
	if s.Phone != "" {
		phone := psdp.PhoneNumber(s.Phone)
		out.PhoneNumber = &phone
	}

	out.ConnectionInformation = connectionToPion(s.ConnectionData)
	out.Bandwidth = bandwidthToPion(s.Bandwidth)
	if out.EncryptionKey, err = encryptionToPion(s.Encryption); err != nil {
		return nil, err
	}

	timings := s.Timings
	if len(timings) == 0 {
		timings = []sdp.Timing{{}}
	}
	for _, t := range timings {
		td, err := timingToPion(t)
		if err != nil {
			return nil, err
		}
		out.TimeDescriptions = append(out.TimeDescriptions, td)
	}

	for _, z := range s.TimeZoneAdjustments {
		out.TimeZones = append(out.TimeZones, psdp.TimeZone{
			AdjustmentTime: z.AdjustAtTime,
			Offset:         z.Adjustment,
		})
	}

	if out.Attributes, err = attributesToPion(s.Attributes); err != nil {
		return nil, err
	}

	for i, stream := range s.Streams {
		if stream == nil {
			return nil, fmt.Errorf("%w: stream %d is nil", sdp.ErrFormat, i)
		}
		md, err := streamToPion(stream)
		if err != nil {
			return nil, fmt.Errorf("stream %d: %w", i, err)
		}
		out.MediaDescriptions = append(out.MediaDescriptions, md)
	}

	return out, nil
}

// Marshal renders s through pion's encoder. Pion writes z=, k= and a= after
// the timing lines, so the text differs from sdp.Format but parses back to
// the same model.
func Marshal(s *sdp.SDP) ([]byte, error) {
	d, err := ToPion(s)
	if err != nil {
		return nil, err
	}
	return d.Marshal()
}

func originToPion(o sdp.Origin) (psdp.Origin, error) {
	id, err := originNumber(o.SessionID)
	if err != nil {
		return psdp.Origin{}, fmt.Errorf("origin session id: %w", err)
	}
	version, err := originNumber(o.SessionVersion)
	if err != nil {
		return psdp.Origin{}, fmt.Errorf("origin session version: %w", err)
	}

	username := o.Username
	if username == "" {
		username = "-"
	}
	addrType := o.AddressType
	if addrType == "" {
		addrType = sdp.AddressIP4
	}
	host := o.Host
	if host == "" {
		host = nullAddr(addrType)
	}

	return psdp.Origin{
		Username:       username,
		SessionID:      id,
		SessionVersion: version,
		NetworkType:    networkType(o.NetworkType),
		AddressType:    string(addrType),
		UnicastAddress: host,
	}, nil
}

func originNumber(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' is not a decimal number", ErrNotRepresentable, s)
	}
	return v, nil
}

func connectionToPion(c sdp.ConnectionData) *psdp.ConnectionInformation {
	if c.AddressType == "" {
		return nil
	}
	host := c.Host
	if host == "" {
		host = nullAddr(c.AddressType)
	}
	return &psdp.ConnectionInformation{
		NetworkType: networkType(c.NetworkType),
		AddressType: string(c.AddressType),
		Address:     &psdp.Address{Address: host},
	}
}

func bandwidthToPion(b sdp.Bandwidth) []psdp.Bandwidth {
	if b.Type == "" {
		return nil
	}
	return []psdp.Bandwidth{{Type: string(b.Type), Bandwidth: b.Kbps}}
}

func encryptionToPion(e sdp.Encryption) (*psdp.EncryptionKey, error) {
	if e.Type == "" {
		return nil, nil
	}
	s, err := e.Format()
	if err != nil {
		return nil, err
	}
	key := psdp.EncryptionKey(s)
	return &key, nil
}

func timingToPion(t sdp.Timing) (psdp.TimeDescription, error) {
	td := psdp.TimeDescription{
		Timing: psdp.Timing{StartTime: t.Start, StopTime: t.End},
	}
	for _, r := range t.RepeatingTimes {
		interval, err := toInt64(r.Interval)
		if err != nil {
			return psdp.TimeDescription{}, fmt.Errorf("repeat interval: %w", err)
		}
		duration, err := toInt64(r.Duration)
		if err != nil {
			return psdp.TimeDescription{}, fmt.Errorf("repeat duration: %w", err)
		}
		rt := psdp.RepeatTime{Interval: interval, Duration: duration}
		for _, off := range r.Offsets {
			o, err := toInt64(off)
			if err != nil {
				return psdp.TimeDescription{}, fmt.Errorf("repeat offset: %w", err)
			}
			rt.Offsets = append(rt.Offsets, o)
		}
		td.RepeatTimes = append(td.RepeatTimes, rt)
	}
	return td, nil
}

func attributesToPion(attrs []sdp.Attribute) ([]psdp.Attribute, error) {
	var out []psdp.Attribute
	for i, attr := range attrs {
		if attr == nil {
			return nil, fmt.Errorf("%w: attribute %d is nil", sdp.ErrFormat, i)
		}
		if v, ok := attr.(sdp.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		}
		key, value, found := strings.Cut(attr.SDPLine(), ":")
		if !found {
			out = append(out, psdp.NewPropertyAttribute(key))
			continue
		}
		out = append(out, psdp.NewAttribute(key, value))
	}
	return out, nil
}

func streamToPion(stream *sdp.Stream) (*psdp.MediaDescription, error) {
	// Format validates the m= line for us
	if _, err := stream.Media.Format(); err != nil {
		return nil, err
	}
	m := stream.Media

	md := &psdp.MediaDescription{
		MediaName: psdp.MediaName{
			Media:  string(m.Type),
			Port:   psdp.RangedPort{Value: int(m.Port)},
			Protos: strings.Split(string(m.Protocol), "/"),
		},
		ConnectionInformation: connectionToPion(stream.ConnectionData),
		Bandwidth:             bandwidthToPion(stream.Bandwidth),
	}
	if m.PortCount > 1 {
		count := int(m.PortCount)
		md.MediaName.Port.Range = &count
	}
	if m.Protocol.IsRTP() {
		for _, pt := range m.PayloadTypes {
			md.MediaName.Formats = append(md.MediaName.Formats, strconv.FormatUint(uint64(pt), 10))
		}
	} else {
		md.MediaName.Formats = []string{m.Codec}
	}

	if stream.Title != "" {
		title := psdp.Information(stream.Title)
		md.MediaTitle = &title
	}

	var err error
	if md.EncryptionKey, err = encryptionToPion(stream.Encryption); err != nil {
		return nil, err
	}
	if md.Attributes, err = attributesToPion(stream.Attributes); err != nil {
		return nil, err
	}
	return md, nil
}

func networkType(t sdp.NetworkType) string {
	if t == "" {
		return string(sdp.NetworkInternet)
	}
	return string(t)
}

func nullAddr(t sdp.AddressType) string {
	if t == sdp.AddressIP6 {
		return "::"
	}
	return "0.0.0.0"
}

func toInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d does not fit a signed 64-bit integer", ErrNotRepresentable, v)
	}
	return int64(v), nil
}
