package pionsdp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	psdp "github.com/pion/sdp/v3"
	"github.com/safermobility/sdpcodec/sdp"
)

// FromPion converts a pion session description into the sdp model. Attribute
// lines are decoded with reg, or sdp.DefaultRegistry() when reg is nil; keys
// with no parser are kept as *sdp.GenericAttribute.
func FromPion(d *psdp.SessionDescription, reg *sdp.Registry) (*sdp.SDP, error) {
	if reg == nil {
		reg = sdp.DefaultRegistry()
	}
	if d.Version != 0 {
		return nil, fmt.Errorf("%w: %d", sdp.ErrUnsupportedVersion, d.Version)
	}

	origin, err := originFromPion(d.Origin)
	if err != nil {
		return nil, err
	}

	out := &sdp.SDP{
		Origin:      origin,
		SessionName: strings.TrimSpace(string(d.SessionName)),
	}
	if d.SessionInformation != nil {
		out.SessionInformation = string(*d.SessionInformation)
	}
	if d.URI != nil {
		out.URI = d.URI.String()
	}
	if d.EmailAddress != nil {
		out.Email = string(*d.EmailAddress)
	}
	if d.PhoneNumber != nil {
		out.Phone = string(*d.PhoneNumber)
	}

	if out.ConnectionData, err = connectionFromPion(d.ConnectionInformation); err != nil {
		return nil, err
	}
	if out.Bandwidth, err = bandwidthFromPion(d.Bandwidth); err != nil {
		return nil, err
	}
	if out.Encryption, err = encryptionFromPion(d.EncryptionKey); err != nil {
		return nil, err
	}

	for _, td := range d.TimeDescriptions {
		t, err := timingFromPion(td)
		if err != nil {
			return nil, err
		}
		out.Timings = append(out.Timings, t)
	}

	for _, z := range d.TimeZones {
		out.TimeZoneAdjustments = append(out.TimeZoneAdjustments, sdp.TimeZoneAdjustment{
			AdjustAtTime: z.AdjustmentTime,
			Adjustment:   z.Offset,
		})
	}

	if out.Attributes, err = attributesFromPion(d.Attributes, reg); err != nil {
		return nil, err
	}

	for i, md := range d.MediaDescriptions {
		if md == nil {
			continue
		}
		stream, err := streamFromPion(md, reg)
		if err != nil {
			return nil, fmt.Errorf("media %d: %w", i, err)
		}
		out.Streams = append(out.Streams, stream)
	}

	return out, nil
}

// Unmarshal decodes data with pion's parser and converts the result. Pion
// only accepts lines in the RFC4566 order; use sdp.Parse for anything else.
func Unmarshal(data []byte, reg *sdp.Registry) (*sdp.SDP, error) {
	var d psdp.SessionDescription
	if err := d.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: %w", sdp.ErrInvalidSDP, err)
	}
	return FromPion(&d, reg)
}

func originFromPion(o psdp.Origin) (sdp.Origin, error) {
	nt, err := sdp.ParseNetworkType(o.NetworkType)
	if err != nil {
		return sdp.Origin{}, fmt.Errorf("origin: %w", err)
	}
	at, err := sdp.ParseAddressType(o.AddressType)
	if err != nil {
		return sdp.Origin{}, fmt.Errorf("origin: %w", err)
	}
	username := o.Username
	if username == "-" {
		username = ""
	}
	return sdp.Origin{
		Username:       username,
		SessionID:      strconv.FormatUint(o.SessionID, 10),
		SessionVersion: strconv.FormatUint(o.SessionVersion, 10),
		NetworkType:    nt,
		AddressType:    at,
		Host:           o.UnicastAddress,
	}, nil
}

func connectionFromPion(c *psdp.ConnectionInformation) (sdp.ConnectionData, error) {
	if c == nil {
		return sdp.ConnectionData{}, nil
	}
	nt, err := sdp.ParseNetworkType(c.NetworkType)
	if err != nil {
		return sdp.ConnectionData{}, fmt.Errorf("connection data: %w", err)
	}
	at, err := sdp.ParseAddressType(c.AddressType)
	if err != nil {
		return sdp.ConnectionData{}, fmt.Errorf("connection data: %w", err)
	}
	cd := sdp.ConnectionData{NetworkType: nt, AddressType: at}
	if c.Address != nil {
		cd.Host = c.Address.String()
	}
	return cd, nil
}

// Only the first b= line survives; the model keeps one per level.
func bandwidthFromPion(bws []psdp.Bandwidth) (sdp.Bandwidth, error) {
	if len(bws) == 0 {
		return sdp.Bandwidth{}, nil
	}
	bw := bws[0]
	if bw.Experimental {
		return sdp.Bandwidth{}, fmt.Errorf("%w: experimental bandwidth type X-%s", sdp.ErrInvalidValue, bw.Type)
	}
	t, err := sdp.ParseBandwidthType(bw.Type)
	if err != nil {
		return sdp.Bandwidth{}, err
	}
	return sdp.Bandwidth{Type: t, Kbps: bw.Bandwidth}, nil
}

func encryptionFromPion(k *psdp.EncryptionKey) (sdp.Encryption, error) {
	if k == nil {
		return sdp.Encryption{}, nil
	}
	return sdp.ParseEncryption(string(*k))
}

func timingFromPion(td psdp.TimeDescription) (sdp.Timing, error) {
	t := sdp.Timing{Start: td.Timing.StartTime, End: td.Timing.StopTime}
	for _, r := range td.RepeatTimes {
		if r.Interval < 0 || r.Duration < 0 {
			return sdp.Timing{}, fmt.Errorf("%w: negative repeat time", sdp.ErrInvalidValue)
		}
		rt := sdp.RepeatingTime{Interval: uint64(r.Interval), Duration: uint64(r.Duration)}
		for _, off := range r.Offsets {
			if off < 0 {
				return sdp.Timing{}, fmt.Errorf("%w: negative repeat offset", sdp.ErrInvalidValue)
			}
			rt.Offsets = append(rt.Offsets, uint64(off))
		}
		t.RepeatingTimes = append(t.RepeatingTimes, rt)
	}
	return t, nil
}

func attributesFromPion(attrs []psdp.Attribute, reg *sdp.Registry) ([]sdp.Attribute, error) {
	var out []sdp.Attribute
	for _, a := range attrs {
		line := a.Key
		if a.Value != "" {
			line += ":" + a.Value
		}

		attr, err := reg.Parse(line)
		switch {
		case errors.Is(err, sdp.ErrUnknownAttribute):
			attr = &sdp.GenericAttribute{Name: a.Key, Val: a.Value, Property: a.Value == ""}
		case err != nil:
			return nil, fmt.Errorf("attribute '%s': %w", line, err)
		}
		out = append(out, attr)
	}
	return out, nil
}

func streamFromPion(md *psdp.MediaDescription, reg *sdp.Registry) (*sdp.Stream, error) {
	name := md.MediaName

	mt, err := sdp.ParseMediaType(name.Media)
	if err != nil {
		return nil, err
	}
	proto, err := sdp.ParseProtocol(strings.Join(name.Protos, "/"))
	if err != nil {
		return nil, err
	}
	if name.Port.Value < 0 || name.Port.Value > math.MaxUint16 {
		return nil, fmt.Errorf("%w: media port %d", sdp.ErrOutOfRange, name.Port.Value)
	}

	m := sdp.MediaDescription{
		Type:     mt,
		Port:     uint16(name.Port.Value),
		Protocol: proto,
	}
	if name.Port.Range != nil {
		if *name.Port.Range < 0 || *name.Port.Range > math.MaxUint16 {
			return nil, fmt.Errorf("%w: media port count %d", sdp.ErrOutOfRange, *name.Port.Range)
		}
		m.PortCount = uint16(*name.Port.Range)
	}
	if proto.IsRTP() {
		for _, f := range name.Formats {
			pt, err := sdp.ParsePayloadType(f)
			if err != nil {
				return nil, fmt.Errorf("media format: %w", err)
			}
			m.PayloadTypes = append(m.PayloadTypes, pt)
		}
	} else {
		m.Codec = strings.Join(name.Formats, " ")
	}

	stream := &sdp.Stream{Media: m}
	if md.MediaTitle != nil {
		stream.Title = string(*md.MediaTitle)
	}
	if stream.ConnectionData, err = connectionFromPion(md.ConnectionInformation); err != nil {
		return nil, err
	}
	if stream.Bandwidth, err = bandwidthFromPion(md.Bandwidth); err != nil {
		return nil, err
	}
	if stream.Encryption, err = encryptionFromPion(md.EncryptionKey); err != nil {
		return nil, err
	}
	if stream.Attributes, err = attributesFromPion(md.Attributes, reg); err != nil {
		return nil, err
	}
	return stream, nil
}
