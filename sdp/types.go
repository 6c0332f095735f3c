package sdp

import (
	"fmt"
	"strings"
)

// NetworkType is the <nettype> of o= and c= lines. The zero value means
// "not set" and is rendered as IN, the only network type SDP defines.
type NetworkType string

const NetworkInternet NetworkType = "IN"

func ParseNetworkType(s string) (NetworkType, error) {
	if strings.ToUpper(s) == string(NetworkInternet) {
		return NetworkInternet, nil
	}
	return "", fmt.Errorf("%w: unrecognized network type '%s'", ErrInvalidValue, s)
}

func (t NetworkType) format() (string, error) {
	switch t {
	case "", NetworkInternet:
		return string(NetworkInternet), nil
	default:
		return "", fmt.Errorf("%w: unknown network type '%s'", ErrFormat, string(t))
	}
}

type AddressType string

const (
	AddressIP4 AddressType = "IP4"
	AddressIP6 AddressType = "IP6"
)

func ParseAddressType(s string) (AddressType, error) {
	switch AddressType(strings.ToUpper(s)) {
	case AddressIP4:
		return AddressIP4, nil
	case AddressIP6:
		return AddressIP6, nil
	default:
		return "", fmt.Errorf("%w: unrecognized address type '%s'", ErrInvalidValue, s)
	}
}

func (t AddressType) format() (string, error) {
	switch t {
	case AddressIP4, AddressIP6:
		return string(t), nil
	default:
		return "", fmt.Errorf("%w: unknown address type '%s'", ErrFormat, string(t))
	}
}

// nullAddr is what gets written when a host is left blank.
func (t AddressType) nullAddr() string {
	if t == AddressIP6 {
		return "::"
	}
	return "0.0.0.0"
}

type BandwidthType string

const (
	BandwidthConferenceTotal     BandwidthType = "CT"
	BandwidthApplicationSpecific BandwidthType = "AS"
)

func ParseBandwidthType(s string) (BandwidthType, error) {
	switch BandwidthType(strings.ToUpper(s)) {
	case BandwidthConferenceTotal:
		return BandwidthConferenceTotal, nil
	case BandwidthApplicationSpecific:
		return BandwidthApplicationSpecific, nil
	default:
		return "", fmt.Errorf("%w: unrecognized bandwidth type '%s'", ErrInvalidValue, s)
	}
}

func (t BandwidthType) format() (string, error) {
	switch t {
	case BandwidthConferenceTotal, BandwidthApplicationSpecific:
		return string(t), nil
	default:
		return "", fmt.Errorf("%w: unknown bandwidth type '%s'", ErrFormat, string(t))
	}
}

// EncryptionType is the method of a k= line.
type EncryptionType string

const (
	EncryptionClear        EncryptionType = "clear"
	EncryptionBase64       EncryptionType = "base64"
	EncryptionURI          EncryptionType = "uri"
	EncryptionPromptForKey EncryptionType = "prompt"
)

func ParseEncryptionType(s string) (EncryptionType, error) {
	switch t := EncryptionType(strings.ToLower(s)); t {
	case EncryptionClear, EncryptionBase64, EncryptionURI, EncryptionPromptForKey:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unrecognized encryption type '%s'", ErrInvalidValue, s)
	}
}

func (t EncryptionType) format() (string, error) {
	switch t {
	case EncryptionClear, EncryptionBase64, EncryptionURI, EncryptionPromptForKey:
		return string(t), nil
	default:
		return "", fmt.Errorf("%w: unknown encryption type '%s'", ErrFormat, string(t))
	}
}

// Media types from RFC4566 section 5.14
type MediaType string

const (
	MediaTypeVideo       MediaType = "video"
	MediaTypeAudio       MediaType = "audio"
	MediaTypeText        MediaType = "text"
	MediaTypeApplication MediaType = "application"
	MediaTypeMessage     MediaType = "message"
)

func IsKnownMediaType(name string) (MediaType, bool) {
	switch MediaType(name) {
	case MediaTypeVideo,
		MediaTypeAudio,
		MediaTypeText,
		MediaTypeApplication,
		MediaTypeMessage:
		return MediaType(name), true
	default:
		return "", false
	}
}

func ParseMediaType(s string) (MediaType, error) {
	if t, ok := IsKnownMediaType(strings.ToLower(s)); ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: unrecognized media type '%s'", ErrInvalidValue, s)
}

func (t MediaType) format() (string, error) {
	if _, ok := IsKnownMediaType(string(t)); !ok {
		return "", fmt.Errorf("%w: unknown media type '%s'", ErrFormat, string(t))
	}
	return string(t), nil
}

// Protocol is the <proto> field of an m= line.
type Protocol string

const (
	ProtoRTPAVP     Protocol = "RTP/AVP"
	ProtoRTPSAVP    Protocol = "RTP/SAVP"
	ProtoUnknownUDP Protocol = "udp"
)

func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToUpper(s) {
	case string(ProtoRTPAVP):
		return ProtoRTPAVP, nil
	case string(ProtoRTPSAVP):
		return ProtoRTPSAVP, nil
	case "UDP":
		return ProtoUnknownUDP, nil
	default:
		return "", fmt.Errorf("%w: unknown protocol '%s'", ErrInvalidValue, s)
	}
}

// IsRTP reports whether the m= format list holds RTP payload types.
func (p Protocol) IsRTP() bool {
	return p == ProtoRTPAVP || p == ProtoRTPSAVP
}

func (p Protocol) format() (string, error) {
	switch p {
	case ProtoRTPAVP, ProtoRTPSAVP, ProtoUnknownUDP:
		return string(p), nil
	default:
		return "", fmt.Errorf("%w: unknown protocol '%s'", ErrFormat, string(p))
	}
}

type MediaDirection string

const (
	SendRecv MediaDirection = "sendrecv"
	SendOnly MediaDirection = "sendonly"
	RecvOnly MediaDirection = "recvonly"
	Inactive MediaDirection = "inactive"
)

func ParseMediaDirection(s string) (MediaDirection, error) {
	switch d := MediaDirection(strings.ToLower(s)); d {
	case SendRecv, SendOnly, RecvOnly, Inactive:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unrecognized media direction '%s'", ErrInvalidValue, s)
	}
}

func (d MediaDirection) format() (string, error) {
	switch d {
	case SendRecv, SendOnly, RecvOnly, Inactive:
		return string(d), nil
	default:
		return "", fmt.Errorf("%w: unknown media direction '%s'", ErrFormat, string(d))
	}
}

// Orientation is the value of a=orient, RFC4566 section 6.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Seascape  Orientation = "seascape"
)

func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(s)); o {
	case Landscape, Portrait, Seascape:
		return o, nil
	default:
		return "", fmt.Errorf("%w: unknown video orientation '%s'", ErrInvalidValue, s)
	}
}

func (o Orientation) format() (string, error) {
	switch o {
	case Landscape, Portrait, Seascape:
		return string(o), nil
	default:
		return "", fmt.Errorf("%w: unknown video orientation '%s'", ErrFormat, string(o))
	}
}

// Well-known a=type values.
const (
	ConferenceBroadcast = "broadcast"
	ConferenceMeeting   = "meeting"
	ConferenceModerated = "moderated"
	ConferenceTest      = "test"
	ConferenceH332      = "H332"
)
