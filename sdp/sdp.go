// Copyright 2020 Justine Alexandra Roberts Tunney
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Session Description Protocol Library
//
// This package turns SDP text into a structured model and back. Here's a
// typical SDP for a phone call sent by Asterisk:
//
//   v=0
//   o=root 31589 31589 IN IP4 10.0.0.38
//   s=session
//   c=IN IP4 10.0.0.38                <-- ip we should connect to
//   t=0 0
//   m=audio 30126 RTP/AVP 0 101       <-- audio port number and codecs
//   a=rtpmap:0 PCMU/8000              <-- use μ-Law codec at 8000 hz
//   a=rtpmap:101 telephone-event/8000 <-- they support rfc2833 dtmf tones
//   a=fmtp:101 0-16
//   a=ptime:20                        <-- send packet every 20 milliseconds
//   a=sendrecv                        <-- they wanna send and receive audio
//
// Lines before the first m= belong to the session; everything after an m=
// belongs to that media stream until the next m=. Attribute lines are
// decoded through a Registry, which callers can extend with their own
// attribute parsers:
//
//   reg := sdp.NewRegistry()
//   reg.Register("x-custom", parseCustom)
//   s, err := sdp.Parse(text, sdp.WithRegistry(reg))
//
// Formatting writes fields in a fixed order and fills in defaults for
// anything left blank, so Format(Parse(Format(s))) == Format(s).
//
// Reference Material:
//
// - SDP RFC: http://tools.ietf.org/html/rfc4566
// - RTP A/V profile: http://tools.ietf.org/html/rfc3551
//

package sdp

import (
	"bytes"
	"fmt"
	"net/netip"
	"strconv"

	"github.com/safermobility/sdpcodec/util"
)

const (
	ContentType = "application/sdp"
	Version     = 0
)

// SDP is a whole session description.
type SDP struct {
	Version             uint32 // v= must be 0
	Origin              Origin // o=
	SessionName         string // s= written as a single space when blank; whitespace-only parses as blank
	SessionInformation  string // i=
	URI                 string // u=
	Email               string // e=
	Phone               string // p=
	ConnectionData      ConnectionData
	Bandwidth           Bandwidth
	Timings             []Timing // t= lines, each with its r= lines
	TimeZoneAdjustments []TimeZoneAdjustment
	Encryption          Encryption
	Attributes          []Attribute // session-level a= lines in order
	Streams             []*Stream   // m= blocks in order
}

// New returns an empty description whose origin and connection data are
// IN IP4 with unset hosts. It formats as:
//
//	v=0
//	o=- - - IN IP4 0.0.0.0
//	s=
//	c=IN IP4 0.0.0.0
//	t=0 0
func New() *SDP {
	return &SDP{
		Origin: Origin{
			NetworkType: NetworkInternet,
			AddressType: AddressIP4,
		},
		ConnectionData: ConnectionData{
			NetworkType: NetworkInternet,
			AddressType: AddressIP4,
		},
	}
}

// NewAudio is an easy way to create a basic, everyday SDP for VoIP: one
// sendrecv RTP/AVP audio stream on addr offering the given payload maps.
func NewAudio(addr netip.AddrPort, maps ...*RtpMap) *SDP {
	host := util.AddrString(addr.Addr())
	addrType := AddressTypeOf(host)
	originID := util.GenerateOriginID()

	stream := &Stream{
		Media: MediaDescription{
			Type:     MediaTypeAudio,
			Port:     addr.Port(),
			Protocol: ProtoRTPAVP,
		},
	}
	for _, m := range maps {
		stream.Media.PayloadTypes = append(stream.Media.PayloadTypes, m.PayloadType)
		stream.Attributes = append(stream.Attributes, m)
	}
	stream.Attributes = append(stream.Attributes, &Direction{Direction: SendRecv})

	return &SDP{
		Origin: Origin{
			SessionID:      originID,
			SessionVersion: originID,
			NetworkType:    NetworkInternet,
			AddressType:    addrType,
			Host:           host,
		},
		SessionName: "-",
		ConnectionData: ConnectionData{
			NetworkType: NetworkInternet,
			AddressType: addrType,
			Host:        host,
		},
		Timings: []Timing{{}},
		Streams: []*Stream{stream},
	}
}

// AddressTypeOf picks IP6 for IPv6 literals and IP4 for everything else.
func AddressTypeOf(host string) AddressType {
	if util.IsIPv6(host) {
		return AddressIP6
	}
	return AddressIP4
}

func (sdp *SDP) ContentType() string {
	return ContentType
}

// Attribute returns the first session-level attribute with the given key.
func (sdp *SDP) Attribute(key string) (Attribute, bool) {
	return findAttribute(sdp.Attributes, key)
}

// Marshal formats the description as bytes.
func (sdp *SDP) Marshal() ([]byte, error) {
	var b bytes.Buffer
	if err := sdp.Append(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Format formats the description as a string.
func (sdp *SDP) Format() (string, error) {
	var b bytes.Buffer
	if err := sdp.Append(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Append writes the canonical text form to b. Nothing is written to b if
// the model cannot be formatted.
func (sdp *SDP) Append(b *bytes.Buffer) error {
	var out bytes.Buffer

	if sdp.Version != Version {
		return fmt.Errorf("%w: %w %d", ErrFormat, ErrUnsupportedVersion, sdp.Version)
	}
	writeLine(&out, 'v', strconv.FormatUint(uint64(sdp.Version), 10))

	origin, err := sdp.Origin.Format()
	if err != nil {
		return err
	}
	writeLine(&out, 'o', origin)

	if sdp.SessionName == "" {
		writeLine(&out, 's', " ")
	} else {
		writeLine(&out, 's', sdp.SessionName)
	}
	writeOptional(&out, 'i', sdp.SessionInformation)
	writeOptional(&out, 'u', sdp.URI)
	writeOptional(&out, 'e', sdp.Email)
	writeOptional(&out, 'p', sdp.Phone)

	if err := appendCommon(&out, sdp.ConnectionData, sdp.Bandwidth, nil); err != nil {
		return err
	}

	if len(sdp.TimeZoneAdjustments) > 0 {
		writeLine(&out, 'z', formatTimeZones(sdp.TimeZoneAdjustments))
	}

	if sdp.Encryption.Type != "" {
		enc, err := sdp.Encryption.Format()
		if err != nil {
			return err
		}
		writeLine(&out, 'k', enc)
	}

	if err := appendAttributes(&out, sdp.Attributes); err != nil {
		return err
	}

	if len(sdp.Timings) == 0 {
		writeLine(&out, 't', "0 0")
	}
	for _, t := range sdp.Timings {
		writeLine(&out, 't', t.Format())
		for _, r := range t.RepeatingTimes {
			writeLine(&out, 'r', r.Format())
		}
	}

	for i, stream := range sdp.Streams {
		if stream == nil {
			return fmt.Errorf("%w: stream %d is nil", ErrFormat, i)
		}
		if err := stream.Append(&out); err != nil {
			return fmt.Errorf("stream %d: %w", i, err)
		}
	}

	b.Write(out.Bytes())
	return nil
}

// appendCommon writes the c= and b= lines shared by sessions and streams,
// plus k= when enc is given.
func appendCommon(b *bytes.Buffer, conn ConnectionData, bw Bandwidth, enc *Encryption) error {
	if conn.AddressType != "" {
		s, err := conn.Format()
		if err != nil {
			return err
		}
		writeLine(b, 'c', s)
	}
	if bw.Type != "" {
		s, err := bw.Format()
		if err != nil {
			return err
		}
		writeLine(b, 'b', s)
	}
	if enc != nil && enc.Type != "" {
		s, err := enc.Format()
		if err != nil {
			return err
		}
		writeLine(b, 'k', s)
	}
	return nil
}

func appendAttributes(b *bytes.Buffer, attrs []Attribute) error {
	for i, attr := range attrs {
		if attr == nil {
			return fmt.Errorf("%w: attribute %d is nil", ErrFormat, i)
		}
		if v, ok := attr.(Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
		writeLine(b, 'a', attr.SDPLine())
	}
	return nil
}

func writeLine(b *bytes.Buffer, code byte, value string) {
	b.WriteByte(code)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteString("\r\n")
}

func writeOptional(b *bytes.Buffer, code byte, value string) {
	if value != "" {
		writeLine(b, code, value)
	}
}

func findAttribute(attrs []Attribute, key string) (Attribute, bool) {
	for _, attr := range attrs {
		if attr != nil && attr.Key() == key {
			return attr, true
		}
	}
	return nil, false
}
