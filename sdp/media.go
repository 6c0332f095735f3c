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

package sdp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// MediaDescription is the m= line. RTP protocols list payload types; raw UDP
// carries a codec string instead.
type MediaDescription struct {
	Type         MediaType
	Port         uint16
	PortCount    uint16 // 0 and 1 both mean a single port; written only when greater than 1
	Protocol     Protocol
	PayloadTypes []uint8 // RTP/AVP and RTP/SAVP only
	Codec        string  // udp only
}

func (m MediaDescription) Format() (string, error) {
	mt, err := m.Type.format()
	if err != nil {
		return "", err
	}
	proto, err := m.Protocol.format()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(mt)
	b.WriteString(" ")
	b.WriteString(strconv.FormatUint(uint64(m.Port), 10))
	if m.PortCount > 1 {
		b.WriteString("/")
		b.WriteString(strconv.FormatUint(uint64(m.PortCount), 10))
	}
	b.WriteString(" ")
	b.WriteString(proto)

	if m.Protocol.IsRTP() {
		if len(m.PayloadTypes) == 0 {
			return "", fmt.Errorf("%w: at least one payload type must be specified when using %s", ErrFormat, proto)
		}
		for _, pt := range m.PayloadTypes {
			if err := validatePayloadType(pt); err != nil {
				return "", err
			}
			b.WriteString(" ")
			b.WriteString(strconv.FormatUint(uint64(pt), 10))
		}
	} else {
		if m.Codec == "" {
			return "", fmt.Errorf("%w: the codec must be specified when using raw udp", ErrFormat)
		}
		b.WriteString(" ")
		b.WriteString(m.Codec)
	}

	return b.String(), nil
}

// Stream is one m= block and the lines that follow it.
type Stream struct {
	Media          MediaDescription
	Title          string // i=
	ConnectionData ConnectionData
	Bandwidth      Bandwidth
	Encryption     Encryption
	Attributes     []Attribute
}

func (stream *Stream) Append(b *bytes.Buffer) error {
	m, err := stream.Media.Format()
	if err != nil {
		return err
	}
	writeLine(b, 'm', m)
	writeOptional(b, 'i', stream.Title)

	// If this media description has its own c=, b= or k= line
	if err := appendCommon(b, stream.ConnectionData, stream.Bandwidth, &stream.Encryption); err != nil {
		return err
	}

	return appendAttributes(b, stream.Attributes)
}

// Attribute returns the first attribute of this stream with the given key.
func (stream *Stream) Attribute(key string) (Attribute, bool) {
	return findAttribute(stream.Attributes, key)
}

// Direction returns the stream's direction attribute, or SendRecv when the
// stream has none (RFC4566 section 6).
func (stream *Stream) Direction() MediaDirection {
	for _, attr := range stream.Attributes {
		if d, ok := attr.(*Direction); ok {
			return d.Direction
		}
	}
	return SendRecv
}

// RtpMap finds the a=rtpmap for pt. Static payload types without one are
// filled in from the RTP/AVP table.
func (stream *Stream) RtpMap(pt uint8) (*RtpMap, bool) {
	for _, attr := range stream.Attributes {
		if m, ok := attr.(*RtpMap); ok && m.PayloadType == pt {
			return m, true
		}
	}
	return StaticRtpMap(pt)
}

func (stream *Stream) FormatParams(pt uint8) (*FormatParams, bool) {
	for _, attr := range stream.Attributes {
		if f, ok := attr.(*FormatParams); ok && f.PayloadType == pt {
			return f, true
		}
	}
	return nil, false
}
