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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/safermobility/sdpcodec/util"
)

// Attribute is the decoded form of one a= line.
type Attribute interface {
	Key() string
	Value() string

	// SDPLine is everything after "a=", normally "key:value".
	SDPLine() string
}

// Validator is implemented by attributes whose fields can hold values that
// have no textual form. The formatter refuses to write those.
type Validator interface {
	Validate() error
}

func keyValue(a Attribute) string {
	return a.Key() + ":" + a.Value()
}

// Attribute keys understood out of the box.
const (
	KeyCategory       = "cat"
	KeyKeywords       = "keywds"
	KeyTool           = "tool"
	KeyPacketTime     = "ptime"
	KeyMaxPacketTime  = "maxptime"
	KeyRtpMap         = "rtpmap"
	KeyOrientation    = "orient"
	KeyConferenceType = "type"
	KeyCharset        = "charset"
	KeySDPLanguage    = "sdplang"
	KeyLanguage       = "lang"
	KeyFramerate      = "framerate"
	KeyQuality        = "quality"
	KeyFormatParams   = "fmtp"
)

type Category struct{ Category string }

func (a *Category) Key() string     { return KeyCategory }
func (a *Category) Value() string   { return a.Category }
func (a *Category) SDPLine() string { return keyValue(a) }

type Keywords struct{ Keywords string }

func (a *Keywords) Key() string     { return KeyKeywords }
func (a *Keywords) Value() string   { return a.Keywords }
func (a *Keywords) SDPLine() string { return keyValue(a) }

type Tool struct{ Tool string }

func (a *Tool) Key() string     { return KeyTool }
func (a *Tool) Value() string   { return a.Tool }
func (a *Tool) SDPLine() string { return keyValue(a) }

// ConferenceType is a=type; see the Conference* constants for common values.
type ConferenceType struct{ Type string }

func (a *ConferenceType) Key() string     { return KeyConferenceType }
func (a *ConferenceType) Value() string   { return a.Type }
func (a *ConferenceType) SDPLine() string { return keyValue(a) }

type Charset struct{ Charset string }

func (a *Charset) Key() string     { return KeyCharset }
func (a *Charset) Value() string   { return a.Charset }
func (a *Charset) SDPLine() string { return keyValue(a) }

type SDPLanguage struct{ Language string }

func (a *SDPLanguage) Key() string     { return KeySDPLanguage }
func (a *SDPLanguage) Value() string   { return a.Language }
func (a *SDPLanguage) SDPLine() string { return keyValue(a) }

type MediaLanguage struct{ Language string }

func (a *MediaLanguage) Key() string     { return KeyLanguage }
func (a *MediaLanguage) Value() string   { return a.Language }
func (a *MediaLanguage) SDPLine() string { return keyValue(a) }

// PacketTime is a=ptime, in milliseconds.
type PacketTime struct{ Duration uint64 }

func (a *PacketTime) Key() string     { return KeyPacketTime }
func (a *PacketTime) Value() string   { return strconv.FormatUint(a.Duration, 10) }
func (a *PacketTime) SDPLine() string { return keyValue(a) }

// MaxPacketTime is a=maxptime, in milliseconds.
type MaxPacketTime struct{ Duration uint64 }

func (a *MaxPacketTime) Key() string     { return KeyMaxPacketTime }
func (a *MaxPacketTime) Value() string   { return strconv.FormatUint(a.Duration, 10) }
func (a *MaxPacketTime) SDPLine() string { return keyValue(a) }

type Quality struct{ Quality uint32 }

func (a *Quality) Key() string     { return KeyQuality }
func (a *Quality) Value() string   { return strconv.FormatUint(uint64(a.Quality), 10) }
func (a *Quality) SDPLine() string { return keyValue(a) }

// Direction is one of the property attributes a=sendrecv, a=sendonly,
// a=recvonly or a=inactive. It has no value.
type Direction struct{ Direction MediaDirection }

func (a *Direction) Key() string     { return string(a.Direction) }
func (a *Direction) Value() string   { return "" }
func (a *Direction) SDPLine() string { return a.Key() }

func (a *Direction) Validate() error {
	_, err := a.Direction.format()
	return err
}

type OrientationAttr struct{ Orientation Orientation }

func (a *OrientationAttr) Key() string     { return KeyOrientation }
func (a *OrientationAttr) Value() string   { return string(a.Orientation) }
func (a *OrientationAttr) SDPLine() string { return keyValue(a) }

func (a *OrientationAttr) Validate() error {
	_, err := a.Orientation.format()
	return err
}

type Framerate struct{ Framerate float64 }

func (a *Framerate) Key() string { return KeyFramerate }

// Value prints at most three decimals and drops trailing zeros, so 24.000
// becomes "24" and 29.970 becomes "29.97".
func (a *Framerate) Value() string {
	s := strconv.FormatFloat(a.Framerate, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func (a *Framerate) SDPLine() string { return keyValue(a) }

func (a *Framerate) Validate() error {
	if math.IsNaN(a.Framerate) || math.IsInf(a.Framerate, 0) || a.Framerate < 0 {
		return fmt.Errorf("%w: invalid framerate %v", ErrFormat, a.Framerate)
	}
	return nil
}

// FormatParams is a=fmtp. Params is kept opaque.
type FormatParams struct {
	PayloadType uint8
	Params      string
}

func (a *FormatParams) Key() string { return KeyFormatParams }

func (a *FormatParams) Value() string {
	pt := strconv.FormatUint(uint64(a.PayloadType), 10)
	if a.Params == "" {
		return pt
	}
	return pt + " " + a.Params
}

func (a *FormatParams) SDPLine() string { return keyValue(a) }

func (a *FormatParams) Validate() error {
	return validatePayloadType(a.PayloadType)
}

// RtpMap is a=rtpmap:<pt> <name>/<rate>[/<channels>]. A channel count of 0
// means 1: neither is written, and a line without a count parses as 1.
type RtpMap struct {
	PayloadType  uint8
	EncodingName string // e.g. PCMU, G729, telephone-event, etc.
	ClockRate    uint32 // frequency in hertz
	Channels     uint32
}

func (a *RtpMap) Key() string { return KeyRtpMap }

func (a *RtpMap) Value() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(a.PayloadType), 10))
	b.WriteString(" ")
	b.WriteString(a.EncodingName)
	b.WriteString("/")
	b.WriteString(strconv.FormatUint(uint64(a.ClockRate), 10))
	if a.Channels > 1 {
		b.WriteString("/")
		b.WriteString(strconv.FormatUint(uint64(a.Channels), 10))
	}
	return b.String()
}

func (a *RtpMap) SDPLine() string { return keyValue(a) }

func (a *RtpMap) Validate() error {
	if a.EncodingName == "" {
		return fmt.Errorf("%w: rtpmap for payload type %d has no encoding name", ErrFormat, a.PayloadType)
	}
	return validatePayloadType(a.PayloadType)
}

// GenericAttribute holds an a= line whose key has no registered parser.
// Property is set for bare flags written without a colon.
type GenericAttribute struct {
	Name     string
	Val      string
	Property bool
}

func (a *GenericAttribute) Key() string   { return a.Name }
func (a *GenericAttribute) Value() string { return a.Val }

func (a *GenericAttribute) SDPLine() string {
	if a.Property && a.Val == "" {
		return a.Name
	}
	return keyValue(a)
}

func (a *GenericAttribute) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: attribute without a name", ErrFormat)
	}
	return nil
}

func validatePayloadType(pt uint8) error {
	if pt > MaxPayloadType {
		return fmt.Errorf("%w: payload type %d is out of range", ErrFormat, pt)
	}
	return nil
}

// Parsers for the built-in attributes. The key passed in is ignored except
// by ParseDirection, which derives the direction from it.

func ParseCategory(key, value string) (Attribute, error) {
	return &Category{Category: value}, nil
}

func ParseKeywords(key, value string) (Attribute, error) {
	return &Keywords{Keywords: value}, nil
}

func ParseTool(key, value string) (Attribute, error) {
	return &Tool{Tool: value}, nil
}

func ParseConferenceType(key, value string) (Attribute, error) {
	return &ConferenceType{Type: value}, nil
}

func ParseCharset(key, value string) (Attribute, error) {
	return &Charset{Charset: value}, nil
}

func ParseSDPLanguage(key, value string) (Attribute, error) {
	return &SDPLanguage{Language: value}, nil
}

func ParseLanguage(key, value string) (Attribute, error) {
	return &MediaLanguage{Language: value}, nil
}

// ParsePacketTime accepts decimal input such as "22.5" and rounds it.
func ParsePacketTime(key, value string) (Attribute, error) {
	d, err := parseRounded(value, 1<<64)
	if err != nil {
		return nil, fmt.Errorf("ptime: %w", err)
	}
	return &PacketTime{Duration: d}, nil
}

func ParseMaxPacketTime(key, value string) (Attribute, error) {
	d, err := parseRounded(value, 1<<64)
	if err != nil {
		return nil, fmt.Errorf("maxptime: %w", err)
	}
	return &MaxPacketTime{Duration: d}, nil
}

func ParseDirection(key, value string) (Attribute, error) {
	d, err := ParseMediaDirection(key)
	if err != nil {
		return nil, err
	}
	return &Direction{Direction: d}, nil
}

func ParseOrientationAttr(key, value string) (Attribute, error) {
	o, err := ParseOrientation(value)
	if err != nil {
		return nil, err
	}
	return &OrientationAttr{Orientation: o}, nil
}

func ParseFramerate(key, value string) (Attribute, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, fmt.Errorf("%w: invalid framerate '%s'", ErrInvalidValue, value)
	}
	return &Framerate{Framerate: f}, nil
}

// ParseQuality accepts decimal input and rounds it to the nearest integer.
func ParseQuality(key, value string) (Attribute, error) {
	q, err := parseRounded(value, 1<<32)
	if err != nil {
		return nil, fmt.Errorf("quality: %w", err)
	}
	return &Quality{Quality: uint32(q)}, nil
}

// parseRounded reads a non-negative decimal, rounds half up and requires the
// result to be below limit.
func parseRounded(value string, limit float64) (uint64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: '%s' is not a decimal number", ErrInvalidNumber, value)
	}
	f = math.Floor(f + 0.5)
	if f < 0 || f >= limit {
		return 0, fmt.Errorf("%w: '%s'", ErrOutOfRange, value)
	}
	return uint64(f), nil
}

// ParseFormatParams decodes "<pt> <params>"; params may be empty.
func ParseFormatParams(key, value string) (Attribute, error) {
	tokens := util.Fields(value, 2)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty fmtp", ErrInvalidValue)
	}
	pt, err := ParsePayloadType(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("fmtp: %w", err)
	}
	attr := &FormatParams{PayloadType: pt}
	if len(tokens) > 1 {
		attr.Params = tokens[1]
	}
	return attr, nil
}

// ParseRtpMap decodes "<pt> <name>/<rate>[/<channels>]". The channel count
// defaults to 1.
func ParseRtpMap(key, value string) (Attribute, error) {
	tokens := util.Fields(value, 2)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: unable to parse rtpmap '%s'", ErrInvalidValue, value)
	}
	enc := util.Split(tokens[1], "/", 3)
	if len(enc) < 2 {
		return nil, fmt.Errorf("%w: unable to parse rtpmap '%s'", ErrInvalidValue, value)
	}

	pt, err := ParsePayloadType(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("rtpmap: %w", err)
	}
	rate, err := util.ParseUint32(enc[1])
	if err != nil {
		return nil, fmt.Errorf("rtpmap clock rate: %w", err)
	}
	channels := uint32(1)
	if len(enc) > 2 {
		channels, err = util.ParseUint32(enc[2])
		if err != nil {
			return nil, fmt.Errorf("rtpmap channels: %w", err)
		}
	}

	return &RtpMap{
		PayloadType:  pt,
		EncodingName: enc[0],
		ClockRate:    rate,
		Channels:     channels,
	}, nil
}
