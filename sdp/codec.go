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

// MaxPayloadType is the largest 7-bit RTP payload type.
const MaxPayloadType = 127

// Static payload types from RFC3551 section 6. Anything at or above 96 is
// dynamic and must come with an a=rtpmap.
var staticRtpMaps = map[uint8]RtpMap{
	0:  {PayloadType: 0, EncodingName: "PCMU", ClockRate: 8000},
	3:  {PayloadType: 3, EncodingName: "GSM", ClockRate: 8000},
	4:  {PayloadType: 4, EncodingName: "G723", ClockRate: 8000},
	5:  {PayloadType: 5, EncodingName: "DVI4", ClockRate: 8000},
	6:  {PayloadType: 6, EncodingName: "DVI4", ClockRate: 16000},
	7:  {PayloadType: 7, EncodingName: "LPC", ClockRate: 8000},
	8:  {PayloadType: 8, EncodingName: "PCMA", ClockRate: 8000},
	9:  {PayloadType: 9, EncodingName: "G722", ClockRate: 8000},
	10: {PayloadType: 10, EncodingName: "L16", ClockRate: 44100, Channels: 2},
	11: {PayloadType: 11, EncodingName: "L16", ClockRate: 44100},
	12: {PayloadType: 12, EncodingName: "QCELP", ClockRate: 8000},
	13: {PayloadType: 13, EncodingName: "CN", ClockRate: 8000},
	14: {PayloadType: 14, EncodingName: "MPA", ClockRate: 90000},
	15: {PayloadType: 15, EncodingName: "G728", ClockRate: 8000},
	16: {PayloadType: 16, EncodingName: "DVI4", ClockRate: 11025},
	17: {PayloadType: 17, EncodingName: "DVI4", ClockRate: 22050},
	18: {PayloadType: 18, EncodingName: "G729", ClockRate: 8000},
	25: {PayloadType: 25, EncodingName: "CelB", ClockRate: 90000},
	26: {PayloadType: 26, EncodingName: "JPEG", ClockRate: 90000},
	28: {PayloadType: 28, EncodingName: "nv", ClockRate: 90000},
	31: {PayloadType: 31, EncodingName: "H261", ClockRate: 90000},
	32: {PayloadType: 32, EncodingName: "MPV", ClockRate: 90000},
	33: {PayloadType: 33, EncodingName: "MP2T", ClockRate: 90000},
	34: {PayloadType: 34, EncodingName: "H263", ClockRate: 90000},
}

// StaticRtpMap returns a fresh copy of the well-known mapping for pt.
func StaticRtpMap(pt uint8) (*RtpMap, bool) {
	if m, ok := staticRtpMaps[pt]; ok {
		if m.Channels == 0 {
			m.Channels = 1
		}
		return &m, true
	}
	return nil, false
}

// Returns true if IANA says this payload type is dynamic.
func IsDynamicPayloadType(pt uint8) bool {
	return pt >= 96 && pt <= MaxPayloadType
}
