// Package h264 decodes the H264 profile-level-id carried in codec fmtp lines
// into human readable profile and level names.
package h264

import (
	"math"
	"strconv"
	"strings"
)

const (
	ProfileConstrainedBaseline byte = 1
	ProfileBaseline            byte = 2
	ProfileMain                byte = 3
	ProfileConstrainedHigh     byte = 4
	ProfileHigh                byte = 5

	// All values are equal to ten times the level number, except level 1b which is
	// special.
	Level1_b byte = 0
	Level1   byte = 10
	Level1_1 byte = 11
	Level1_2 byte = 12
	Level1_3 byte = 13
	Level2   byte = 20
	Level2_1 byte = 21
	Level2_2 byte = 22
	Level3   byte = 30
	Level3_1 byte = 31
	Level3_2 byte = 32
	Level4   byte = 40
	Level4_1 byte = 41
	Level4_2 byte = 42
	Level5   byte = 50
	Level5_1 byte = 51
	Level5_2 byte = 52
)

// ProfileLevelIdKey is the fmtp parameter holding the profile-level-id.
const ProfileLevelIdKey = "profile-level-id"

type ProfileLevelId struct {
	Profile byte
	Level   byte
}

// DefaultProfileLevelId is assumed when an fmtp line carries no
// profile-level-id. RFC 6184 says Baseline level 1, libwebrtc uses
// Constrained Baseline 3.1 for compatibility and browsers report the same.
var DefaultProfileLevelId = ProfileLevelId{
	Profile: ProfileConstrainedBaseline,
	Level:   Level3_1,
}

var profileNames = map[byte]string{
	ProfileConstrainedBaseline: "Constrained Baseline",
	ProfileBaseline:            "Baseline",
	ProfileMain:                "Main",
	ProfileConstrainedHigh:     "Constrained High",
	ProfileHigh:                "High",
}

// ProfileName returns the display name of profile, or "" if unknown.
func ProfileName(profile byte) string {
	return profileNames[profile]
}

// LevelName renders level as "1b", "3", "3.1" and so on.
func LevelName(level byte) string {
	if level == Level1_b {
		return "1b"
	}
	major, minor := level/10, level%10
	if minor == 0 {
		return strconv.Itoa(int(major))
	}
	return strconv.Itoa(int(major)) + "." + strconv.Itoa(int(minor))
}

// Describe returns e.g. "Constrained Baseline 3.1".
func (p ProfileLevelId) Describe() string {
	name := ProfileName(p.Profile)
	if name == "" {
		return ""
	}
	return name + " " + LevelName(p.Level)
}

// For level_idc=11 and profile_idc=0x42, 0x4D, or 0x58, the constraint set3
// flag specifies if level 1b or level 1.1 is used.
const constraintSet3Flag byte = 0x10

// bitPattern matches bit patterns such as "x1xx0000" where "x" is allowed to
// be either 0 or 1.
type bitPattern struct {
	mask        byte
	maskedValue byte
}

func newBitPattern(str string) bitPattern {
	return bitPattern{
		mask:        math.MaxUint8 - byteMaskString('x', str),
		maskedValue: byteMaskString('1', str),
	}
}

func (b bitPattern) isMatch(value byte) bool {
	return b.maskedValue == (value & b.mask)
}

type profilePattern struct {
	profileIdc byte
	profileIop bitPattern
	profile    byte
}

// From https://tools.ietf.org/html/rfc6184#section-8.1.
var profilePatterns = []profilePattern{
	{0x42, newBitPattern("x1xx0000"), ProfileConstrainedBaseline},
	{0x4D, newBitPattern("1xxx0000"), ProfileConstrainedBaseline},
	{0x58, newBitPattern("11xx0000"), ProfileConstrainedBaseline},
	{0x42, newBitPattern("x0xx0000"), ProfileBaseline},
	{0x58, newBitPattern("10xx0000"), ProfileBaseline},
	{0x4D, newBitPattern("0x0x0000"), ProfileMain},
	{0x64, newBitPattern("00000000"), ProfileHigh},
	{0x64, newBitPattern("00001100"), ProfileConstrainedHigh},
}

// ParseProfileLevelId parses a profile-level-id given as 3 hex bytes. It
// returns nil if str is not a recognized H264 profile-level-id.
func ParseProfileLevelId(str string) *ProfileLevelId {
	if len(str) != 6 {
		return nil
	}
	numeric, err := strconv.ParseUint(str, 16, 32)
	if err != nil || numeric == 0 {
		return nil
	}
	levelIdc := byte(numeric & 0xFF)
	profileIop := byte(numeric >> 8 & 0xFF)
	profileIdc := byte(numeric >> 16 & 0xFF)

	var level byte

	switch levelIdc {
	case Level1_1:
		if (profileIop & constraintSet3Flag) != 0 {
			level = Level1_b
		} else {
			level = Level1_1
		}
	case Level1, Level1_2, Level1_3, Level2, Level2_1, Level2_2,
		Level3, Level3_1, Level3_2, Level4, Level4_1, Level4_2,
		Level5, Level5_1, Level5_2:
		level = levelIdc
	default:
		return nil
	}

	for _, pattern := range profilePatterns {
		if profileIdc == pattern.profileIdc && pattern.profileIop.isMatch(profileIop) {
			return &ProfileLevelId{Profile: pattern.profile, Level: level}
		}
	}

	return nil
}

// ParseFmtpLine splits an SDP fmtp parameter list such as
// "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f".
// Keys are lower-cased; parameters without "=" map to "".
func ParseFmtpLine(line string) map[string]string {
	params := make(map[string]string)

	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	return params
}

// ProfileLevelIdFromFmtp returns the profile-level-id of an fmtp line, the
// default one when the line has none, or nil when it is malformed.
func ProfileLevelIdFromFmtp(line string) *ProfileLevelId {
	str, ok := ParseFmtpLine(line)[ProfileLevelIdKey]
	if !ok || len(str) == 0 {
		p := DefaultProfileLevelId
		return &p
	}
	return ParseProfileLevelId(str)
}

// Convert a string of 8 characters into a byte where the positions containing
// character c will have their bit set. For example, c = "x", str = "x1xx0000"
// will return 0b10110000.
func byteMaskString(c byte, str string) (mask byte) {
	length := len(str)

	for i, b := range str {
		if c == byte(b) {
			mask |= 1 << uint(length-1-i)
		}
	}

	return
}
