// Package colorspace derives single-channel planes from RGB rasters for the
// luma/chroma, hue/saturation/intensity, lightness/chroma and raw RGB models.
package colorspace

import (
	"fmt"
)

// Channel names one derived or raw channel. Identifiers are case-sensitive:
// "b" is the Lab blue-yellow axis, "B" is the raw blue plane.
type Channel string

const (
	Y  Channel = "Y"
	Cb Channel = "Cb"
	Cr Channel = "Cr"
	H  Channel = "H"
	S  Channel = "S"
	I  Channel = "I"
	R  Channel = "R"
	G  Channel = "G"
	B  Channel = "B"
	L  Channel = "L"
	A  Channel = "a"
	Bb Channel = "b"
)

// Family identifies the colour model a channel belongs to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyYCbCr
	FamilyHSI
	FamilyRGB
	FamilyLab
)

func (f Family) String() string {
	switch f {
	case FamilyYCbCr:
		return "Luma/Chroma"
	case FamilyHSI:
		return "Hue/Saturation/Intensity"
	case FamilyRGB:
		return "RGB"
	case FamilyLab:
		return "Lightness/Chroma"
	default:
		return "Unknown"
	}
}

type channelInfo struct {
	family Family
	index  int // position within the family triple
}

var channels = map[Channel]channelInfo{
	Y:  {FamilyYCbCr, 0},
	Cb: {FamilyYCbCr, 1},
	Cr: {FamilyYCbCr, 2},
	H:  {FamilyHSI, 0},
	S:  {FamilyHSI, 1},
	I:  {FamilyHSI, 2},
	R:  {FamilyRGB, 0},
	G:  {FamilyRGB, 1},
	B:  {FamilyRGB, 2},
	L:  {FamilyLab, 0},
	A:  {FamilyLab, 1},
	Bb: {FamilyLab, 2},
}

// All returns every supported channel in canonical order.
func All() []Channel {
	return []Channel{Y, Cb, Cr, H, S, I, R, G, B, L, A, Bb}
}

// UnsupportedChannelError reports a channel identifier outside the supported set.
type UnsupportedChannelError struct {
	Channel string
}

func (e *UnsupportedChannelError) Error() string {
	return fmt.Sprintf("unsupported channel %q: choose from Y, Cb, Cr, H, S, I, R, G, B, L, a, b", e.Channel)
}

// Parse validates a channel identifier.
func Parse(s string) (Channel, error) {
	c := Channel(s)
	if _, ok := channels[c]; !ok {
		return "", &UnsupportedChannelError{Channel: s}
	}
	return c, nil
}

// Valid reports whether c is a supported channel.
func (c Channel) Valid() bool {
	_, ok := channels[c]
	return ok
}

// Family returns the colour model of c, or FamilyUnknown.
func (c Channel) Family() Family {
	return channels[c].family
}

// Index returns the position of c within its family triple (0, 1 or 2).
// The result is only meaningful when c is Valid.
func (c Channel) Index() int {
	return channels[c].index
}

func (c Channel) String() string {
	return string(c)
}
