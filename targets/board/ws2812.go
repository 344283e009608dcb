//go:build tinygo

package board

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// WS2812LED drives a single addressable RGB LED as an on/off output
type WS2812LED struct {
	dev ws2812.Device
	on  color.RGBA
	buf [1]color.RGBA
}

// NewWS2812LED configures pin as the LED data line. The LED shows on when set.
func NewWS2812LED(pin machine.Pin, on color.RGBA) *WS2812LED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &WS2812LED{
		dev: ws2812.New(pin),
		on:  on,
	}
}

func (l *WS2812LED) Set(high bool) error {
	l.buf[0] = color.RGBA{}
	if high {
		l.buf[0] = l.on
	}
	return l.dev.WriteColors(l.buf[:])
}
