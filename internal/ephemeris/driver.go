package ephemeris

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Faultbox/global-clock/internal/globe"
)

// Frame is everything a renderer needs for one frame.
type Frame struct {
	// Local is the frame instant in the display time zone.
	Local time.Time
	// Params carries the rotation and tilt for the frame on top of the
	// configured layout.
	Params globe.Parameters
}

// Driver turns clock readings into frames. It keeps no state between frames
// beyond its configuration, so there is nothing to drift.
type Driver struct {
	clock    clockwork.Clock
	layout   globe.Parameters
	tilt     TiltMode
	location *time.Location
}

// NewDriver creates a driver. layout supplies the transform, latitude range
// and deflection; its rotation and tilt are ignored. A nil clock uses the
// real clock and a nil location uses time.Local.
func NewDriver(clock clockwork.Clock, layout globe.Parameters, tilt TiltMode, location *time.Location) *Driver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &Driver{
		clock:    clock,
		layout:   layout,
		tilt:     tilt,
		location: location,
	}
}

// Clock returns the driver's time source.
func (d *Driver) Clock() clockwork.Clock {
	return d.clock
}

// Frame reads the clock and derives the frame parameters.
func (d *Driver) Frame() Frame {
	return d.FrameAt(d.clock.Now())
}

// FrameAt derives the frame parameters for instant t.
func (d *Driver) FrameAt(t time.Time) Frame {
	p := d.layout
	p.Rotation = Rotation(t)
	p.AxialTilt = AxialTilt(t, d.tilt)
	return Frame{
		Local:  t.In(d.location),
		Params: p,
	}
}
