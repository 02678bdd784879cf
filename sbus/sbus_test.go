package sbus

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func allChannelsPacket() Packet {
	var p Packet
	for i := range p.Channels {
		// Distinct 11-bit values so a channel mixup shows up as a mismatch.
		p.Channels[i] = uint16(100 + i*37%2048)
	}
	p.DigitalChannels = [2]bool{true, false}
	p.FrameLost = true
	p.Failsafe = false
	return p
}

func TestRoundTripAllChannels(t *testing.T) {
	Convey("Given a packet with all 16 channels populated", t, func() {
		want := allChannelsPacket()
		wire := Encode(want)

		Convey("parsing the encoded wire bytes recovers every channel exactly", func() {
			buf := NewBuffer()
			buf.Push(wire[:])
			got, ok, err := buf.Parse()
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			for i := range want.Channels {
				So(got.Channels[i], ShouldEqual, want.Channels[i])
			}
			So(got.DigitalChannels, ShouldResemble, want.DigitalChannels)
			So(got.FrameLost, ShouldEqual, want.FrameLost)
			So(got.Failsafe, ShouldEqual, want.Failsafe)
		})
	})
}

func TestParseScansFromTailAcrossTwoPackets(t *testing.T) {
	Convey("Given a rolling buffer holding a stale packet followed by a fresh one", t, func() {
		stale := Encode(allChannelsPacket())
		fresh := allChannelsPacket()
		fresh.Channels[0] = 999
		freshWire := Encode(fresh)

		buf := NewBuffer()
		buf.Push(stale[:])
		buf.Push(freshWire[:])

		Convey("Parse returns the most recent packet", func() {
			got, ok, err := buf.Parse()
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(got.Channels[0], ShouldEqual, uint16(999))
		})
	})
}

func TestParseRejectsBadHeader(t *testing.T) {
	Convey("Given a buffer whose header byte is corrupted", t, func() {
		wire := Encode(allChannelsPacket())
		wire[0] = 0xFF

		buf := NewBuffer()
		buf.Push(wire[:])

		Convey("Parse fails with a parse error", func() {
			_, ok, err := buf.Parse()
			So(ok, ShouldBeFalse)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNormalizedChannelsClampsAndScales(t *testing.T) {
	Convey("Given raw channel values at and beyond the valid endpoints", t, func() {
		Convey("the normalized value clamps to [-1,1]", func() {
			So(normalizeChannel(0), ShouldAlmostEqual, -1)
			So(normalizeChannel(172), ShouldAlmostEqual, -1)
			So(normalizeChannel(1811), ShouldAlmostEqual, 1)
			So(normalizeChannel(5000), ShouldAlmostEqual, 1)
			mid := uint16((172 + 1811) / 2)
			So(normalizeChannel(mid), ShouldAlmostEqual, 0, 0.01)
		})
	})
}
