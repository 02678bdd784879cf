package drivers

import (
	"context"
	"sync"
)

// FakeIMUBus replays a fixed sequence of samples, holding the last one once
// exhausted. Grounded on the teacher's TestView/NewTestView fake-component
// style: a minimal stand-in implementing the real interface, used by tests
// and by cmd/flightcontrold.
type FakeIMUBus struct {
	mu      sync.Mutex
	samples []IMUSample
	idx     int
}

// NewFakeIMUBus returns a fake bus that replays samples in order.
func NewFakeIMUBus(samples []IMUSample) *FakeIMUBus {
	return &FakeIMUBus{samples: samples}
}

func (f *FakeIMUBus) Read(ctx context.Context) (IMUSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.samples) == 0 {
		return IMUSample{}, nil
	}
	s := f.samples[f.idx]
	if f.idx < len(f.samples)-1 {
		f.idx++
	}
	return s, nil
}

// FakeBarometer always reports a fixed altitude/temperature.
type FakeBarometer struct {
	Sample BarometerSample
}

func (f *FakeBarometer) Read(ctx context.Context) (BarometerSample, error) {
	return f.Sample, nil
}

// FakeSBUSPort replays fixed byte chunks, one per Read call.
type FakeSBUSPort struct {
	mu     sync.Mutex
	chunks [][]byte
	idx    int
}

func NewFakeSBUSPort(chunks [][]byte) *FakeSBUSPort {
	return &FakeSBUSPort{chunks: chunks}
}

func (f *FakeSBUSPort) Read(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.chunks) {
		return nil, nil
	}
	chunk := f.chunks[f.idx]
	f.idx++
	return chunk, nil
}

// FakeLED records the last color it was asked to display.
type FakeLED struct {
	mu   sync.Mutex
	last *LEDColor
}

func (f *FakeLED) Set(color *LEDColor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = color
	return nil
}

func (f *FakeLED) Last() *LEDColor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// FakePWMChannel records the values it was asked to apply, standing in for
// a sysfs PWM channel.
type FakePWMChannel struct {
	mu       sync.Mutex
	PeriodNs uint64
	DutyNs   uint64
	Polarity Polarity
	Enabled  bool
}

func (f *FakePWMChannel) SetPeriodNs(ns uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PeriodNs = ns
	return nil
}

func (f *FakePWMChannel) SetDutyNs(ns uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DutyNs = ns
	return nil
}

func (f *FakePWMChannel) SetPolarity(p Polarity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Polarity = p
	return nil
}

func (f *FakePWMChannel) SetEnabled(enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Enabled = enabled
	return nil
}

// FakeMotorDriver records the last speed it was asked to apply.
type FakeMotorDriver struct {
	mu    sync.Mutex
	Speed float64
}

func (f *FakeMotorDriver) SetSpeed(speed float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Speed = speed
	return nil
}

// FakeADC always reports a fixed sample.
type FakeADC struct {
	Sample NavioAdcSample
}

func (f *FakeADC) Read(ctx context.Context) (NavioAdcSample, error) {
	return f.Sample, nil
}
