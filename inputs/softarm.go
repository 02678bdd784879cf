package inputs

import (
	"context"
	"time"

	"flightcontrol/pipeline"
)

// SoftArmInputController turns an external arm/disarm channel into
// SoftArmedInput messages. Sending true arms the vehicle; it is the
// software-level enable bit, distinct from the RC arm switch and the
// battery presence (spec glossary: "Soft-arm").
type SoftArmInputController struct {
	ch <-chan bool
}

// NewSoftArmInputController returns a controller reading arm/disarm
// requests from ch.
func NewSoftArmInputController(ch <-chan bool) *SoftArmInputController {
	return &SoftArmInputController{ch: ch}
}

// Delay reports that ReadOne blocks on the channel.
func (c *SoftArmInputController) Delay() (time.Duration, bool) { return 0, false }

// ReadOne blocks until an arm/disarm request arrives or the context is
// cancelled. Once the channel is closed, every call returns a disarmed
// input immediately.
func (c *SoftArmInputController) ReadOne(ctx context.Context) (pipeline.Input, error) {
	select {
	case armed, ok := <-c.ch:
		if !ok {
			return pipeline.SoftArmedInput{Armed: false, Timestamp: time.Now()}, nil
		}
		return pipeline.SoftArmedInput{Armed: armed, Timestamp: time.Now()}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
