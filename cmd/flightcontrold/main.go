// Command flightcontrold is the flight controller process entrypoint: it
// loads configuration, optionally runs flat-trim calibration, then wires
// every input controller, the collector, the vehicle autopilot and
// dispatcher, the output controllers and the black-box logger into one
// errgroup and runs until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"flightcontrol/ahrs"
	"flightcontrol/blackbox"
	"flightcontrol/calibration"
	"flightcontrol/config"
	"flightcontrol/drivers"
	"flightcontrol/dsp"
	"flightcontrol/imu"
	"flightcontrol/inputs"
	"flightcontrol/outputs"
	"flightcontrol/pipeline"
	"flightcontrol/quadcopter"
	"flightcontrol/tank"
)

var (
	configPath *string
	flatTrim   *bool
	debug      *bool
	vehicle    *string
)

func init() {
	configPath = flag.String("config", "./config.json", "path to the JSON configuration file")
	flatTrim = flag.Bool("flat-trim", false, "run flat-trim calibration, persist offsets to --config, and exit")
	debug = flag.Bool("debug", false, "log at debug verbosity regardless of the configured log_level_filter")
	vehicle = flag.String("vehicle", "quadcopter", "vehicle control law to run: quadcopter or tank")
	flag.Parse()
}

// newFuser picks Madgwick when the config sets a beta gain, and otherwise
// Mahony with fixed gains (the config has no Mahony keys).
func newFuser(cfg *config.Config) ahrs.Fuser {
	if cfg.AhrsMadgwickBeta != nil {
		return ahrs.NewMadgwick(*cfg.AhrsMadgwickBeta)
	}
	const defaultMahonyKp, defaultMahonyKi = 0.5, 0.0
	return ahrs.NewMahony(defaultMahonyKp, defaultMahonyKi)
}

func imuConfig(cfg *config.Config) imu.Config {
	return imu.Config{
		CalibrationAcc: dsp.Vector3{X: cfg.CalibrationAcc[0], Y: cfg.CalibrationAcc[1], Z: cfg.CalibrationAcc[2]},
		CalibrationGyr: dsp.Vector3{X: cfg.CalibrationGyr[0], Y: cfg.CalibrationGyr[1], Z: cfg.CalibrationGyr[2]},
		GyrLowPass:     imu.LowPassSpec{F: cfg.FilterGyrLowPass.F, Q: cfg.FilterGyrLowPass.Q, Fs: cfg.FilterGyrLowPass.Fs},
		GyrABG:         imu.AlphaBetaGammaSpec{Alpha: cfg.FilterGyrABG.Alpha, Beta: cfg.FilterGyrABG.Beta, Gamma: cfg.FilterGyrABG.Gamma},
		AccLowPass:     imu.LowPassSpec{F: cfg.FilterAccLowPass.F, Q: cfg.FilterAccLowPass.Q, Fs: cfg.FilterAccLowPass.Fs},
		AccABG:         imu.AlphaBetaGammaSpec{Alpha: cfg.FilterAccABG.Alpha, Beta: cfg.FilterAccABG.Beta, Gamma: cfg.FilterAccABG.Gamma},
	}
}

// runFlatTrim drives the calibration routine against the IMU bus and
// persists the resulting offsets into the configuration file in place.
func runFlatTrim(ctx context.Context, bus drivers.IMUBus, cfg *config.Config) error {
	accOffset, gyrOffset, err := calibration.FlatTrim(ctx, bus)
	if err != nil {
		return fmt.Errorf("flat-trim: %w", err)
	}
	cfg.CalibrationAcc = [3]float64{accOffset.X, accOffset.Y, accOffset.Z}
	cfg.CalibrationGyr = [3]float64{gyrOffset.X, gyrOffset.Y, gyrOffset.Z}
	if err := config.Save(*configPath, cfg); err != nil {
		return fmt.Errorf("flat-trim: saving config: %w", err)
	}
	fmt.Printf("flat-trim complete: acc offset %+v, gyr offset %+v\n", accOffset, gyrOffset)
	return nil
}

// wireInputs starts every input controller in its own goroutine, returning
// the fanned-in channel the collector consumes from.
func wireInputs(ctx context.Context, g *errgroup.Group, done <-chan struct{}, bus drivers.IMUBus, fuser ahrs.Fuser, cfg *config.Config, sbusPort drivers.SBUSPort, adc drivers.ADC, baro drivers.Barometer, armCh <-chan bool, sink pipeline.LogSink) <-chan pipeline.Input {
	imuWorker := imu.New(bus, fuser, imuConfig(cfg), sink)
	rcController := inputs.NewRCInputController(sbusPort)
	adcController := inputs.NewADCInputController(adc)
	baroController := inputs.NewBarometerInputController(baro)
	armController := inputs.NewSoftArmInputController(armCh)

	imuCh := make(chan pipeline.Input, 4)
	rcCh := make(chan pipeline.Input, 4)
	adcCh := make(chan pipeline.Input, 4)
	baroCh := make(chan pipeline.Input, 4)
	armedCh := make(chan pipeline.Input, 4)

	g.Go(func() error { pipeline.RunInputController(ctx, imuWorker, imuCh, sink); return nil })
	g.Go(func() error { pipeline.RunInputController(ctx, rcController, rcCh, sink); return nil })
	g.Go(func() error { pipeline.RunInputController(ctx, adcController, adcCh, sink); return nil })
	g.Go(func() error { pipeline.RunInputController(ctx, baroController, baroCh, sink); return nil })
	g.Go(func() error { pipeline.RunInputController(ctx, armController, armedCh, sink); return nil })

	return pipeline.FanIn(done, imuCh, rcCh, adcCh, baroCh, armedCh)
}

// wireQuadcopter starts the collector, autopilot and dispatcher for the
// X-frame quadcopter, plus its output controllers.
func wireQuadcopter(ctx context.Context, g *errgroup.Group, in <-chan pipeline.Input, cfg *config.Config, led drivers.LED, escs [4]drivers.PWMChannel, sink pipeline.LogSink) {
	collector := pipeline.NewCollector(sink)
	frames := make(chan pipeline.InputFrame, 1)
	g.Go(func() error { pipeline.RunCollector(ctx, collector, in, frames); return nil })

	ap := quadcopter.New(quadcopter.Gains{
		PID: quadcopter.RollPitchYaw[quadcopter.PIDGains]{
			Roll:  quadcopter.PIDGains(cfg.PIDValues.Roll),
			Pitch: quadcopter.PIDGains(cfg.PIDValues.Pitch),
			Yaw:   quadcopter.PIDGains(cfg.PIDValues.Yaw),
		},
		Rates: quadcopter.RollPitchYaw[float64]{
			Roll: cfg.Rates.Roll, Pitch: cfg.Rates.Pitch, Yaw: cfg.Rates.Yaw,
		},
		Limits: quadcopter.RollPitch[float64]{Roll: cfg.Limits.Roll, Pitch: cfg.Limits.Pitch},
	}, cfg.OutputESCMinValue, sink)

	outFrames := make(chan pipeline.OutputFrame, 1)
	g.Go(func() error { pipeline.RunAutopilot(ctx, ap, frames, outFrames); return nil })

	ledCh := make(chan *drivers.LEDColor, 1)
	escChs := [4]chan float64{make(chan float64, 1), make(chan float64, 1), make(chan float64, 1), make(chan float64, 1)}
	escSendChs := [4]chan<- float64{escChs[0], escChs[1], escChs[2], escChs[3]}

	dispatcher := quadcopter.NewDispatcher(ledCh, escSendChs)
	g.Go(func() error { pipeline.RunDispatcher(ctx, dispatcher, outFrames); return nil })

	ledController := outputs.NewLEDOutputController(led)
	g.Go(func() error { pipeline.RunOutputController[*drivers.LEDColor](ctx, ledController, ledCh, sink); return nil })

	for i := 0; i < 4; i++ {
		escController := outputs.NewESCOutputController(escs[i])
		ch := escChs[i]
		g.Go(func() error { pipeline.RunOutputController[float64](ctx, escController, ch, sink); return nil })
	}
}

// wireTank starts the collector, autopilot and dispatcher for the
// differential-drive tank, plus its output controllers.
func wireTank(ctx context.Context, g *errgroup.Group, in <-chan pipeline.Input, cfg *config.Config, left, right drivers.MotorDriver, sink pipeline.LogSink) {
	collector := pipeline.NewCollector(sink)
	frames := make(chan pipeline.InputFrame, 1)
	g.Go(func() error { pipeline.RunCollector(ctx, collector, in, frames); return nil })

	ap := tank.New(cfg.PIDValues.Yaw.P, cfg.PIDValues.Yaw.I, cfg.PIDValues.Yaw.D)

	outFrames := make(chan pipeline.OutputFrame, 1)
	g.Go(func() error { pipeline.RunAutopilot(ctx, ap, frames, outFrames); return nil })

	leftCh := make(chan float64, 1)
	rightCh := make(chan float64, 1)
	dispatcher := tank.NewDispatcher(leftCh, rightCh)
	g.Go(func() error { pipeline.RunDispatcher(ctx, dispatcher, outFrames); return nil })

	leftController := outputs.NewMotorOutputController(left)
	rightController := outputs.NewMotorOutputController(right)
	g.Go(func() error { pipeline.RunOutputController[float64](ctx, leftController, leftCh, sink); return nil })
	g.Go(func() error { pipeline.RunOutputController[float64](ctx, rightController, rightCh, sink); return nil })
}

func runApp() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.LogLevelFilter = "debug"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Device drivers are out of scope (spec section 1): every fake below
	// stands in for the real SPI/I2C/serial/GPIO/sysfs bus a production
	// build would drive.
	bus := drivers.NewFakeIMUBus(nil)

	if *flatTrim {
		return runFlatTrim(ctx, bus, cfg)
	}

	logger := blackbox.New()
	sink := blackbox.NewFilteredSink(logger, mustParseLevel(cfg.LogLevelFilter))

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return logger.Run(done, blackbox.FileName(time.Now())) })

	fuser := newFuser(cfg)
	sbusPort := drivers.NewFakeSBUSPort(nil)
	adc := &drivers.FakeADC{}
	baro := &drivers.FakeBarometer{}
	armCh := make(chan bool, 1)
	armCh <- true

	in := wireInputs(gctx, g, done, bus, fuser, cfg, sbusPort, adc, baro, armCh, sink)

	switch *vehicle {
	case "tank":
		left := &drivers.FakeMotorDriver{}
		right := &drivers.FakeMotorDriver{}
		wireTank(gctx, g, in, cfg, left, right, sink)
	default:
		led := &drivers.FakeLED{}
		escs := [4]drivers.PWMChannel{&drivers.FakePWMChannel{}, &drivers.FakePWMChannel{}, &drivers.FakePWMChannel{}, &drivers.FakePWMChannel{}}
		wireQuadcopter(gctx, g, in, cfg, led, escs, sink)
	}

	<-ctx.Done()
	// Give queued messages 100ms to drain after the top-level channel closes,
	// matching the spec's no-hard-kill shutdown policy.
	time.Sleep(100 * time.Millisecond)

	return g.Wait()
}

func mustParseLevel(s string) blackbox.Level {
	level, ok := blackbox.ParseLevel(s)
	if !ok {
		return blackbox.LevelInfo
	}
	return level
}

func main() {
	if err := runApp(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
