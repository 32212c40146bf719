package sim

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/metrics"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
)

type callLog struct {
	calls []string
}

type recSteering struct{ log *callLog }

func (r recSteering) UpdateAngle(angle, dx, dy float64) float64 {
	r.log.calls = append(r.log.calls, "steer")
	return angle + 1
}

type recSpeed struct{ log *callLog }

func (r recSpeed) UpdateSpeed(speed, dx, dy float64) float64 {
	r.log.calls = append(r.log.calls, "speed")
	return speed + 1
}

type recIntegrator struct {
	log       *callLog
	seenAngle float64
}

func (r *recIntegrator) UpdatePosition(pos motion.Vec2, angle, speed, dx, dy float64) motion.Vec2 {
	r.log.calls = append(r.log.calls, "position")
	r.seenAngle = angle
	return pos.Add(motion.Vec2{X: speed})
}

var _ = Describe("Driver", func() {
	var (
		target   motion.Vec2
		source   motion.TargetSource
		rendered []motion.State
		driver   *Driver
	)

	BeforeEach(func() {
		target = motion.Vec2{X: 1000, Y: 0}
		source = motion.TargetFunc(func() motion.Vec2 { return target })
		rendered = nil
		driver = NewDriver(NewModel(config.DefaultConfig().Physics), source, motion.NewState(motion.Vec2{}))
		driver.AddSink(motion.SinkFunc(func(s motion.State) { rendered = append(rendered, s) }))
	})

	It("starts running", func() {
		Expect(driver.Status()).To(Equal(StatusRunning))
		Expect(driver.Status().String()).To(Equal("running"))
	})

	It("publishes the post-tick state once per tick", func() {
		Expect(driver.Tick()).To(BeTrue())
		Expect(driver.Tick()).To(BeTrue())

		Expect(rendered).To(HaveLen(2))
		Expect(rendered[1]).To(Equal(driver.State()))
		Expect(driver.Ticks()).To(Equal(uint64(2)))
		Expect(rendered[1].Speed).To(BeNumerically("~", 0.4, 1e-12))
	})

	It("runs steering, speed and position in that order", func() {
		log := &callLog{}
		integ := &recIntegrator{log: log}
		d := NewDriver(New(recSteering{log}, recSpeed{log}, integ), source, motion.State{})

		d.Tick()

		Expect(log.calls).To(Equal([]string{"steer", "speed", "position"}))
		Expect(integ.seenAngle).To(Equal(1.0))
		Expect(d.State().Position.X).To(Equal(1.0))
	})

	It("samples the target fresh every tick", func() {
		driver.Tick()
		target = motion.Vec2{X: 0, Y: 1000}
		driver.Tick()

		Expect(driver.State().Angle).To(BeNumerically("<", 0))
	})

	It("feeds metrics and observers", func() {
		peak := metrics.NewPeakSpeed()
		rec := NewRecorder(0)
		driver.AddMetric(peak)
		driver.AddObserver(rec)

		Expect(driver.RunTicks(10)).To(Equal(10))

		Expect(rec.Len()).To(Equal(10))
		Expect(rec.Distances[0]).To(BeNumerically("~", 1000, 1e-9))
		Expect(driver.Metrics()).To(HaveKeyWithValue("peak_speed", BeNumerically("~", 2.0, 1e-9)))
	})

	Describe("Stop", func() {
		It("is one-shot", func() {
			Expect(driver.Stop()).To(BeTrue())
			Expect(driver.Stop()).To(BeFalse())
			Expect(driver.Status()).To(Equal(StatusStopped))
		})

		It("turns pending ticks into no-ops", func() {
			driver.Tick()
			before := driver.State()
			driver.Stop()

			Expect(driver.Tick()).To(BeFalse())
			Expect(driver.State()).To(Equal(before))
			Expect(rendered).To(HaveLen(1))
			Expect(driver.RunTicks(5)).To(Equal(0))
		})

		It("lets a tick that requested the stop finish publishing", func() {
			seen := 0
			driver.AddSink(motion.SinkFunc(func(s motion.State) {
				seen++
				driver.Stop()
			}))

			Expect(driver.RunTicks(10)).To(Equal(1))
			Expect(seen).To(Equal(1))
			Expect(rendered).To(HaveLen(1))
		})
	})

	Describe("Run", func() {
		It("rejects a non-positive interval", func() {
			Expect(driver.Run(context.Background(), 0)).To(HaveOccurred())
			Expect(driver.Run(context.Background(), -time.Millisecond)).To(HaveOccurred())
		})

		It("ticks until stopped", func() {
			driver.AddSink(motion.SinkFunc(func(motion.State) {
				if driver.Ticks() == 5 {
					driver.Stop()
				}
			}))

			Expect(driver.Run(context.Background(), time.Millisecond)).To(Succeed())
			Expect(driver.Ticks()).To(Equal(uint64(5)))
		})

		It("stops when the context ends", func() {
			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- driver.Run(ctx, time.Millisecond) }()

			cancel()

			Eventually(errCh).Should(Receive(MatchError(context.Canceled)))
			Expect(driver.Status()).To(Equal(StatusStopped))
		})

		It("exits after a stop from another goroutine", func() {
			errCh := make(chan error, 1)
			d := NewDriver(NewModel(config.DefaultConfig().Physics), source, motion.State{})
			go func() { errCh <- d.Run(context.Background(), time.Millisecond) }()

			d.Stop()

			Eventually(errCh).Should(Receive(BeNil()))
		})
	})
})
