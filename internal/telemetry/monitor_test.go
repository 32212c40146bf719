package telemetry

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type fakeSampler struct {
	calls atomic.Int32
	err   error
	block chan struct{}
}

func (f *fakeSampler) Sample(ctx context.Context) (Sample, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return Sample{}, f.err
	}
	return Sample{RSS: 64 * 1024 * 1024, CPUPercent: 1.5}, nil
}

var _ = Describe("Sample", func() {
	It("formats a human readable line", func() {
		s := Sample{RSS: 23*1024*1024 + 430000, CPUPercent: 1.2}
		Expect(s.String()).To(Equal("Memory: 23.41 MB | CPU: 1.20%"))
	})
})

var _ = Describe("Monitor", func() {
	var (
		sampler *fakeSampler
		monitor *Monitor
		seen    atomic.Int32
	)

	BeforeEach(func() {
		sampler = &fakeSampler{}
		seen.Store(0)
		monitor = NewMonitor(sampler, 5*time.Millisecond, zap.NewNop())
		monitor.OnSample(func(Sample) { seen.Add(1) })
	})

	It("samples once per interval and reports", func() {
		Expect(monitor.Start(context.Background())).To(Succeed())
		DeferCleanup(monitor.Stop)

		Eventually(seen.Load).Should(BeNumerically(">=", 3))
	})

	It("refuses a second start", func() {
		Expect(monitor.Start(context.Background())).To(Succeed())
		DeferCleanup(monitor.Stop)

		Expect(monitor.Start(context.Background())).To(MatchError(ErrAlreadyStarted))
	})

	It("rejects a non-positive interval", func() {
		m := NewMonitor(sampler, 0, nil)
		Expect(m.Start(context.Background())).NotTo(Succeed())
	})

	It("stops cleanly and stays stopped", func() {
		Expect(monitor.Start(context.Background())).To(Succeed())
		Eventually(seen.Load).Should(BeNumerically(">=", 1))

		Expect(monitor.Stop()).To(Succeed())
		after := sampler.calls.Load()
		Consistently(sampler.calls.Load, 30*time.Millisecond).Should(Equal(after))
	})

	It("tolerates Stop before Start and repeated Stop", func() {
		Expect(monitor.Stop()).To(Succeed())
		Expect(monitor.Start(context.Background())).To(Succeed())
		Expect(monitor.Stop()).To(Succeed())
		Expect(monitor.Stop()).To(Succeed())
	})

	It("exits when the parent context ends", func() {
		ctx, cancel := context.WithCancel(context.Background())
		Expect(monitor.Start(ctx)).To(Succeed())
		cancel()

		Eventually(func() bool {
			select {
			case <-monitor.done:
				return true
			default:
				return false
			}
		}).Should(BeTrue())
	})

	It("keeps sampling after a failed sample", func() {
		sampler.err = errors.New("proc unavailable")
		Expect(monitor.Start(context.Background())).To(Succeed())
		DeferCleanup(monitor.Stop)

		Eventually(sampler.calls.Load).Should(BeNumerically(">=", 3))
		Expect(seen.Load()).To(BeZero())
	})

	It("bounds the wait when the sampler hangs", func() {
		sampler.block = make(chan struct{})
		DeferCleanup(func() { close(sampler.block) })
		Expect(monitor.Start(context.Background())).To(Succeed())
		Eventually(sampler.calls.Load).Should(BeNumerically(">=", 1))

		start := time.Now()
		Expect(monitor.Stop()).To(MatchError(ErrStopTimeout))
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
	})
})

var _ = Describe("ProcessSampler", func() {
	It("reads this process", func() {
		p, err := NewProcessSampler()
		Expect(err).NotTo(HaveOccurred())

		s, err := p.Sample(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.RSS).To(BeNumerically(">", 0))
		Expect(s.CPUPercent).To(BeNumerically(">=", 0))
	})
})
