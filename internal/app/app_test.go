package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/motion"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/sim"
	"github.com/zzzbluecode/Rocket-Pet-App/internal/target"
)

type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

type fakeDriver struct{ ev *events }

func (d *fakeDriver) Stop() bool {
	d.ev.add("driver.stop")
	return true
}

type fakeMonitor struct {
	ev       *events
	startErr error
}

func (m *fakeMonitor) Start(ctx context.Context) error {
	m.ev.add("monitor.start")
	return m.startErr
}

func (m *fakeMonitor) Stop() error {
	m.ev.add("monitor.stop")
	return nil
}

type fakeFrontend struct {
	ev      *events
	started chan struct{}
	closed  chan struct{}
	once    sync.Once
	runErr  error
	dismiss func()
}

func newFakeFrontend(ev *events) *fakeFrontend {
	return &fakeFrontend{ev: ev, started: make(chan struct{}), closed: make(chan struct{})}
}

func (f *fakeFrontend) OnDismiss(fn func()) { f.dismiss = fn }

func (f *fakeFrontend) Run(ctx context.Context) error {
	close(f.started)
	if f.runErr != nil {
		return f.runErr
	}
	<-f.closed
	return nil
}

func (f *fakeFrontend) Close() error {
	f.ev.add("frontend.close")
	f.once.Do(func() { close(f.closed) })
	return nil
}

type tickCounter struct{ n atomic.Uint64 }

func (c *tickCounter) OnTick(tick uint64, s motion.State, offset motion.Vec2) { c.n.Store(tick) }

var _ = Describe("App", func() {
	var (
		ev      *events
		monitor *fakeMonitor
		front   *fakeFrontend
		a       *App
	)

	BeforeEach(func() {
		ev = &events{}
		monitor = &fakeMonitor{ev: ev}
		front = newFakeFrontend(ev)
		a = New(&fakeDriver{ev: ev}, front, nil, WithMonitor(monitor), WithSignals(syscall.SIGUSR1))
	})

	runAsync := func(ctx context.Context) <-chan error {
		errc := make(chan error, 1)
		go func() { errc <- a.Run(ctx) }()
		Eventually(front.started).Should(BeClosed())
		return errc
	}

	It("registers its shutdown as the frontend's dismiss gesture", func() {
		Expect(front.dismiss).NotTo(BeNil())
	})

	It("shuts down monitor, driver and frontend in that order", func() {
		a.Shutdown()
		Expect(ev.list()).To(Equal([]string{"monitor.stop", "driver.stop", "frontend.close"}))
		Expect(a.Done()).To(BeClosed())
	})

	It("shuts down only once", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a.Shutdown()
			}()
		}
		wg.Wait()
		Expect(ev.list()).To(HaveLen(3))
	})

	It("exits when the rocket is dismissed", func() {
		errc := runAsync(context.Background())
		front.dismiss()

		Eventually(errc).Should(Receive(BeNil()))
		Expect(a.Done()).To(BeClosed())
		Expect(ev.list()).To(Equal([]string{"monitor.start", "monitor.stop", "driver.stop", "frontend.close"}))
	})

	It("exits when the parent context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		errc := runAsync(ctx)
		cancel()

		Eventually(errc).Should(Receive(BeNil()))
		Expect(a.Done()).To(BeClosed())
	})

	It("exits on a termination signal", func() {
		errc := runAsync(context.Background())
		Expect(syscall.Kill(os.Getpid(), syscall.SIGUSR1)).To(Succeed())

		Eventually(errc).Should(Receive(BeNil()))
		Expect(ev.list()).To(ContainElement("driver.stop"))
	})

	It("reports a frontend failure after shutting down", func() {
		front.runErr = errors.New("no display")
		Expect(a.Run(context.Background())).To(MatchError("no display"))
		Expect(a.Done()).To(BeClosed())
	})

	It("keeps running when the monitor cannot start", func() {
		monitor.startErr = errors.New("proc unavailable")
		errc := runAsync(context.Background())
		a.Shutdown()

		Eventually(errc).Should(Receive(BeNil()))
	})
})

var _ = Describe("Headless", func() {
	newDriver := func() *sim.Driver {
		p := config.DefaultConfig().Physics
		src := &target.Fixed{Point: motion.Vec2{X: 500, Y: 0}}
		return sim.NewDriver(sim.NewModel(p), src, motion.NewState(motion.Vec2{}))
	}

	It("stops after the tick limit", func() {
		d := newDriver()
		h := NewHeadless(d, time.Millisecond, 25, 10, nil)

		Expect(h.Run(context.Background())).To(Succeed())
		Expect(d.Ticks()).To(BeEquivalentTo(25))
		Expect(d.Status()).To(Equal(sim.StatusStopped))
		Expect(d.State().Speed).To(BeNumerically(">", 0))
	})

	It("treats cancellation as a clean exit", func() {
		d := newDriver()
		h := NewHeadless(d, time.Millisecond, 0, 0, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		Expect(h.Run(ctx)).To(Or(Succeed(), MatchError(context.DeadlineExceeded)))
		Expect(d.Status()).To(Equal(sim.StatusStopped))
	})

	It("runs under the app lifecycle", func() {
		d := newDriver()
		counter := &tickCounter{}
		d.AddObserver(counter)
		h := NewHeadless(d, time.Millisecond, 0, 0, nil)
		a := New(d, h, nil, WithSignals(syscall.SIGUSR2))

		errc := make(chan error, 1)
		go func() { errc <- a.Run(context.Background()) }()
		Eventually(counter.n.Load).Should(BeNumerically(">=", 5))
		a.Shutdown()

		Eventually(errc).Should(Receive(BeNil()))
		Expect(d.Status()).To(Equal(sim.StatusStopped))
	})
})
