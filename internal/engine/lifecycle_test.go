package engine_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavesim/internal/engine"
	"github.com/san-kum/wavesim/internal/medium"
	"github.com/san-kum/wavesim/internal/source"
	"github.com/san-kum/wavesim/internal/stencil"
)

func TestEngineLifecycle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Lifecycle Suite")
}

var _ = Describe("Engine lifecycle", func() {
	var e *engine.Engine

	BeforeEach(func() {
		m, err := medium.Uniform(medium.Grid{Rows: 31, Cols: 31, Spacing: 5.0}, 1500, 1000)
		Expect(err).NotTo(HaveOccurred())
		coef, err := stencil.New(4)
		Expect(err).NotTo(HaveOccurred())
		e, err = engine.New(m, coef, nil, 0)
		Expect(err).NotTo(HaveOccurred())
		_, err = e.AddSource(15, 15, source.NewRicker(1.0, 15.0, 0))
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts in the Ready phase with a zero wavefield", func() {
		Expect(e.Phase()).To(Equal(engine.PhaseReady))
		Expect(e.StepIndex()).To(Equal(0))
		Expect(e.RMS()).To(BeZero())
	})

	It("completes a run and reports progress", func() {
		res, err := e.Run(context.Background(), 50, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Phase()).To(Equal(engine.PhaseCompleted))
		Expect(res.StepsTaken).To(Equal(50))
		Expect(res.LastStep).To(Equal(49))
		Expect(res.Frames.Len()).To(Equal(5)) // steps 0,10,20,30,40
	})

	It("resumes a completed run, continuing time and snapshot numbering", func() {
		_, err := e.Run(context.Background(), 50, 10)
		Expect(err).NotTo(HaveOccurred())

		res, err := e.Run(context.Background(), 50, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.StepIndex()).To(Equal(100))
		Expect(res.LastStep).To(Equal(99))

		var steps []int
		for s := range res.Frames.All() {
			steps = append(steps, s)
		}
		Expect(steps).To(Equal([]int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}))
	})

	It("rejects running an uninitialized engine", func() {
		var zero engine.Engine
		_, err := zero.Run(context.Background(), 10, 1)
		Expect(err).To(MatchError(engine.ErrBadPhase))
	})

	It("rejects a non-positive step count", func() {
		_, err := e.Run(context.Background(), 0, 1)
		Expect(err).To(HaveOccurred())
	})

	It("gates the run on the stability check", func() {
		m, err := medium.Uniform(medium.Grid{Rows: 31, Cols: 31, Spacing: 5.0}, 1500, 1000)
		Expect(err).NotTo(HaveOccurred())
		coef, err := stencil.New(4)
		Expect(err).NotTo(HaveOccurred())
		bad, err := engine.New(m, coef, nil, 1.0) // far beyond the CFL limit
		Expect(err).NotTo(HaveOccurred())

		_, err = bad.Run(context.Background(), 10, 1)
		Expect(err).To(MatchError(engine.ErrUnstable))
		Expect(bad.Phase()).To(Equal(engine.PhaseReady))
	})

	It("preserves captured frames on cancellation and returns to Ready", func() {
		ctx, cancel := context.WithCancel(context.Background())

		count := 0
		e.AddObserver(observerFunc(func(step int, t float64, p []float64) {
			count++
			if count == 25 {
				cancel()
			}
		}))

		res, err := e.Run(ctx, 1000, 10)
		Expect(err).To(MatchError(context.Canceled))
		Expect(e.Phase()).To(Equal(engine.PhaseReady))
		Expect(res.StepsTaken).To(Equal(25))
		Expect(res.Frames.Len()).To(Equal(3)) // steps 0,10,20

		// A canceled engine can pick up where it left off.
		res, err = e.Run(context.Background(), 25, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.StepIndex()).To(Equal(50))
		Expect(res.Frames.Len()).To(Equal(5))
	})
})

type observerFunc func(step int, t float64, p []float64)

func (f observerFunc) OnStep(step int, t float64, p []float64) { f(step, t, p) }
