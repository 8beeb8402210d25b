package schedule_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

func singlePair(a, b space.Vec) *space.Spaces {
	return &space.Spaces{
		Dim:      len(a),
		Concepts: []space.Concept{{Name: "dog", Category: "animals"}},
		Image:    space.Points{"dog": a},
		Text:     space.Points{"dog": b},
	}
}

func generated(dim int) *space.Spaces {
	g, err := space.NewGenerator(dim, space.DefaultSeed)
	Expect(err).NotTo(HaveOccurred())
	return g.Generate()
}

var _ = Describe("Easing", func() {
	for _, name := range []string{"linear", "cubic"} {
		Context(name, func() {
			var e schedule.Easing

			BeforeEach(func() {
				var err error
				e, err = schedule.Lookup(name)
				Expect(err).NotTo(HaveOccurred())
			})

			It("maps the endpoints to themselves", func() {
				Expect(e.Apply(0)).To(Equal(0.0))
				Expect(e.Apply(1)).To(Equal(1.0))
			})

			It("is monotonic non-decreasing on [0,1]", func() {
				prev := e.Apply(0)
				for i := 1; i <= 1000; i++ {
					v := e.Apply(float64(i) / 1000)
					Expect(v).To(BeNumerically(">=", prev))
					prev = v
				}
			})
		})
	}

	It("is continuous at the cubic midpoint", func() {
		c := schedule.NewCubicInOut()
		Expect(c.Apply(0.5)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(c.Apply(0.5 - 1e-9)).To(BeNumerically("~", 0.5, 1e-6))
	})

	It("rejects unknown names", func() {
		_, err := schedule.Lookup("bounce")
		Expect(err).To(HaveOccurred())
		Expect(schedule.EasingNames()).To(ConsistOf("linear", "cubic"))
	})
})

var _ = Describe("Schedule", func() {
	It("requires at least one step", func() {
		_, err := schedule.New(0, nil)
		Expect(errors.Is(err, schedule.ErrSteps)).To(BeTrue())
	})

	It("rejects steps outside [0, N]", func() {
		s, _ := schedule.New(4, nil)
		orig := singlePair(space.Vec{0, 0}, space.Vec{1, 1})

		_, err := s.Frame(orig, -1)
		Expect(errors.Is(err, schedule.ErrStepRange)).To(BeTrue())
		_, err = s.Frame(orig, 5)
		Expect(errors.Is(err, schedule.ErrStepRange)).To(BeTrue())

		var stepErr *schedule.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(5))
	})

	It("rejects mismatched spaces", func() {
		s, _ := schedule.New(4, nil)
		orig := singlePair(space.Vec{0, 0}, space.Vec{1, 1})
		delete(orig.Text, "dog")

		_, err := s.Frame(orig, 1)
		Expect(errors.Is(err, space.ErrKeyMismatch)).To(BeTrue())
	})

	Describe("the N=4 linear scenario", func() {
		var frames []schedule.Frame

		BeforeEach(func() {
			s, err := schedule.New(4, schedule.NewLinear())
			Expect(err).NotTo(HaveOccurred())
			frames, err = s.Frames(singlePair(space.Vec{0, 0}, space.Vec{1, 1}))
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces N+1 frames", func() {
			Expect(frames).To(HaveLen(5))
			Expect(frames[0].IsFirst()).To(BeTrue())
			Expect(frames[4].IsLast()).To(BeTrue())
		})

		It("starts at the originals", func() {
			Expect(frames[0].Image["dog"]).To(Equal(space.Vec{0, 0}))
			Expect(frames[0].Text["dog"]).To(Equal(space.Vec{1, 1}))
		})

		It("is a quarter of the way at t=0.25", func() {
			Expect(frames[1].Blend).To(Equal(0.25))
			Expect(frames[1].Image["dog"]).To(Equal(space.Vec{0.125, 0.125}))
			Expect(frames[1].Text["dog"]).To(Equal(space.Vec{0.875, 0.875}))
		})

		It("ends at the midpoint", func() {
			Expect(frames[4].Image["dog"]).To(Equal(space.Vec{0.5, 0.5}))
			Expect(frames[4].Text["dog"]).To(Equal(space.Vec{0.5, 0.5}))
		})
	})

	It("never shares state with the originals or other frames", func() {
		orig := singlePair(space.Vec{0, 0}, space.Vec{1, 1})
		s, err := schedule.New(2, schedule.NewLinear())
		Expect(err).NotTo(HaveOccurred())
		frames, err := s.Frames(orig)
		Expect(err).NotTo(HaveOccurred())

		frames[0].Concepts[0].Name = "cat"
		frames[0].Image["dog"][0] = 9

		Expect(orig.Concepts[0].Name).To(Equal("dog"))
		Expect(frames[1].Concepts[0].Name).To(Equal("dog"))
		Expect(orig.Image["dog"]).To(Equal(space.Vec{0, 0}))
	})

	for _, dim := range []int{2, 3} {
		Context("generated spaces", func() {
			var orig *space.Spaces

			BeforeEach(func() {
				orig = generated(dim)
			})

			It("reproduces the originals exactly at k=0 for every N", func() {
				for _, n := range []int{1, 2, 7, 100} {
					for _, name := range []string{"linear", "cubic"} {
						e, _ := schedule.Lookup(name)
						s, _ := schedule.New(n, e)
						f, err := s.Frame(orig, 0)
						Expect(err).NotTo(HaveOccurred())
						for _, c := range orig.Concepts {
							Expect(f.Image[c.Name].Equal(orig.Image[c.Name])).To(BeTrue())
							Expect(f.Text[c.Name].Equal(orig.Text[c.Name])).To(BeTrue())
						}
					}
				}
			})

			It("reaches the exact midpoint at k=N under the linear schedule", func() {
				for _, n := range []int{1, 3, 10, 100} {
					s, _ := schedule.New(n, schedule.NewLinear())
					f, err := s.Frame(orig, n)
					Expect(err).NotTo(HaveOccurred())
					for _, c := range orig.Concepts {
						mid := orig.Image[c.Name].Midpoint(orig.Text[c.Name])
						Expect(f.Image[c.Name].Equal(mid)).To(BeTrue())
						Expect(f.Text[c.Name].Equal(mid)).To(BeTrue())
					}
				}
			})

			It("converges to the midpoint under the cubic schedule", func() {
				s, _ := schedule.New(50, schedule.NewCubicInOut())
				f, _ := s.Frame(orig, 50)
				for _, c := range orig.Concepts {
					mid := orig.Image[c.Name].Midpoint(orig.Text[c.Name])
					Expect(f.Image[c.Name].Dist(mid)).To(BeNumerically("<", 1e-12))
					Expect(f.Text[c.Name].Dist(mid)).To(BeNumerically("<", 1e-12))
				}
			})

			It("never increases a pair's distance", func() {
				s, _ := schedule.New(37, schedule.NewLinear())
				frames, err := s.Frames(orig)
				Expect(err).NotTo(HaveOccurred())
				for _, c := range orig.Concepts {
					prev := frames[0].PairDistance(c.Name)
					for _, f := range frames[1:] {
						d := f.PairDistance(c.Name)
						Expect(d).To(BeNumerically("<=", prev+1e-12))
						prev = d
					}
				}
			})

			It("does not mutate the originals", func() {
				before := orig.Clone()
				s, _ := schedule.New(10, schedule.NewLinear())
				_, err := s.Frames(orig)
				Expect(err).NotTo(HaveOccurred())
				for _, c := range orig.Concepts {
					Expect(orig.Image[c.Name].Equal(before.Image[c.Name])).To(BeTrue())
					Expect(orig.Text[c.Name].Equal(before.Text[c.Name])).To(BeTrue())
				}
			})
		})
	}

	It("shifts every target by the lift", func() {
		lift := space.Vec{0, 0.1}
		s, _ := schedule.New(2, schedule.NewLinear(), schedule.WithLift(lift))
		f, _ := s.Frame(singlePair(space.Vec{0, 0}, space.Vec{1, 1}), 2)
		Expect(f.Image["dog"]).To(Equal(space.Vec{0.5, 0.6}))
		Expect(f.Text["dog"]).To(Equal(space.Vec{0.5, 0.6}))
	})
})
