package breaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidpool/vidpool/endpoint"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTracker(t *testing.T) {
	Convey("Given a tracker with a two minute cool-down", t, func() {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		tracker := New(2*time.Minute, WithClock(clock.Now))

		omada := endpoint.Endpoint{Name: "omada", BaseURL: "https://omada", Capability: endpoint.Stream}
		mirror := endpoint.Endpoint{Name: "mirror", BaseURL: "https://mirror", Capability: endpoint.Stream}

		Convey("An endpoint without a record should be eligible", func() {
			So(tracker.Eligible(omada), ShouldBeTrue)
		})

		Convey("When a failure is recorded", func() {
			tracker.RecordFailure(omada, errors.New("http 500"))

			Convey("It should be ineligible inside the window", func() {
				clock.Advance(119 * time.Second)
				So(tracker.Eligible(omada), ShouldBeFalse)
				So(tracker.Eligible(mirror), ShouldBeTrue)
			})

			Convey("It should stay ineligible when its age equals the window exactly", func() {
				clock.Advance(2 * time.Minute)
				So(tracker.Eligible(omada), ShouldBeFalse)
				So(tracker.Records(), ShouldHaveLength, 1)
			})

			Convey("It should become eligible once the window elapses, without a reset", func() {
				clock.Advance(2*time.Minute + time.Nanosecond)
				So(tracker.Eligible(omada), ShouldBeTrue)
				So(tracker.Len(), ShouldEqual, 0)
			})

			Convey("A second failure should restart the window", func() {
				clock.Advance(90 * time.Second)
				tracker.RecordFailure(omada, nil)
				clock.Advance(90 * time.Second)
				So(tracker.Eligible(omada), ShouldBeFalse)
			})

			Convey("Records should expose the failure", func() {
				records := tracker.Records()
				So(records, ShouldHaveLength, 1)
				So(records[0].Name, ShouldEqual, "omada")
				So(records[0].Cause, ShouldEqual, "http 500")
				So(records[0].Until.Sub(records[0].FailedAt), ShouldEqual, 2*time.Minute)
			})

			Convey("Reset should clear everything", func() {
				tracker.RecordFailure(mirror, nil)
				tracker.Reset()
				So(tracker.Eligible(omada), ShouldBeTrue)
				So(tracker.Eligible(mirror), ShouldBeTrue)
			})

			Convey("Forget should clear only the given endpoints", func() {
				tracker.RecordFailure(mirror, nil)
				tracker.Forget(omada)
				So(tracker.Eligible(omada), ShouldBeTrue)
				So(tracker.Eligible(mirror), ShouldBeFalse)
			})
		})

		Convey("Capabilities of the same service should be tracked independently", func() {
			comments := omada
			comments.Capability = endpoint.Comments
			tracker.RecordFailure(omada, nil)
			So(tracker.Eligible(comments), ShouldBeTrue)
		})
	})

	Convey("Given a tracker with jitter", t, func() {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		tracker := New(time.Minute, WithClock(clock.Now), WithJitter(30*time.Second, 1))
		e := endpoint.Endpoint{BaseURL: "https://a", Capability: endpoint.Search}

		tracker.RecordFailure(e, nil)
		window := tracker.Records()[0].Until.Sub(clock.Now())

		So(window, ShouldBeGreaterThanOrEqualTo, time.Minute)
		So(window, ShouldBeLessThan, 90*time.Second)
	})

	Convey("Concurrent upserts should not race", t, func() {
		tracker := New(time.Minute)
		e := endpoint.Endpoint{BaseURL: "https://a", Capability: endpoint.Search}

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() { defer wg.Done(); tracker.RecordFailure(e, nil) }()
			go func() { defer wg.Done(); _ = tracker.Eligible(e) }()
		}
		wg.Wait()

		So(tracker.Len(), ShouldEqual, 1)
	})
}
