package queue_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	queue "github.com/hrkey/refcore/internal/adapters/mq/queue"
	"github.com/hrkey/refcore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func job(fp string) queue.Job {
	return queue.Job{
		Fingerprint: fp,
		Submission: &model.ReferenceSubmission{
			Summary:       "Handled the on-call rotation without a single missed page.",
			KPIRatings:    map[string]float64{"bug_resolution_time": 4},
			OwnerID:       "cand-1",
			ReferrerEmail: "lead@example.com",
		},
	}
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a new in-memory queue", t, func() {
		ctx := context.Background()

		Convey("When enqueuing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(10))
			defer func() { _ = q.Close() }()

			So(q.Enqueue(ctx, job("fp-1")), ShouldBeTrue)
			So(q.Enqueue(ctx, job("fp-2")), ShouldBeTrue)

			Convey("Then the length reflects the buffered jobs", func() {
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("Then dequeue delivers jobs in order", func() {
				ch := q.Dequeue(ctx)
				first := <-ch
				second := <-ch
				So(first.Fingerprint, ShouldEqual, "fp-1")
				So(second.Fingerprint, ShouldEqual, "fp-2")
			})
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))
			defer func() { _ = q.Close() }()

			So(q.Enqueue(ctx, job("fp-1")), ShouldBeTrue)
			So(q.Enqueue(ctx, job("fp-2")), ShouldBeTrue)

			Convey("Then further enqueues are rejected without blocking", func() {
				So(q.Enqueue(ctx, job("fp-3")), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(10))
			So(q.Enqueue(ctx, job("fp-1")), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueues are rejected", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, job("fp-2")), ShouldBeFalse)
			})

			Convey("Then buffered jobs still drain before the channel closes", func() {
				ch := q.Dequeue(ctx)
				j, ok := <-ch
				So(ok, ShouldBeTrue)
				So(j.Fingerprint, ShouldEqual, "fp-1")

				select {
				case _, ok := <-ch:
					So(ok, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close")
				}
			})

			Convey("Then closing twice reports an error", func() {
				So(q.Close(), ShouldEqual, queue.ErrAlreadyClosed)
			})
		})

		Convey("When producers run concurrently", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(1000))
			defer func() { _ = q.Close() }()

			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						q.Enqueue(ctx, job(fmt.Sprintf("fp-%d-%d", g, i)))
					}
				}(g)
			}
			wg.Wait()

			Convey("Then every job is buffered exactly once", func() {
				So(q.Len(ctx), ShouldEqual, 400)
			})
		})
	})
}
