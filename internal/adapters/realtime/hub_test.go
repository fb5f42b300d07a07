package realtime

import (
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/domain/score"
)

func TestHub(t *testing.T) {
	Convey("Given a hub", t, func() {
		h := NewHub()
		ctx := context.Background()
		ev := NewScoreSubmitted(score.New("bob", "run", 42, "secret", "go"))

		Convey("Subscribers receive broadcasts until they unsubscribe", func() {
			id, ch := h.Subscribe(1)
			So(h.Count(), ShouldEqual, 1)

			h.Broadcast(ctx, ev)
			received := <-ch
			So(received.Type, ShouldEqual, EventScoreSubmitted)
			So(received.Score.Name, ShouldEqual, "bob")

			h.Unsubscribe(id)
			_, ok := <-ch
			So(ok, ShouldBeFalse)
			So(h.Count(), ShouldEqual, 0)

			So(func() { h.Unsubscribe(id) }, ShouldNotPanic)
		})

		Convey("A full subscriber drops events instead of blocking", func() {
			_, ch := h.Subscribe(1)
			h.Broadcast(ctx, ev)
			h.Broadcast(ctx, ev)
			So(len(ch), ShouldEqual, 1)
		})

		Convey("Every subscriber gets its own copy", func() {
			_, a := h.Subscribe(1)
			_, b := h.Subscribe(1)
			h.Broadcast(ctx, ev)
			So((<-a).Score.TimeNS, ShouldEqual, 42)
			So((<-b).Score.TimeNS, ShouldEqual, 42)
		})
	})
}

func TestMarshalJSON(t *testing.T) {
	Convey("Events serialize without the artifact hash", t, func() {
		b := MarshalJSON(NewScoreSubmitted(score.New("alice", "run", 1, "secret", "go")))

		var out map[string]any
		So(json.Unmarshal(b, &out), ShouldBeNil)
		So(out["type"], ShouldEqual, EventScoreSubmitted)
		So(string(b), ShouldNotContainSubstring, "secret")
		So(out["score"].(map[string]any)["name"], ShouldEqual, "alice")
	})
}
