package tracker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"storyscroll/internal/bus"
	"storyscroll/internal/dom"
	"storyscroll/internal/geometry"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.PollInterval = 5 * time.Millisecond
	return opts
}

func startSession(t *testing.T) (*dom.FakeDocument, *dom.FakeElement, *dom.FakeElement, *bus.Channel, context.CancelFunc) {
	t.Helper()

	doc := dom.NewFakeDocument()
	p := geometry.Panel{OffsetHeight: 100, MarginTop: 10, MarginBottom: 10, PaddingBottom: 5}
	doc.SetPanels([]geometry.Panel{p, p, p})

	opts := testOptions()
	container := dom.NewFakeElement(map[string]string{"class": "story-panel-container"})
	doc.AddElement(opts.ContainerSelector, container)
	frame := dom.NewFakeElement(map[string]string{"src": "https://story.example/embed#0"})
	doc.AddElement(opts.FrameSelector, frame)

	ch := bus.New(zaptest.NewLogger(t))
	session := NewSession(doc, ch, opts, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = session.Run(ctx) }()
	t.Cleanup(cancel)

	return doc, container, frame, ch, cancel
}

func receiveMessage(t *testing.T, ch *bus.Channel) (bus.Message, bool) {
	t.Helper()
	select {
	case env := <-ch.Receive():
		msg, err := bus.Decode(env)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg, true
	case <-time.After(time.Second):
		return nil, false
	}
}

// settle gives the single session goroutine time to drain already delivered
// events, pinning cross-channel ordering for the next step.
func settle() { time.Sleep(50 * time.Millisecond) }

func TestSessionAnnouncesItself(t *testing.T) {
	_, _, _, ch, _ := startSession(t)

	msg, ok := receiveMessage(t, ch)
	if !ok {
		t.Fatal("expected init message")
	}
	init, ok := msg.(bus.Init)
	if !ok || !init.IsEmbedded {
		t.Fatalf("expected embedded init, got %#v", msg)
	}
}

func TestSessionPublishesProgressWhileDocked(t *testing.T) {
	doc, container, _, ch, _ := startSession(t)

	if _, ok := receiveMessage(t, ch); !ok { // init
		t.Fatal("expected init message")
	}

	// undocked scrolling publishes nothing
	doc.Scroll(400)
	settle()
	select {
	case env := <-ch.Receive():
		t.Fatalf("unexpected message while undocked: %s", env.Payload)
	default:
	}

	// dock at y=400 while scrolling down
	container.SetAttribute("class", "story-panel-container docked")
	settle()

	// slide 0 bounds are [400,490]; y=445 is halfway
	doc.Scroll(445)
	msg, ok := receiveMessage(t, ch)
	if !ok {
		t.Fatal("expected progress message")
	}
	p, ok := msg.(bus.Progress)
	if !ok {
		t.Fatalf("expected progress, got %#v", msg)
	}
	if p.Slide != 0 || p.Progress != "0.50" || !p.IsEmbedded {
		t.Errorf("unexpected progress payload %+v", p)
	}

	// at most one message per scroll event
	settle()
	select {
	case env := <-ch.Receive():
		t.Fatalf("expected exactly one message per scroll event, got extra: %s", env.Payload)
	default:
	}
}

func TestSessionFallbackCorrectsMissedMutation(t *testing.T) {
	doc, container, frame, ch, _ := startSession(t)

	if _, ok := receiveMessage(t, ch); !ok {
		t.Fatal("expected init message")
	}

	doc.Scroll(400)
	settle()
	container.SetAttribute("class", "docked")
	settle()

	// the frame moved to slide 1 but the mutation notification was lost;
	// the scroll handler's synchronous re-read must still pick it up
	frame.SetAttributeSilently("src", "https://story.example/embed#1")

	// slide 1 bounds are [490,610]; y=550 is halfway
	doc.Scroll(550)
	msg, ok := receiveMessage(t, ch)
	if !ok {
		t.Fatal("expected progress message")
	}
	p := msg.(bus.Progress)
	if p.Slide != 1 || p.Progress != "0.50" {
		t.Errorf("expected slide 1 at 0.50 after fallback correction, got %+v", p)
	}
}

func TestSessionIgnoresSlidesBeyondPanels(t *testing.T) {
	doc, container, frame, ch, _ := startSession(t)

	if _, ok := receiveMessage(t, ch); !ok {
		t.Fatal("expected init message")
	}

	doc.Scroll(400)
	settle()
	container.SetAttribute("class", "docked")
	settle()

	frame.SetAttribute("src", "https://story.example/embed#9")
	settle()
	doc.Scroll(500)
	settle()

	select {
	case env := <-ch.Receive():
		t.Fatalf("expected no message for out-of-range slide, got: %s", env.Payload)
	default:
	}
}

func TestSessionNoAnchorNoPublish(t *testing.T) {
	doc, container, _, ch, _ := startSession(t)

	if _, ok := receiveMessage(t, ch); !ok {
		t.Fatal("expected init message")
	}

	// dock while scrolling up: no anchor gets recorded
	doc.Scroll(500)
	settle()
	doc.Scroll(300)
	settle()
	container.SetAttribute("class", "docked")
	settle()

	doc.Scroll(350)
	settle()
	select {
	case env := <-ch.Receive():
		t.Fatalf("expected no message without an anchor, got: %s", env.Payload)
	default:
	}
}
