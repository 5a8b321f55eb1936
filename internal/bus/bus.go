// Package bus is the asynchronous boundary between the scroll tracker and
// the playback controller. Publishing is fire-and-forget with no
// acknowledgment or retry: every message carries full current state, so a
// lost or stale message is superseded by the next one (last-write-wins).
package bus

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
)

// Source identifies envelopes produced by this program. Receivers must
// ignore envelopes from any other source.
const Source = "storymap-controller"

// ErrForeignSource marks envelopes that belong to somebody else.
var ErrForeignSource = errors.New("envelope from foreign source")

// Envelope is the wire format crossing the context boundary.
type Envelope struct {
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload"`
}

// Message is the typed payload union.
type Message interface {
	isMessage()
}

// Init announces the tracking session and whether the story is embedded.
type Init struct {
	IsEmbedded bool `json:"isEmbedded"`
}

func (Init) isMessage() {}

// Progress reports the active slide and normalized progress through it.
// Progress is a 2-decimal string on the wire; precision is part of the
// external protocol.
type Progress struct {
	Type       string `json:"type"`
	Slide      int    `json:"slide"`
	Progress   string `json:"progress"`
	IsEmbedded bool   `json:"isEmbedded"`
}

func (Progress) isMessage() {}

// Value parses the wire progress string back into [0,1].
func (p Progress) Value() (float64, error) {
	v, err := strconv.ParseFloat(p.Progress, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed progress %q: %w", p.Progress, err)
	}
	return v, nil
}

// FormatProgress quantizes a progress value to the wire precision.
func FormatProgress(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

// NewProgress builds a progress message for the embedded tracking path.
func NewProgress(slide int, progress float64) Progress {
	return Progress{Type: "progress", Slide: slide, Progress: FormatProgress(progress), IsEmbedded: true}
}

// Channel is a bounded in-process stand-in for the cross-context message
// port. Delivery order within the channel is preserved; the protocol does
// not rely on it.
type Channel struct {
	ch        chan Envelope
	log       *zap.Logger
	published atomic.Uint64
	dropped   atomic.Uint64
}

// New creates a channel with a small delivery buffer.
func New(log *zap.Logger) *Channel {
	return &Channel{ch: make(chan Envelope, 16), log: log}
}

// Publish sends one message without blocking. When the receiver lags behind
// the message is dropped; the next scroll event republishes current truth.
func (c *Channel) Publish(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		// only reachable with a broken Message type
		c.log.Error("Unable to encode message", zap.Error(err))
		return
	}
	env := Envelope{Source: Source, Payload: payload}
	select {
	case c.ch <- env:
		c.published.Add(1)
	default:
		c.dropped.Add(1)
	}
}

// Receive exposes the delivery side. The channel closes on Close.
func (c *Channel) Receive() <-chan Envelope { return c.ch }

// Close tears the channel down; the receiver drains and exits.
func (c *Channel) Close() { close(c.ch) }

// Stats reports publish accounting for the session report.
func (c *Channel) Stats() (published, dropped uint64) {
	return c.published.Load(), c.dropped.Load()
}

// Decode validates an envelope and returns its typed payload.
func Decode(env Envelope) (Message, error) {
	if env.Source != Source {
		return nil, ErrForeignSource
	}
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(env.Payload, &probe); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	switch probe.Type {
	case "progress":
		var p Progress
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("malformed progress payload: %w", err)
		}
		return p, nil
	case "":
		var i Init
		if err := json.Unmarshal(env.Payload, &i); err != nil {
			return nil, fmt.Errorf("malformed init payload: %w", err)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("unknown payload type %q", probe.Type)
	}
}
