package choreography

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LoadError is fatal: without keyframes there is no degraded playback mode,
// so initialization must abort.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load choreography '%s': %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store holds the ordered, read-only slide list.
type Store struct {
	slides []Slide
}

// Load fetches and parses a choreography document (a JSON array of slides)
// from a local path or an http(s) URL.
func Load(path string, log *zap.Logger) (*Store, error) {
	data, err := fetch(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var slides []Slide
	if err := json.Unmarshal(data, &slides); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	s := &Store{slides: slides}
	s.validate(log)
	return s, nil
}

func fetch(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(path)
}

// validate reports structural problems that do not prevent playback. Slides
// with unparseable time instants still load; the playback side skips the
// affected property per tick.
func (s *Store) validate(log *zap.Logger) {
	if log == nil {
		return
	}
	for i, sl := range s.slides {
		if ts := sl.TimeSlider; ts != nil {
			if _, err := ParseInstant(ts.Start); err != nil {
				log.Warn("Slide has unparseable time slider start", zap.Int("slide", i), zap.String("start", ts.Start))
			}
			if _, err := ParseInstant(ts.End); err != nil {
				log.Warn("Slide has unparseable time slider end", zap.Int("slide", i), zap.String("end", ts.End))
			}
			if ts.Unit != "" {
				if _, ok := StepMillis(1, ts.Unit); !ok {
					log.Warn("Slide has unknown time slider unit", zap.Int("slide", i), zap.String("unit", ts.Unit))
				}
			}
		}
	}
}

// Len returns the number of slides.
func (s *Store) Len() int { return len(s.slides) }

// Slide returns the slide at index i.
func (s *Store) Slide(i int) (*Slide, bool) {
	if i < 0 || i >= len(s.slides) {
		return nil, false
	}
	return &s.slides[i], true
}

// Pair returns the slide at i and its successor. next is nil for the last
// slide; interpolation then degenerates to the current slide's state.
func (s *Store) Pair(i int) (cur, next *Slide, ok bool) {
	cur, ok = s.Slide(i)
	if !ok {
		return nil, nil, false
	}
	next, _ = s.Slide(i + 1)
	return cur, next, true
}
