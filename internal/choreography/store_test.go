package choreography

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestLoadFile(t *testing.T) {
	store, err := Load(filepath.Join("testdata", "choreography.json"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 slides, got %d", store.Len())
	}

	first, ok := store.Slide(0)
	if !ok || first.Viewpoint == nil || first.Viewpoint.Camera == nil {
		t.Fatal("first slide must carry a camera viewpoint")
	}
	if first.Viewpoint.Camera.Position.Z != 12000 {
		t.Errorf("unexpected camera altitude %v", first.Viewpoint.Camera.Position.Z)
	}
	if first.TimeSlider == nil || first.TimeSlider.Unit != "days" {
		t.Error("first slide must carry a daily time slider")
	}
	if !first.LayerVisibility["route"] || first.LayerVisibility["terrain"] {
		t.Errorf("unexpected layer visibility %v", first.LayerVisibility)
	}

	second, _ := store.Slide(1)
	if second.Viewpoint == nil || second.Viewpoint.Rotation == nil || *second.Viewpoint.Rotation != 45 {
		t.Error("second slide must carry a flat viewpoint rotation")
	}
	if second.Environment == nil || second.Environment.Weather == nil {
		t.Fatal("second slide must carry weather")
	}
	if cover, ok := second.Environment.Weather.CloudCover.(float64); !ok || cover != 0.4 {
		t.Errorf("unexpected cloud cover %v", second.Environment.Weather.CloudCover)
	}
	if second.Environment.Weather.Precipitation != "0.1" {
		t.Errorf("numeric-string precipitation must load verbatim, got %v", second.Environment.Weather.Precipitation)
	}
	if second.TrackRenderer == nil {
		t.Error("second slide must carry a raw track renderer definition")
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "no-such-file.json"), zaptest.NewLogger(t))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadError must wrap the underlying cause, got %v", loadErr.Err)
	}
}

func TestLoadMalformedDocumentIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, zaptest.NewLogger(t))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestPair(t *testing.T) {
	store, err := Load(filepath.Join("testdata", "choreography.json"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cur, next, ok := store.Pair(0)
	if !ok || cur == nil || next == nil {
		t.Fatal("interior pair must yield both slides")
	}

	cur, next, ok = store.Pair(store.Len() - 1)
	if !ok || cur == nil {
		t.Fatal("last slide must still yield a pair")
	}
	if next != nil {
		t.Error("the last slide has no successor")
	}

	if _, _, ok := store.Pair(-1); ok {
		t.Error("negative index must not yield a pair")
	}
	if _, _, ok := store.Pair(store.Len()); ok {
		t.Error("index past the end must not yield a pair")
	}
}
