package sink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumentone/midilight/sdk/contracts"
)

func TestHomeAssistantApply(t *testing.T) {
	var got turnOnRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHomeAssistant(srv.URL, "light.studio", "secret")
	state := contracts.LightState{
		Hue:        0, // pure red at full saturation, half lightness
		Saturation: 1,
		Lightness:  0.5,
		Kelvin:     5750,
		Transition: 1500 * time.Millisecond,
	}
	if err := s.Apply(context.Background(), state); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if path != "/api/services/light/turn_on" {
		t.Errorf("path = %q", path)
	}
	if auth != "Bearer secret" {
		t.Errorf("authorization = %q", auth)
	}
	if got.EntityID != "light.studio" {
		t.Errorf("entity_id = %q", got.EntityID)
	}
	if got.RGBColor != [3]int{255, 0, 0} {
		t.Errorf("rgb_color = %v, want pure red", got.RGBColor)
	}
	if got.Transition != 1.5 {
		t.Errorf("transition = %v, want 1.5s", got.Transition)
	}
}

func TestHomeAssistantApplyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHomeAssistant(srv.URL, "light.studio", "secret")
	err := s.Apply(context.Background(), contracts.LightState{})
	if !errors.Is(err, ErrSinkUnavailable) {
		t.Fatalf("error = %v, want ErrSinkUnavailable", err)
	}

	srv.Close()
	err = s.Apply(context.Background(), contracts.LightState{})
	if !errors.Is(err, ErrSinkUnavailable) {
		t.Fatalf("error after close = %v, want ErrSinkUnavailable", err)
	}
}
