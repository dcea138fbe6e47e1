// Package sink provides ready-made LightSink implementations for common
// networked light transports.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumentone/midilight/sdk/contracts"
)

// ErrSinkUnavailable is returned when a device rejects or fails a command.
var ErrSinkUnavailable = errors.New("light sink unavailable")

// HomeAssistant drives one light entity through the Home Assistant REST API.
// The HSL color is converted to RGB before sending; color temperature is
// omitted because Home Assistant does not accept it together with an RGB
// color in the same call.
type HomeAssistant struct {
	baseURL  string
	entityID string
	token    string
	client   *http.Client
}

// NewHomeAssistant creates a sink for the given entity, e.g.
// NewHomeAssistant("http://homeassistant.local:8123", "light.studio", token).
func NewHomeAssistant(baseURL, entityID, token string) *HomeAssistant {
	return &HomeAssistant{
		baseURL:  baseURL,
		entityID: entityID,
		token:    token,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ID identifies the sink by its Home Assistant entity.
func (s *HomeAssistant) ID() string {
	return s.entityID
}

type turnOnRequest struct {
	EntityID   string  `json:"entity_id"`
	RGBColor   [3]int  `json:"rgb_color"`
	Transition float64 `json:"transition"` // seconds
}

// Apply sends the state as a light.turn_on service call.
func (s *HomeAssistant) Apply(ctx context.Context, state contracts.LightState) error {
	r, g, b := colorful.Hsl(state.Hue, state.Saturation, state.Lightness).Clamped().RGB255()
	data := turnOnRequest{
		EntityID:   s.entityID,
		RGBColor:   [3]int{int(r), int(g), int(b)},
		Transition: state.Transition.Seconds(),
	}

	body, err := json.Marshal(&data)
	if err != nil {
		return fmt.Errorf("unable to create json data: %w", err)
	}

	url := fmt.Sprintf("%s/api/services/light/turn_on", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status %s", ErrSinkUnavailable, resp.Status)
	}
	return nil
}
