package midilight

import (
	"time"

	"github.com/lumentone/midilight/internal/logger"
	"github.com/lumentone/midilight/sdk/contracts"
)

// Defaults applied when an option is not explicitly provided. The kelvin and
// transition bounds match common smart-light ranges.
const (
	defaultMinLightness  = 0.1
	defaultMaxLightness  = 1.0
	defaultMinKelvin     = 2500
	defaultMaxKelvin     = 9000
	defaultMaxTransition = 508 * time.Millisecond
	defaultSendInterval  = 50 * time.Millisecond
	defaultFailureLimit  = 5
	defaultShutdownGrace = 2 * time.Second
)

// applyDefaultOptions sets default values for EngineOptions if not explicitly
// provided, then validates the result.
//
// opts ...contracts.Option: A variadic list of option functions that can modify EngineOptions.
//
// Returns:
//   - contracts.EngineOptions: A structure containing the finalized options with defaults applied.
//   - error: An error wrapping contracts.ErrInvalidConfig if validation fails.
func applyDefaultOptions(opts ...contracts.Option) (contracts.EngineOptions, error) {
	options := &contracts.EngineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if len(options.Channels) == 0 {
		options.Channels = []uint8{0}
	}
	if options.MinLightness == 0 && options.MaxLightness == 0 {
		options.MinLightness = defaultMinLightness
		options.MaxLightness = defaultMaxLightness
	}
	if options.MinKelvin == 0 && options.MaxKelvin == 0 {
		options.MinKelvin = defaultMinKelvin
		options.MaxKelvin = defaultMaxKelvin
	}
	if options.MaxTransition == 0 {
		options.MaxTransition = defaultMaxTransition
	}
	if options.SendInterval == 0 {
		options.SendInterval = defaultSendInterval
	}
	if options.FailureLimit == 0 {
		options.FailureLimit = defaultFailureLimit
	}
	if options.ShutdownGrace == 0 {
		options.ShutdownGrace = defaultShutdownGrace
	}

	if err := options.Validate(); err != nil {
		return contracts.EngineOptions{}, err
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
