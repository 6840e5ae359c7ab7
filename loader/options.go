package loader

import "go.uber.org/zap"

// DefaultSuffix marks the files of a directory that hold model definitions.
const DefaultSuffix = ".model.yaml"

type (
	Options struct {
		// Schema is applied to models whose params do not name one.
		Schema string
		// Logger, when set, receives one record per registered model.
		Logger *zap.Logger
		// Context is handed to every definition function untouched.
		Context any
		// Suffix overrides DefaultSuffix for directory sources.
		Suffix string
	}
)

func (opts Options) suffix() string {
	if opts.Suffix == "" {
		return DefaultSuffix
	}
	return opts.Suffix
}
