// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/doc2md/internal/container"
	"github.com/pdiddy/doc2md/internal/convert"
	"github.com/pdiddy/doc2md/pkg/types"
)

// runtimeSelector resolves a container runtime by name. Tests replace it.
var runtimeSelector = container.Select

// ConverterFactory returns a convert.Factory for the backend named in cfg.
// No runtime is looked up until the factory is called, so validation errors on the
// input path surface before any container runtime is touched.
func ConverterFactory(cfg types.Config, logger *logrus.Logger) convert.Factory {
	return func() (convert.Converter, error) {
		switch cfg.Backend {
		case types.BackendNative:
			logger.Debug("using native converter")
			return convert.NewNativeConverter(logger), nil
		case types.BackendMarkitdown, "":
			rt, err := runtimeSelector(cfg.Runtime)
			if err != nil {
				return nil, err
			}
			logger.WithFields(logrus.Fields{
				"runtime": rt.Name(),
				"image":   cfg.Image,
			}).Debug("using markitdown converter")
			m, err := convert.NewMarkitdownConverter(rt, cfg.Image)
			if err != nil {
				return nil, err
			}
			return m, nil
		default:
			return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
		}
	}
}
