// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc2md/internal/container"
)

// DefaultMarkitdownImage is the container image used when none is configured.
const DefaultMarkitdownImage = "markitdown:latest"

// MarkitdownConverter converts documents by piping them through the
// markitdown container image. It depends on a container.Runtime (docker or
// podman) injected at construction time.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter creates a converter that uses rt to run image. It
// verifies that the image exists locally before returning.
func NewMarkitdownConverter(rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Convert streams the file at path into the container and returns the
// Markdown it prints. The file extension is passed as a format hint since
// markitdown cannot see the file name on stdin. Empty output is returned as
// an empty string so callers can report it as "no content".
func (m *MarkitdownConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		args = []string{"-x", strings.ToLower(ext)}
	}

	var out bytes.Buffer
	if err := m.runtime.Run(m.image, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", filepath.Base(path), err)
	}

	return out.String(), nil
}
