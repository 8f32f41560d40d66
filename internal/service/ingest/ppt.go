package ingest

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/v2/presentation"
)

// ExtractPPTText pulls the plain text out of a .pptx byte stream.
func ExtractPPTText(data []byte) (string, error) {
	ppt, err := presentation.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open presentation: %w", err)
	}
	defer ppt.Close()

	return normalizeText(ppt.ExtractText().Text()), nil
}
