package netio

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/adfeel220/saihu/netmodel"
)

// DecodeJSON reads a spec.md §6 JSON network description from r and
// returns the validated netmodel.Network it describes.
func DecodeJSON(r io.Reader) (*netmodel.Network, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("netio: decoding JSON: %w", err)
	}
	return doc.ToNetwork()
}

// DecodeYAML reads the same schema as DecodeJSON, in YAML form, the way
// inference-sim-inference-sim/cmd/hfconfig.go accepts either JSON or YAML
// for the same underlying document shape.
func DecodeYAML(r io.Reader) (*netmodel.Network, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("netio: decoding YAML: %w", err)
	}
	return doc.ToNetwork()
}
