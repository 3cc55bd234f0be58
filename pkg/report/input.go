package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
)

// LoadFile decodes a JSON or YAML input file into v. Files ending in .yaml or
// .yml are YAML; anything else is JSON.
func LoadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return rerrors.InputWrap(err, rerrors.ErrInputReadFailed, "failed to read input file").
			WithContext("path", path)
	}
	if err := Decode(data, filepath.Ext(path), v); err != nil {
		return rerrors.InputWrap(err, rerrors.ErrInputParseFailed, "failed to parse input file").
			WithContext("path", path)
	}
	return nil
}

// Decode unmarshals data as YAML when ext is ".yaml" or ".yml", else as JSON.
func Decode(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}
