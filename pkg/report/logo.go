package report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/webp"
)

var errRemoteLogo = errors.New("remote logos are not fetched")

// logoImage is a decoded logo ready for the PDF surface.
type logoImage struct {
	kind string // "png" or "jpg"
	data []byte
}

// loadLogo resolves a data:image URI or a local file path. WebP images are
// converted to PNG since the PDF surface cannot embed them.
func loadLogo(src string) (*logoImage, error) {
	src = strings.TrimSpace(src)
	lower := strings.ToLower(src)

	var kind string
	var data []byte
	switch {
	case src == "":
		return nil, errors.New("empty logo source")
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return nil, errRemoteLogo
	case strings.HasPrefix(lower, "data:"):
		k, d, err := parseDataURI(src)
		if err != nil {
			return nil, err
		}
		kind, data = k, d
	default:
		d, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read logo: %w", err)
		}
		kind, data = strings.TrimPrefix(strings.ToLower(filepath.Ext(src)), "."), d
	}

	switch kind {
	case "png":
		return &logoImage{kind: "png", data: data}, nil
	case "jpg", "jpeg":
		return &logoImage{kind: "jpg", data: data}, nil
	case "webp":
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode webp logo: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode logo: %w", err)
		}
		return &logoImage{kind: "png", data: buf.Bytes()}, nil
	default:
		return nil, fmt.Errorf("unsupported logo type %q", kind)
	}
}

// parseDataURI splits "data:image/<type>;base64,<payload>".
func parseDataURI(uri string) (string, []byte, error) {
	head, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	head = strings.ToLower(strings.TrimPrefix(strings.ToLower(head), "data:"))
	mediaType, params, _ := strings.Cut(head, ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return "", nil, fmt.Errorf("data URI is not an image: %q", mediaType)
	}
	if params != "base64" {
		return "", nil, errors.New("data URI is not base64 encoded")
	}

	payload = strings.TrimSpace(payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
			return "", nil, fmt.Errorf("decode data URI: %w", err)
		}
	}
	return strings.TrimPrefix(mediaType, "image/"), data, nil
}
