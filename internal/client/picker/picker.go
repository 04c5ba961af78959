// Package picker is the terminal stand-in for a device photo picker: the
// user types a local path or an http(s) URL instead of tapping a photo.
package picker

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/gamekeeper/internal/netx"
)

// Quality is the JPEG quality photos are re-encoded with.
const Quality = 70

const mimeJPEG = "image/jpeg"

// Asset is a picked file. Type is the content type the bytes returned by
// Read will have.
type Asset struct {
	URI      string
	FileName string
	Type     string

	data     []byte
	detected *mimetype.MIME
}

// PromptFunc asks the user for a path or URL. An empty answer cancels.
type PromptFunc func(ctx context.Context) (string, error)

type Picker struct {
	prompt PromptFunc
	http   *http.Client
}

func New(prompt PromptFunc, httpClient *http.Client) *Picker {
	return &Picker{prompt: prompt, http: httpClient}
}

// Pick asks for an image and loads it. It returns nil, nil when the user
// cancels.
func (p *Picker) Pick(ctx context.Context) (*Asset, error) {
	input, err := p.prompt(ctx)
	if err != nil {
		return nil, err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	data, name, err := p.load(ctx, input)
	if err != nil {
		return nil, err
	}

	detected := mimetype.Detect(data)
	a := &Asset{URI: input, FileName: name, data: data, detected: detected}
	if isPhoto(detected) {
		a.Type = mimeJPEG
	} else {
		a.Type = detected.String()
	}
	return a, nil
}

// Read returns the asset bytes. JPEG and PNG photos are re-encoded as JPEG
// at Quality; anything else is returned as loaded.
func (p *Picker) Read(ctx context.Context, a *Asset) ([]byte, error) {
	data := a.data
	if data == nil {
		var err error
		if data, _, err = p.load(ctx, a.URI); err != nil {
			return nil, err
		}
	}

	detected := a.detected
	if detected == nil {
		detected = mimetype.Detect(data)
	}
	if !isPhoto(detected) {
		return data, nil
	}
	return reencode(data)
}

func (p *Picker) load(ctx context.Context, uri string) ([]byte, string, error) {
	if u, err := url.Parse(uri); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, _, err := netx.Download(ctx, p.http, uri)
		if err != nil {
			return nil, "", err
		}
		name := path.Base(u.Path)
		if name == "/" || name == "." {
			name = ""
		}
		return data, name, nil
	}

	data, err := os.ReadFile(uri)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", uri, err)
	}
	return data, filepath.Base(uri), nil
}

func isPhoto(m *mimetype.MIME) bool {
	return m.Is("image/jpeg") || m.Is("image/png")
}

func reencode(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
