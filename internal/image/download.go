package imagepkg

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardcreator/internal/util"
)

// ImageProvider resolves element content to an image. A nil result means
// the content is not an image and should be rendered as text.
type ImageProvider interface {
	TryGet(dir, content string) image.Image
}

// DownloadImage downloads an image from URL and returns image.Image (decoded).
func DownloadImage(url string) (image.Image, error) {
	body, err := util.GetBytes(url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
}

// FileProvider loads images from disk, relative to the card file directory.
type FileProvider struct{}

func (FileProvider) TryGet(dir, content string) image.Image {
	if content == "" || strings.ContainsAny(content, "\r\n") {
		return nil
	}
	path := content
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, content)
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil
	}
	return img
}

// Image opens the image at path. Unlike TryGet a missing or undecodable
// file is an error.
func (FileProvider) Image(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// URLProvider downloads http and https content.
type URLProvider struct{}

func (URLProvider) TryGet(_, content string) image.Image {
	if !strings.HasPrefix(content, "http://") && !strings.HasPrefix(content, "https://") {
		return nil
	}
	img, err := DownloadImage(content)
	if err != nil {
		return nil
	}
	return img
}

// ChainProvider asks each provider in turn and returns the first image.
type ChainProvider []ImageProvider

func (c ChainProvider) TryGet(dir, content string) image.Image {
	for _, p := range c {
		if img := p.TryGet(dir, content); img != nil {
			return img
		}
	}
	return nil
}

// DefaultProvider resolves QR codes, URLs and files, in that order.
func DefaultProvider() ChainProvider {
	return ChainProvider{QRProvider{}, URLProvider{}, FileProvider{}}
}
