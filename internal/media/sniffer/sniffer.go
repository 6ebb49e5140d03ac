// Package sniffer identifies avatar images by their leading bytes.
package sniffer

import (
	"bytes"
	"errors"
	"mime"
	"strings"
)

// HeadSize is how many leading bytes DetectHead looks at.
const HeadSize = 512

var ErrUnknownType = errors.New("unsupported image type")

type Format struct {
	Ext  string
	MIME string
}

var (
	JPEG = Format{Ext: "jpg", MIME: "image/jpeg"}
	PNG  = Format{Ext: "png", MIME: "image/png"}
	GIF  = Format{Ext: "gif", MIME: "image/gif"}
	WEBP = Format{Ext: "webp", MIME: "image/webp"}
	SVG  = Format{Ext: "svg", MIME: "image/svg+xml"}
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func DetectHead(head []byte) (Format, error) {
	if len(head) > HeadSize {
		head = head[:HeadSize]
	}
	switch {
	case len(head) == 0:
		return Format{}, ErrUnknownType
	case len(head) > 3 && head[0] == 0xff && head[1] == 0xd8 && head[2] == 0xff:
		return JPEG, nil
	case bytes.HasPrefix(head, pngMagic):
		return PNG, nil
	case bytes.HasPrefix(head, []byte("GIF87a")), bytes.HasPrefix(head, []byte("GIF89a")):
		return GIF, nil
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		return WEBP, nil
	case isSVG(head):
		return SVG, nil
	}
	return Format{}, ErrUnknownType
}

func isSVG(head []byte) bool {
	trimmed := strings.TrimSpace(string(head))
	return strings.HasPrefix(trimmed, "<svg") || strings.HasPrefix(trimmed, "<?xml")
}

// DeclaredMIME strips parameters from a Content-Type value.
func DeclaredMIME(contentType string) string {
	if contentType == "" {
		return ""
	}
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		if idx := strings.Index(contentType, ";"); idx >= 0 {
			contentType = contentType[:idx]
		}
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return media
}
