package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"docconnect/internal/ids"
	"docconnect/internal/media/sniffer"
	"docconnect/internal/media/svg"
)

var (
	ErrEmptyFile           = errors.New("empty file")
	ErrAvatarTooLarge      = errors.New("avatar exceeds the size limit")
	ErrUnsupportedImage    = errors.New("avatar must be a jpeg, png, gif, webp or svg image")
	ErrContentTypeMismatch = errors.New("declared content type does not match the file")
	ErrAvatarsDisabled     = errors.New("avatar uploads are not configured")
)

// ObjectPutter is the slice of the object store that avatar uploads need.
type ObjectPutter interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

type AvatarService struct {
	store   ObjectPutter
	maxSize int64
	now     func() time.Time
	log     zerolog.Logger
}

func NewAvatarService(store ObjectPutter, maxSize int64, log zerolog.Logger) *AvatarService {
	return &AvatarService{
		store:   store,
		maxSize: maxSize,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log,
	}
}

// Upload stores an avatar image for userID and returns its public url.
// declared is the Content-Type sent with the file and may be empty.
func (s *AvatarService) Upload(ctx context.Context, userID string, file io.Reader, declared string) (string, error) {
	if s == nil || s.store == nil {
		return "", ErrAvatarsDisabled
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrAvatarTooLarge
	}

	format, err := sniffer.DetectHead(data)
	if err != nil {
		return "", ErrUnsupportedImage
	}
	if d := sniffer.DeclaredMIME(declared); d != "" && d != "application/octet-stream" && d != format.MIME {
		return "", fmt.Errorf("%w: declared %s, actual %s", ErrContentTypeMismatch, d, format.MIME)
	}

	if format == sniffer.SVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return "", fmt.Errorf("sanitize svg: %w", err)
		}
		data = clean
	}

	key := s.objectKey(userID, format.Ext)
	if err := s.store.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), format.MIME); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", userID).Str("object", key).Int("bytes", len(data)).Msg("avatar stored")
	return s.store.PublicURL(key), nil
}

func (s *AvatarService) objectKey(userID, ext string) string {
	datePrefix := s.now().Format("2006/01/02")
	return path.Join("avatars", userID, datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}
