package storage

import (
	"context"
	"io"
	"testing"

	"taskhive/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type urlOnlyStorage struct{}

func (urlOnlyStorage) UploadImage(context.Context, io.Reader, string, string) (*models.UploadResult, error) {
	return nil, nil
}
func (urlOnlyStorage) DeleteFile(context.Context, string) error { return nil }
func (urlOnlyStorage) PublicIDFromURL(u string) (string, bool) { return PublicIDFromURL("demo", u) }

type scheduled struct{ ids []string }

func (s *scheduled) ScheduleMediaDelete(_ context.Context, id string) error {
	s.ids = append(s.ids, id)
	return nil
}

func TestCleanerDiscardsOnlyHostedImages(t *testing.T) {
	sched := &scheduled{}
	c := NewCleaner(urlOnlyStorage{}, sched, zap.NewNop())

	c.Discard(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/a/b.jpg")
	c.Discard(context.Background(), "https://example.com/pic.jpg")
	c.Discard(context.Background(), "")

	assert.Equal(t, []string{"a/b"}, sched.ids)

	var nilCleaner *Cleaner
	assert.NotPanics(t, func() { nilCleaner.Discard(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/a/b.jpg") })
}
