package media

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// FilenameMapper translates between the filename in the CSV and the name the
// uploader stored the file under.
type FilenameMapper interface {
	// GetImageMapping returns the stored name for an original filename.
	GetImageMapping(filename string) string
	// GetInversedImageMapping returns the original filename for a stored name.
	GetInversedImageMapping(newFilename string) string
}

// ImageMapping is an in-memory FilenameMapper. Names without an entry map to themselves.
type ImageMapping struct {
	mapping  map[string]string
	inversed map[string]string
}

func NewImageMapping() *ImageMapping {
	return &ImageMapping{
		mapping:  make(map[string]string),
		inversed: make(map[string]string),
	}
}

// Add records that filename has been stored as newFilename.
func (m *ImageMapping) Add(filename, newFilename string) {
	m.mapping[filename] = newFilename
	m.inversed[newFilename] = filename
}

func (m *ImageMapping) GetImageMapping(filename string) string {
	if v, ok := m.mapping[filename]; ok {
		return v
	}
	return filename
}

func (m *ImageMapping) GetInversedImageMapping(newFilename string) string {
	if v, ok := m.inversed[newFilename]; ok {
		return v
	}
	return newFilename
}

func (m *ImageMapping) Len() int {
	return len(m.mapping)
}

// LoadImageMapping reads the uploader's rename table from a Redis hash
// (field = original filename, value = stored filename).
func LoadImageMapping(ctx context.Context, client *redis.Client, key string) (*ImageMapping, error) {
	entries, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("load image mapping %s: %w", key, err)
	}
	m := NewImageMapping()
	for filename, newFilename := range entries {
		m.Add(filename, newFilename)
	}
	return m, nil
}
