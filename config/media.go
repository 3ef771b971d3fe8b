package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ImageType pairs an image column with the column holding its label.
type ImageType struct {
	ImageColumn string
	LabelColumn string
}

// DefaultImageTypes mirrors the image columns of a Magento catalog export.
var DefaultImageTypes = []ImageType{
	{ImageColumn: "base_image", LabelColumn: "base_image_label"},
	{ImageColumn: "small_image", LabelColumn: "small_image_label"},
	{ImageColumn: "thumbnail_image", LabelColumn: "thumbnail_image_label"},
	{ImageColumn: "swatch_image", LabelColumn: "swatch_image_label"},
}

// MediaConfig holds the settings of the media export and gallery import.
type MediaConfig struct {
	Env                    string
	LogLevel               string
	MultipleValueDelimiter string
	ImageTypes             []ImageType
	BatchSize              int
	SkipErrors             bool
	ImageMappingKey        string // Redis hash written by the uploader, empty disables it
	Registry               string // "memory" or "redis"
	ImportDir              string
	ImportSchedule         string
}

// LoadMediaConfig reads MediaConfig from the environment.
func LoadMediaConfig() (*MediaConfig, error) {
	cfg := &MediaConfig{
		Env:                    os.Getenv("APP_ENV"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		MultipleValueDelimiter: getEnv("MEDIA_MULTIPLE_VALUE_DELIMITER", ","),
		ImageTypes:             DefaultImageTypes,
		BatchSize:              500,
		SkipErrors:             os.Getenv("MEDIA_SKIP_ERRORS") == "true",
		ImageMappingKey:        os.Getenv("MEDIA_IMAGE_MAPPING_KEY"),
		Registry:               getEnv("MEDIA_REGISTRY", "memory"),
		ImportDir:              os.Getenv("MEDIA_IMPORT_DIR"),
		ImportSchedule:         getEnv("MEDIA_IMPORT_SCHEDULE", "@every 5m"),
	}

	if v := os.Getenv("MEDIA_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MEDIA_BATCH_SIZE: invalid value %q", v)
		}
		cfg.BatchSize = n
	}
	if v := os.Getenv("MEDIA_IMAGE_TYPES"); v != "" {
		types, err := ParseImageTypes(v)
		if err != nil {
			return nil, err
		}
		cfg.ImageTypes = types
	}
	if cfg.Registry != "memory" && cfg.Registry != "redis" {
		return nil, fmt.Errorf("MEDIA_REGISTRY: unknown backend %q", cfg.Registry)
	}
	return cfg, nil
}

// ParseImageTypes parses "image:label,image:label". A missing label column
// defaults to "<image>_label". Order is kept.
func ParseImageTypes(s string) ([]ImageType, error) {
	var types []ImageType
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		image, label, _ := strings.Cut(part, ":")
		image = strings.TrimSpace(image)
		label = strings.TrimSpace(label)
		if image == "" {
			return nil, fmt.Errorf("MEDIA_IMAGE_TYPES: empty image column in %q", part)
		}
		if label == "" {
			label = image + "_label"
		}
		types = append(types, ImageType{ImageColumn: image, LabelColumn: label})
	}
	return types, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
