package domain

import (
	"fmt"
	"strings"
)

// ContentType identifies one of the four content domains served by the portal.
type ContentType string

// Available content types.
const (
	// ContentTypeNews covers news articles about micromobility.
	ContentTypeNews ContentType = "news"

	// ContentTypeVideos covers video reviews and explainers.
	ContentTypeVideos ContentType = "videos"

	// ContentTypeVehicles covers the equipment catalogue.
	ContentTypeVehicles ContentType = "vehicles"

	// ContentTypeRegulations covers federal, state and municipal rules.
	ContentTypeRegulations ContentType = "regulations"
)

// AllContentTypes returns every content type in canonical order.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeNews,
		ContentTypeVideos,
		ContentTypeVehicles,
		ContentTypeRegulations,
	}
}

// IsValid returns true if the content type is recognised.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeNews, ContentTypeVideos, ContentTypeVehicles, ContentTypeRegulations:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ContentType) String() string {
	return string(t)
}

// Description returns a human-readable, Portuguese label for the type.
func (t ContentType) Description() string {
	switch t {
	case ContentTypeNews:
		return "Notícias"
	case ContentTypeVideos:
		return "Vídeos"
	case ContentTypeVehicles:
		return "Veículos"
	case ContentTypeRegulations:
		return "Regulamentações"
	default:
		return "Desconhecido"
	}
}

// ParseContentType converts user input into a ContentType.
// Matching is case-insensitive and accepts singular forms ("video", "vehicle", "regulation").
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "news", "noticias", "notícias":
		return ContentTypeNews, nil
	case "videos", "video", "vídeos":
		return ContentTypeVideos, nil
	case "vehicles", "vehicle", "veiculos", "veículos":
		return ContentTypeVehicles, nil
	case "regulations", "regulation", "regulamentacoes", "regulamentações":
		return ContentTypeRegulations, nil
	default:
		return "", fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, s)
	}
}

// ParseContentTypes parses a list of content types, dropping duplicates
// while keeping the first-seen order.
func ParseContentTypes(values []string) ([]ContentType, error) {
	seen := make(map[ContentType]bool, len(values))
	types := make([]ContentType, 0, len(values))
	for _, v := range values {
		t, err := ParseContentType(v)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	return types, nil
}
