package horoscoperepo

import (
	"encoding/json"
	"fmt"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

func decodeContent(raw []byte) (horoscope.Content, error) {
	var content horoscope.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return horoscope.Content{}, fmt.Errorf("decode horoscope: %w", err)
	}
	return content, nil
}
