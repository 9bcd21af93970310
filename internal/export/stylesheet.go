package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrStylesheetNotFound is returned when the PDF stylesheet file is missing
var ErrStylesheetNotFound = errors.New("pdf stylesheet not found")

// Stylesheet controls the look of the dashboard PDF
type Stylesheet struct {
	FontFamily  string  `json:"font_family"`
	TitleSize   float64 `json:"title_size"`
	HeadingSize float64 `json:"heading_size"`
	BodySize    float64 `json:"body_size"`
	Margin      float64 `json:"margin"`
	RowHeight   float64 `json:"row_height"`
	HeaderFill  string  `json:"header_fill"`
	HeaderText  string  `json:"header_text"`
	AccentColor string  `json:"accent_color"`
}

// LoadStylesheet reads a JSON stylesheet. Unset values fall back to defaults.
func LoadStylesheet(path string) (*Stylesheet, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrStylesheetNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}

	s := &Stylesheet{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet %s: %w", path, err)
	}
	s.defaults()
	return s, nil
}

func (s *Stylesheet) defaults() {
	if s.FontFamily == "" {
		s.FontFamily = "Helvetica"
	}
	if s.TitleSize == 0 {
		s.TitleSize = 16
	}
	if s.HeadingSize == 0 {
		s.HeadingSize = 11
	}
	if s.BodySize == 0 {
		s.BodySize = 9
	}
	if s.Margin == 0 {
		s.Margin = 15
	}
	if s.RowHeight == 0 {
		s.RowHeight = 6
	}
	if s.HeaderFill == "" {
		s.HeaderFill = "#4F81BD"
	}
	if s.HeaderText == "" {
		s.HeaderText = "#FFFFFF"
	}
	if s.AccentColor == "" {
		s.AccentColor = "#1F3864"
	}
}

// rgb parses "#RRGGBB"; malformed values give black
func rgb(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
