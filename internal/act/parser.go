package act

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseActionFile reads and parses an action table descriptor.
//
// Parameters:
//   - path: Path to the descriptor, e.g., "data/sprite/human/body.act.yaml"
//
// Returns:
//   - *ActionTable: The parsed action table
//   - error: Read, parse or validation error, or nil if successful
func ParseActionFile(path string) (*ActionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read action file '%s': %w", path, err)
	}

	table, err := ParseActions(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse action file '%s': %w", path, err)
	}
	return table, nil
}

// ParseActions parses an action table from YAML bytes and validates it.
func ParseActions(data []byte) (*ActionTable, error) {
	var table ActionTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("invalid action yaml: %w", err)
	}

	if err := validate(&table); err != nil {
		return nil, err
	}
	return &table, nil
}

func validate(table *ActionTable) error {
	for a, action := range table.Actions {
		for m, motion := range action.Motions {
			for c, clip := range motion.Clips {
				if clip.SpriteNumber < NoSprite {
					return fmt.Errorf("action %d motion %d clip %d: invalid sprite number %d",
						a, m, c, clip.SpriteNumber)
				}
				if clip.SpriteType != nil &&
					*clip.SpriteType != SpriteTypePalette &&
					*clip.SpriteType != SpriteTypeRGBA {
					return fmt.Errorf("action %d motion %d clip %d: unknown sprite type %d",
						a, m, c, *clip.SpriteType)
				}
				if err := validateZoom(&clip); err != nil {
					return fmt.Errorf("action %d motion %d clip %d: %w", a, m, c, err)
				}
			}
		}
	}

	for i, delay := range table.Delays {
		if delay < 0 {
			return fmt.Errorf("delay %d is negative: %v", i, delay)
		}
	}
	return nil
}

// validateZoom rejects scales that would give a clip no positive size.
// NaN fails the comparison as well.
func validateZoom(clip *SpriteClip) error {
	if clip.Zoom != nil && !(*clip.Zoom > 0) {
		return fmt.Errorf("zoom must be positive, got %v", *clip.Zoom)
	}
	if clip.Zoom2 != nil && (!(clip.Zoom2[0] > 0) || !(clip.Zoom2[1] > 0)) {
		return fmt.Errorf("zoom2 must be positive, got %v", *clip.Zoom2)
	}
	return nil
}
