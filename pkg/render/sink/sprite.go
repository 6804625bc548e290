package sink

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sitelen/pkg/errors"
)

// spriteFile is the on-disk form of a Sprite:
//
//	[glyphs]
//	tp-wg-mi = '<path d="M10 10 L90 90"/>'
type spriteFile struct {
	Glyphs map[string]string `toml:"glyphs"`
}

// LoadSprite decodes glyph artwork from a TOML document.
func LoadSprite(r io.Reader) (Sprite, error) {
	var f spriteFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode sprite")
	}
	if len(f.Glyphs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "sprite defines no glyphs")
	}
	return Sprite(f.Glyphs), nil
}
