package report

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ngts-qa/qaview/internal/showhide"
)

// Image is one plot on the report page.
type Image struct {
	Path string // Location on disk.
}

// Stub returns the file name of the image.
func (i Image) Stub() string {
	return filepath.Base(i.Path)
}

func (i Image) stem() string {
	stub := i.Stub()
	return strings.TrimSuffix(stub, filepath.Ext(stub))
}

// Title is the heading shown above the image: the file stem with
// underscores and dashes turned into spaces, first letter upper case and
// the rest lower case.
func (i Image) Title() string {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(i.stem())
	runes := []rune(strings.ToLower(title))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// Name is the id-safe form of the file stem that links the image to its
// button. Characters outside [A-Za-z0-9_-] become underscores.
func (i Image) Name() string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, i.stem())
}

// ControlID is the id of the image's show/hide button.
func (i Image) ControlID() string {
	return showhide.ControlID(i.Name())
}

// TargetID is the id of the image element.
func (i Image) TargetID() string {
	return showhide.TargetPrefix + showhide.Delimiter + i.Name()
}

func (i Image) String() string {
	return `<Image "` + i.Stub() + `">`
}
