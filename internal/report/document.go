package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ngts-qa/qaview/internal/showhide"
)

var (
	// ErrDuplicateName is returned when two images map to the same id.
	ErrDuplicateName = errors.New("report: duplicate image name")
	// ErrEmptyName is returned for an image whose file stem is empty.
	ErrEmptyName = errors.New("report: image has an empty name")
)

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Document is the report page: one heading, button and image per plot.
type Document struct {
	Title        string
	Width        int
	Height       int
	HeadingLevel int
	// Collapsed renders every image hidden with a "show" button.
	Collapsed    bool
	TransitionMS int

	intro  template.HTML
	images []pageImage
	names  map[string]string
}

// pageImage holds the data passed to the template for each image.
type pageImage struct {
	Title     string
	ControlID string
	TargetID  string
	Src       string
}

// NewDocument creates an empty Document.
func NewDocument(width, height int) *Document {
	return &Document{
		Title:        "QA plots",
		Width:        width,
		Height:       height,
		HeadingLevel: 5,
		names:        make(map[string]string),
	}
}

// AddImage appends img, referenced from the page as src.
func (d *Document) AddImage(img Image, src string) error {
	name := img.Name()
	if name == "" {
		return fmt.Errorf("%w: %s", ErrEmptyName, img.Path)
	}
	if prev, ok := d.names[name]; ok {
		return fmt.Errorf("%w: %s and %s both map to %q", ErrDuplicateName, prev, img.Path, name)
	}
	d.names[name] = img.Path
	d.images = append(d.images, pageImage{
		Title:     img.Title(),
		ControlID: img.ControlID(),
		TargetID:  img.TargetID(),
		Src:       src,
	})
	return nil
}

// Len returns the number of images on the page.
func (d *Document) Len() int { return len(d.images) }

// SetIntro renders markdown shown above the plots. Raw HTML is allowed but
// sanitized, and never yields show/hide controls.
func (d *Document) SetIntro(markdown []byte) error {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert(markdown, &buf); err != nil {
		return fmt.Errorf("converting intro markdown: %w", err)
	}
	d.intro = template.HTML(introPolicy.SanitizeBytes(buf.Bytes()))
	return nil
}

// Render writes the page to w.
func (d *Document) Render(w io.Writer) error {
	level := d.HeadingLevel
	if level < 1 || level > 6 {
		return fmt.Errorf("report: invalid heading level %d", level)
	}
	data := struct {
		Title        string
		Intro        template.HTML
		Images       []pageImage
		HeadingOpen  template.HTML
		HeadingClose template.HTML
		Label        string
		Width        int
		Height       int
		Collapsed    bool
		TransitionMS int
	}{
		Title:        d.Title,
		Intro:        d.intro,
		Images:       d.images,
		HeadingOpen:  template.HTML(fmt.Sprintf("<h%d>", level)),
		HeadingClose: template.HTML(fmt.Sprintf("</h%d>", level)),
		Label:        showhide.Label(!d.Collapsed),
		Width:        d.Width,
		Height:       d.Height,
		Collapsed:    d.Collapsed,
		TransitionMS: d.TransitionMS,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
