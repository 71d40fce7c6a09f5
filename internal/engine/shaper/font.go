package shaper

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultFamily is the family name of the built-in Go Regular face.
const DefaultFamily = "Go"

// maxFaces bounds the number of sized faces kept open.
const maxFaces = 32

// FontMetrics describes the vertical metrics of a face at a given size.
type FontMetrics struct {
	UnitsPerEm int
	Ascent     float64
	Descent    float64
	LineGap    float64
}

type registeredFont struct {
	id     FontID
	family string
	style  Style
	font   *opentype.Font
}

type faceKey struct {
	id   FontID
	size float64
}

// FontShaper shapes text with OpenType fonts.
type FontShaper struct {
	mu       sync.Mutex
	fonts    []*registeredFont
	byFamily map[string][]FontID
	faces    map[faceKey]font.Face
	buf      sfnt.Buffer
	tabWidth int
}

// NewFontShaper creates a font shaper with the Go Regular face registered
// as DefaultFamily.
func NewFontShaper() (*FontShaper, error) {
	s := &FontShaper{
		byFamily: make(map[string][]FontID),
		faces:    make(map[faceKey]font.Face),
		tabWidth: DefaultTabWidth,
	}
	if _, err := s.RegisterFont(DefaultFamily, Style{}, goregular.TTF); err != nil {
		return nil, fmt.Errorf("register default font: %w", err)
	}
	return s, nil
}

// RegisterFont parses TrueType or OpenType data and makes it available
// under family with the given style.
func (s *FontShaper) RegisterFont(family string, style Style, data []byte) (FontID, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parse font %q: %w", family, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := FontID(len(s.fonts))
	key := strings.ToLower(family)
	s.fonts = append(s.fonts, &registeredFont{id: id, family: family, style: style, font: f})
	s.byFamily[key] = append(s.byFamily[key], id)
	return id, nil
}

// FontCount returns the number of registered fonts.
func (s *FontShaper) FontCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fonts)
}

// SetTabWidth sets the tab width, in space advances.
func (s *FontShaper) SetTabWidth(width int) {
	if width < 1 {
		width = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabWidth = width
}

// Lookup returns the font chosen for family and style.
func (s *FontShaper) Lookup(family string, style Style) (FontID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rf, err := s.pickLocked(family, style)
	if err != nil {
		return 0, err
	}
	return rf.id, nil
}

// pickLocked chooses the registered font closest to the requested style.
// Unknown families fall back to the first registered family.
func (s *FontShaper) pickLocked(family string, style Style) (*registeredFont, error) {
	if len(s.fonts) == 0 {
		return nil, ErrNoFonts
	}
	ids := s.byFamily[strings.ToLower(family)]
	if len(ids) == 0 {
		ids = s.byFamily[strings.ToLower(s.fonts[0].family)]
	}

	var best *registeredFont
	bestScore := math.MaxInt
	for _, id := range ids {
		rf := s.fonts[id]
		score := abs(rf.style.weight() - style.weight())
		if rf.style.Slant != style.Slant {
			score += 1000
		}
		score += 10 * abs(int(rf.style.stretch())-int(style.stretch()))
		if score < bestScore {
			best, bestScore = rf, score
		}
	}
	return best, nil
}

// faceLocked returns a face for font id at size, creating it on demand.
func (s *FontShaper) faceLocked(rf *registeredFont, size float64) (font.Face, error) {
	key := faceKey{id: rf.id, size: size}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(rf.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %q at %v: %w", rf.family, size, err)
	}
	if len(s.faces) >= maxFaces {
		for k, f := range s.faces {
			_ = f.Close()
			delete(s.faces, k)
		}
	}
	s.faces[key] = face
	return face, nil
}

// Metrics returns the vertical metrics of the face chosen for family and
// style at size.
func (s *FontShaper) Metrics(family string, style Style, size float64) (FontMetrics, error) {
	if size <= 0 {
		return FontMetrics{}, fmt.Errorf("%w: %v", ErrInvalidFontSize, size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rf, err := s.pickLocked(family, style)
	if err != nil {
		return FontMetrics{}, err
	}
	face, err := s.faceLocked(rf, size)
	if err != nil {
		return FontMetrics{}, err
	}
	fm := face.Metrics()
	ascent, descent := toFloat(fm.Ascent), toFloat(fm.Descent)
	return FontMetrics{
		UnitsPerEm: int(rf.font.UnitsPerEm()),
		Ascent:     ascent,
		Descent:    descent,
		LineGap:    math.Max(0, toFloat(fm.Height)-ascent-descent),
	}, nil
}

// Shape implements Shaper.
func (s *FontShaper) Shape(p Params) (Layout, error) {
	if err := p.validate(); err != nil {
		return Layout{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rf, err := s.pickLocked(p.FontFamily, p.style())
	if err != nil {
		return Layout{}, err
	}
	face, err := s.faceLocked(rf, p.FontSize)
	if err != nil {
		return Layout{}, err
	}

	m := &fontMeasurer{face: face, font: rf, buf: &s.buf, tabWidth: s.tabWidth}
	if adv, ok := face.GlyphAdvance(' '); ok {
		m.space = toFloat(adv)
	}
	return newLineBuilder(p, m, toFloat(face.Metrics().Ascent)).layout(p.Text), nil
}

type fontMeasurer struct {
	face     font.Face
	font     *registeredFont
	buf      *sfnt.Buffer
	space    float64
	tabWidth int
}

func (m *fontMeasurer) measure(cluster string, prev rune, x float64) clusterMetrics {
	r, _ := utf8.DecodeRuneInString(cluster)
	met := clusterMetrics{fontID: m.font.id}
	if gi, err := m.font.font.GlyphIndex(m.buf, r); err == nil {
		met.glyphID = uint32(gi)
	}
	if r == '\t' && m.space > 0 {
		stop := m.space * float64(m.tabWidth)
		met.advance = (math.Floor(x/stop)+1)*stop - x
		return met
	}

	var adv fixed.Int26_6
	for _, cr := range cluster {
		a, ok := m.face.GlyphAdvance(cr)
		if !ok {
			a, _ = m.face.GlyphAdvance(unicode.ReplacementChar)
		}
		adv += a
	}
	met.advance = toFloat(adv)
	if prev >= 0 {
		met.kern = toFloat(m.face.Kern(prev, r))
	}
	return met
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
