// Package export renders landing pages into standalone HTML documents and
// publishes them as static sites.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"vibedezine_server/internal/types"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

// Instructions is returned with every export.
const Instructions = `To use this landing page:

1. Save this code as index.html
2. Open it in your browser to preview
3. Deploy to any static hosting:
   - Netlify: Drag and drop the file
   - Vercel: Create a new project and upload
   - GitHub Pages: Push to a repo and enable Pages

The page uses Tailwind CSS via CDN and Google Fonts. No build step required.`

const (
	fallbackHeadline    = "Your Headline Here"
	fallbackSubheadline = "Your subheadline here"
	fallbackCTA         = "Get Started"
	fallbackFinal       = "Ready to get started?"
)

type palette struct {
	Background template.CSS
	Foreground template.CSS
	Muted      string
	Subtle     string
	Band       string
	Border     string
	Footer     string
}

var (
	darkPalette = palette{
		Background: "#09090b",
		Foreground: "#fafafa",
		Muted:      "text-zinc-400",
		Subtle:     "text-zinc-500",
		Band:       "bg-zinc-900/50",
		Border:     "border-zinc-800",
		Footer:     "text-zinc-600",
	}
	lightPalette = palette{
		Background: "#ffffff",
		Foreground: "#18181b",
		Muted:      "text-zinc-600",
		Subtle:     "text-zinc-500",
		Band:       "bg-zinc-100",
		Border:     "border-zinc-200",
		Footer:     "text-zinc-500",
	}
)

type heroView struct {
	Headline, Subheadline, CTA, Action string
}

type benefitView struct {
	Number             int
	Title, Description string
}

type finalView struct {
	Headline, CTA, Action string
}

type pageView struct {
	Title       string
	Description string
	Template    types.Template
	Accent      template.CSS
	AccentDim   template.CSS
	Palette     palette
	Hero        *heroView
	Benefits    []benefitView
	Problem     *types.ProblemCopy
	Testimonial *types.Testimonial
	Final       *finalView
	SiteURL     string
	SiteTitle   string
}

// Exporter renders pages. It holds no mutable state and is safe for
// concurrent use.
type Exporter struct {
	tmpl      *template.Template
	siteURL   string
	siteTitle string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithSite sets the footer attribution link.
func WithSite(url, title string) Option {
	return func(e *Exporter) {
		if url != "" {
			e.siteURL = url
		}
		if title != "" {
			e.siteTitle = title
		}
	}
}

// NewExporter parses the embedded page template and applies opts.
func NewExporter(opts ...Option) (*Exporter, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	e := &Exporter{
		tmpl:      tmpl,
		siteURL:   "https://vibedezine.com",
		siteTitle: "Vibedezine",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export renders page into a single HTML document. Sections marked not
// visible are left out; a hero or closing section absent from page is
// rendered with placeholder copy. The result depends only on page and the
// exporter's site settings, so equal input yields identical bytes. All copy
// is HTML-escaped.
func (e *Exporter) Export(page *types.GeneratedLandingPage) (*types.ExportedPage, error) {
	if page == nil {
		return nil, types.Errorf(types.EINVALID, "Landing page data is required")
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, e.view(page)); err != nil {
		return nil, types.WrapError(types.EINTERNAL, err, "Failed to export landing page")
	}
	return &types.ExportedPage{HTML: buf.String(), Instructions: Instructions}, nil
}

func (e *Exporter) view(page *types.GeneratedLandingPage) pageView {
	theme := page.Theme.Normalize()
	accent := expandHex(theme.AccentColor)

	v := pageView{
		Title:       page.Metadata.Title,
		Description: page.Metadata.Description,
		Template:    theme.Template,
		Accent:      template.CSS(accent),
		AccentDim:   template.CSS(accent + "15"),
		Palette:     lightPalette,
		Hero:        &heroView{Headline: fallbackHeadline, Subheadline: fallbackSubheadline, CTA: fallbackCTA, Action: "#"},
		Final:       &finalView{Headline: fallbackFinal, CTA: fallbackCTA, Action: "#"},
		SiteURL:     e.siteURL,
		SiteTitle:   e.siteTitle,
	}
	if theme.DarkMode {
		v.Palette = darkPalette
	}

	for _, s := range page.Sections {
		switch c := s.Copy.(type) {
		case types.HeroCopy:
			if !s.Visible {
				v.Hero = nil
				continue
			}
			v.Hero = &heroView{
				Headline:    or(c.Headline, fallbackHeadline),
				Subheadline: or(c.Subheadline, fallbackSubheadline),
				CTA:         or(c.CTA.Text, fallbackCTA),
				Action:      or(c.CTA.Action, "#"),
			}
		case types.BenefitsCopy:
			if !s.Visible {
				continue
			}
			v.Benefits = v.Benefits[:0]
			for i, item := range c.Items {
				v.Benefits = append(v.Benefits, benefitView{Number: i + 1, Title: item.Title, Description: item.Description})
			}
		case types.ProblemCopy:
			if s.Visible {
				p := c
				v.Problem = &p
			}
		case types.SocialProofCopy:
			if s.Visible && c.Testimonial != nil {
				t := *c.Testimonial
				v.Testimonial = &t
			}
		case types.FinalCTACopy:
			if !s.Visible {
				v.Final = nil
				continue
			}
			v.Final = &finalView{
				Headline: or(c.Headline, fallbackFinal),
				CTA:      or(c.CTA.Text, fallbackCTA),
				Action:   or(c.CTA.Action, "#"),
			}
		}
	}
	return v
}

// expandHex turns #rgb into #rrggbb so an alpha suffix can be appended.
func expandHex(color string) string {
	if len(color) != 4 {
		return strings.ToLower(color)
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range strings.ToLower(color[1:]) {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

func or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
