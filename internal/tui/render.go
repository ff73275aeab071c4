package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bonhomie95/portfolio/internal/content"
	"github.com/bonhomie95/portfolio/internal/render"
	"github.com/bonhomie95/portfolio/internal/tracker"
)

var (
	accent = lipgloss.Color("14")
	faint  = lipgloss.Color("245")

	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	navStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	navActive    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent)
	headingStyle = lipgloss.NewStyle().Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(accent)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	cardStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(faint)
)

// sectionMargin blank lines follow every section.
const sectionMargin = 1

// page is the rendered scroll content plus the line extent of every section.
type page struct {
	body    string
	regions []tracker.Region
}

// layout renders every section at width and records where each one starts
// and ends. pad trailing blank lines keep the last section reachable by the
// focus band. The last region extends over the footer and padding so the band
// always overlaps some section, even when scrolled all the way down.
func layout(p content.Portfolio, width, pad int, year int) page {
	var lines []string
	var regions []tracker.Region
	for _, s := range p.Sections {
		block := renderSection(p, s.ID, width)
		if block == "" {
			continue
		}
		blockLines := strings.Split(block, "\n")
		for i := 0; i < sectionMargin; i++ {
			blockLines = append(blockLines, "")
		}
		regions = append(regions, tracker.Region{ID: s.ID, Top: len(lines), Bottom: len(lines) + len(blockLines)})
		lines = append(lines, blockLines...)
	}
	lines = append(lines, faintStyle.Render(fmt.Sprintf("© %d %s. Built with Go, Bubble Tea & Lip Gloss.", year, p.Profile.Name)))
	for i := 0; i < pad; i++ {
		lines = append(lines, "")
	}
	if n := len(regions); n > 0 {
		regions[n-1].Bottom = len(lines)
	}
	return page{body: strings.Join(lines, "\n"), regions: regions}
}

func renderSection(p content.Portfolio, id string, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-2, 10))
	switch id {
	case content.SectionHome:
		cards := make([]string, 0, len(p.HeroCards))
		for _, c := range p.HeroCards {
			cards = append(cards, cardStyle.Width(max(width-4, 10)).Render(headingStyle.Render(c.Title)+"\n"+c.Text))
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			accentStyle.Render("✦ "+p.Badge),
			"",
			headingStyle.Render(p.Headline),
			faintStyle.Render(p.Profile.Role+" · "+p.Profile.Location),
			"",
			wrap.Render(render.Text(p.Profile.Blurb)),
			"",
			"GitHub   "+accentStyle.Render(p.Profile.Socials.GitHub),
			"LinkedIn "+accentStyle.Render(p.Profile.Socials.LinkedIn),
			"Résumé   "+accentStyle.Render(p.Profile.ResumeURL),
			"",
			lipgloss.JoinVertical(lipgloss.Left, cards...),
		)
	case content.SectionSkills:
		return lipgloss.JoinVertical(lipgloss.Left,
			headingStyle.Render("Core Skills"),
			wrap.Render(p.SkillsIntro),
			"",
			wrap.Render(strings.Join(skillChips(p.Skills), " · ")),
		)
	case content.SectionProjects:
		blocks := []string{headingStyle.Render("Selected Projects")}
		for _, pr := range p.Projects {
			blocks = append(blocks, cardStyle.Width(max(width-4, 10)).Render(
				headingStyle.Render(pr.Title)+"\n"+
					accentStyle.Render(pr.Tag)+"\n"+
					render.Text(pr.Description)+"\n"+
					faintStyle.Render("Live "+pr.Links.Live+"  Code "+pr.Links.GitHub),
			))
		}
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	case content.SectionExperience:
		blocks := []string{headingStyle.Render("Experience")}
		for _, e := range p.Experiences {
			points := make([]string, 0, len(e.Points))
			for _, pt := range e.Points {
				points = append(points, "• "+pt)
			}
			blocks = append(blocks, cardStyle.Width(max(width-4, 10)).Render(
				headingStyle.Render(e.Role)+" • "+e.Org+"\n"+
					faintStyle.Render(e.Period)+"\n"+
					strings.Join(points, "\n"),
			))
		}
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	case content.SectionContact:
		return lipgloss.JoinVertical(lipgloss.Left,
			headingStyle.Render(p.ContactHead),
			wrap.Render(p.ContactText),
			"",
			"Email  "+accentStyle.Render(p.Profile.Email),
			"GitHub "+accentStyle.Render(p.Profile.Socials.GitHub),
		)
	}
	return ""
}

func skillChips(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, chipStyle.Render(" "+s+" "))
	}
	return out
}

// navBar renders the brand followed by section labels with active highlighted.
func navBar(p content.Portfolio, active string) string {
	items := []string{brandStyle.Render("🚀 " + p.Profile.Name)}
	for i, s := range p.Sections {
		label := fmt.Sprintf("%d %s", i+1, s.Label)
		if s.ID == active {
			items = append(items, navActive.Render(label))
		} else {
			items = append(items, navStyle.Render(label))
		}
	}
	return strings.Join(items, "   ")
}

func currentYear() int {
	return time.Now().Year()
}
