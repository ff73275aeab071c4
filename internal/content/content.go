// Package content holds the hardcoded copy shown on the portfolio.
package content

// Section ids double as anchor ids on the page and as tracker region ids.
const (
	SectionHome       = "home"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionExperience = "experience"
	SectionContact    = "contact"
)

type Socials struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Email    string `json:"email"`
}

type Profile struct {
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Blurb     string  `json:"blurb"`
	Location  string  `json:"location"`
	Email     string  `json:"email"`
	ResumeURL string  `json:"resume_url"`
	Socials   Socials `json:"socials"`
}

type Links struct {
	Live   string `json:"live"`
	GitHub string `json:"github"`
}

type Project struct {
	Title       string `json:"title"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Links       Links  `json:"links"`
	Image       string `json:"image"`
}

type Experience struct {
	Role   string   `json:"role"`
	Org    string   `json:"org"`
	Period string   `json:"period"`
	Points []string `json:"points"`
}

type HeroCard struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Portfolio bundles everything the page renders.
type Portfolio struct {
	Profile     Profile      `json:"profile"`
	Headline    string       `json:"headline"`
	Badge       string       `json:"badge"`
	HeroCards   []HeroCard   `json:"hero_cards"`
	SkillsIntro string       `json:"skills_intro"`
	Skills      []string     `json:"skills"`
	Projects    []Project    `json:"projects"`
	Experiences []Experience `json:"experiences"`
	ContactHead string       `json:"contact_heading"`
	ContactText string       `json:"contact_text"`
	Sections    []Section    `json:"sections"`
}

// Section returns the nav entry for id.
func (p Portfolio) Section(id string) (Section, bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// SectionIDs lists section ids in page order.
func (p Portfolio) SectionIDs() []string {
	ids := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// Default returns the site's content. Each call returns fresh slices.
func Default() Portfolio {
	return Portfolio{
		Profile: Profile{
			Name: "Bonhomie",
			Role: "Full‑Stack Web & Mobile Developer",
			Blurb: "I design, build, and ship **fast, scalable apps** with delightful UX: " +
				"React, Node, React Native, and AI integrations.",
			Location:  "Lagos, Nigeria",
			Email:     "adeyemibabatundejoseph@gmail.com",
			ResumeURL: "https://bonhomie.dev/resume.pdf",
			Socials: Socials{
				GitHub:   "https://github.com/bonhomie95",
				LinkedIn: "https://www.linkedin.com/in/adeyemi-joseph-770a55244",
				Email:    "mailto:adeyemibabatundejoseph@gmail.com",
			},
		},
		Headline: "Building fast, beautiful apps that scale.",
		Badge:    "Available for select projects",
		HeroCards: []HeroCard{
			{Icon: "globe", Title: "Web Apps", Text: "React/Next.js frontends with Node/Express APIs, production‑grade."},
			{Icon: "smartphone", Title: "Mobile", Text: "React Native (Expo) with smooth animations and secure wallet flows."},
			{Icon: "play-circle", Title: "AI & Automation", Text: "OpenAI/Ollama integrations, background jobs, and content pipelines."},
		},
		SkillsIntro: "Pragmatic, performance‑first approach with a clean architecture mindset and testing discipline.",
		Skills: []string{
			"React",
			"Next.js",
			"TypeScript",
			"Node.js",
			"Express",
			"MongoDB",
			"PostgreSQL",
			"React Native (Expo)",
			"TailwindCSS",
			"Framer Motion",
			"Socket.IO",
			"Redis",
			"Docker",
			"Nginx",
			"CI/CD",
			"Stripe & AdMob",
			"OpenAI / LangChain / Ollama",
		},
		Projects: []Project{
			{
				Title:       "QuizMint",
				Tag:         "React Native • Node • MongoDB",
				Description: "Crypto‑reward trivia game with streaks, live leaderboards, PIN‑secured wallet, and animated quiz UX.",
				Links:       Links{Live: "#", GitHub: "#"},
				Image:       "https://images.unsplash.com/photo-1558655146-d09347e92766?q=80&w=1200&auto=format&fit=crop",
			},
			{
				Title:       "Property Wey International",
				Tag:         "React • Node • Cloudinary",
				Description: "Modern real‑estate marketplace with verified listings, quality checks, Cloudinary pipeline, and maps.",
				Links:       Links{Live: "#", GitHub: "#"},
				Image:       "https://images.unsplash.com/photo-1502005229762-cf1b2da7c52f?q=80&w=1200&auto=format&fit=crop",
			},
			{
				Title:       "Vanta (ResumeGPT)",
				Tag:         "React • Node • AI • LangChain",
				Description: "AI‑powered resume optimizer and job matcher with interview coach and offer negotiation tools.",
				Links:       Links{Live: "#", GitHub: "#"},
				Image:       "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?q=80&w=1200&auto=format&fit=crop",
			},
		},
		Experiences: []Experience{
			{
				Role:   "Lead Full‑Stack Developer",
				Org:    "Bonhomie Inc.",
				Period: "2023 — Present",
				Points: []string{
					"Shipped 30+ web/mobile apps focusing on performance, DX, and monetization.",
					"Scaled Node + MongoDB backends to thousands of daily users with CI/CD and containerization.",
					"Integrated AI for content generation, analytics, and automation (OpenAI, Ollama).",
				},
			},
			{
				Role:   "Senior Frontend Engineer (Contract)",
				Org:    "The House of Sounds",
				Period: "2002 — 2023",
				Points: []string{
					"Developed and maintained full stack web applications using JavaScript.",
					"Collaborated with cross-functional teams to gather requirements and deliver high-quality software solutions.",
					"Utilized back-end frameworks such as Nodejs, designed and optimized databases using MongoDB, MySQL, and PostgreSQL.",
				},
			},
		},
		ContactHead: "Let’s build something great",
		ContactText: "Briefly describe your idea, timeline, and budget. I typically reply within 24 hours.",
		Sections: []Section{
			{ID: SectionHome, Label: "Home"},
			{ID: SectionSkills, Label: "Skills"},
			{ID: SectionProjects, Label: "Projects"},
			{ID: SectionExperience, Label: "Experience"},
			{ID: SectionContact, Label: "Contact"},
		},
	}
}
