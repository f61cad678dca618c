package content

import "github.com/lysyi3m/fitbhaskar/app/feed"

// Site is every piece of editable copy the pages render.
type Site struct {
	Brand    Brand         `yaml:"brand"`
	Hero     Hero          `yaml:"hero"`
	Mission  Block         `yaml:"mission"`
	Feature  Feature       `yaml:"feature"`
	Timeline []Milestone   `yaml:"timeline"`
	Sections []SectionTile `yaml:"sections"`
	CTA      CTA           `yaml:"cta"`
	Channel  Channel       `yaml:"channel"`
	About    About         `yaml:"about"`
	Blog     BlogCopy      `yaml:"blog"`
}

type Brand struct {
	Name     string `yaml:"name"`
	Accent   string `yaml:"accent"`
	Language string `yaml:"language"`
}

type Link struct {
	Label    string `yaml:"label"`
	URL      string `yaml:"url"`
	External bool   `yaml:"external"`
}

type Hero struct {
	Badge    string `yaml:"badge"`
	Subtitle string `yaml:"subtitle"`
	VideoURL string `yaml:"video_url"`
	Actions  []Link `yaml:"actions"`
}

type Block struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Feature struct {
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
	Note     string `yaml:"note"`
	VideoURL string `yaml:"video_url"`
}

type Milestone struct {
	Year        string `yaml:"year"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type SectionTile struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Path        string `yaml:"path"`
	Icon        string `yaml:"icon"`
}

type CTA struct {
	Title   string `yaml:"title"`
	Body    string `yaml:"body"`
	Actions []Link `yaml:"actions"`
}

// Channel configures the "latest videos" strip on the Home page.
type Channel struct {
	URL       string            `yaml:"url"`
	Heading   string            `yaml:"heading"`
	MaxVideos int               `yaml:"max_videos"`
	Filters   []feed.FilterRule `yaml:"filters"`
}

type About struct {
	Title           string           `yaml:"title"`
	Subtitle        string           `yaml:"subtitle"`
	Intro           []string         `yaml:"intro"`
	Stats           []Stat           `yaml:"stats"`
	RoutineSubtitle string           `yaml:"routine_subtitle"`
	DailyRoutine    []RoutineSlot    `yaml:"daily_routine"`
	RoutineSections []RoutineSection `yaml:"routine_sections"`
	Rules           []string         `yaml:"rules"`
	Reasons         []string         `yaml:"reasons"`
	Quote           string           `yaml:"quote"`
	Motivation      string           `yaml:"motivation"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type RoutineSlot struct {
	Time     string `yaml:"time"`
	Activity string `yaml:"activity"`
	Icon     string `yaml:"icon"`
}

type RoutineSection struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

type BlogCopy struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}
