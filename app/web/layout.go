package web

import (
	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	. "github.com/maragudk/gomponents/html"

	"github.com/lysyi3m/fitbhaskar/app/content"
)

type navItem struct {
	label string
	path  string
}

var navItems = []navItem{
	{"Home", "/"},
	{"About", "/about"},
	{"Blog", "/blog"},
}

// page wraps body in the shared document chrome. active is the path of the
// current nav item.
func page(site *content.Site, title, description, active string, body ...g.Node) g.Node {
	fullTitle := site.Brand.Name
	if title != "" {
		fullTitle = title + " | " + site.Brand.Name
	}

	return c.HTML5(c.HTML5Props{
		Title:       fullTitle,
		Description: description,
		Language:    site.Brand.Language,
		Head: []g.Node{
			Link(Rel("alternate"), Type("application/rss+xml"), Href("/blog/feed.xml")),
			g.El("style", g.Raw(stylesheet)),
		},
		Body: []g.Node{
			navBar(site, active),
			Main(Class("page"), g.Group(body)),
			footer(site),
		},
	})
}

func navBar(site *content.Site, active string) g.Node {
	links := make([]g.Node, 0, len(navItems))
	for _, item := range navItems {
		class := "nav-link"
		if item.path == active {
			class += " active"
		}
		links = append(links, A(Class(class), Href(item.path), g.Text(item.label)))
	}

	return Nav(Class("nav"),
		A(Class("brand"), Href("/"), brandName(site)),
		Div(Class("nav-links"), g.Group(links)),
	)
}

// brandName highlights the accent suffix of the brand, e.g. TheFit + Bhaskar.
func brandName(site *content.Site) g.Node {
	name, accent := site.Brand.Name, site.Brand.Accent
	if accent == "" || len(accent) >= len(name) || name[len(name)-len(accent):] != accent {
		return g.Text(name)
	}
	return g.Group([]g.Node{
		g.Text(name[:len(name)-len(accent)]),
		Span(Class("accent"), g.Text(accent)),
	})
}

func footer(site *content.Site) g.Node {
	return Footer(Class("footer"),
		P(g.Text(site.Brand.Name)),
		g.If(site.Channel.URL != "",
			A(Href(site.Channel.URL), Target("_blank"), Rel("noopener noreferrer"), g.Text("YouTube")),
		),
		A(Href("/blog/feed.xml"), g.Text("RSS")),
	)
}

func linkButton(link content.Link, class string) g.Node {
	if link.External {
		return A(Class(class), Href(link.URL), Target("_blank"), Rel("noopener noreferrer"), g.Text(link.Label))
	}
	return A(Class(class), Href(link.URL), g.Text(link.Label))
}

func sectionHeading(title, subtitle string) g.Node {
	return Header(Class("section-heading"),
		H2(g.Text(title)),
		g.If(subtitle != "", P(Class("muted"), g.Text(subtitle))),
	)
}

const stylesheet = `
:root { --primary: #ff6a1a; --bg: #0e0e10; --card: #17171a; --fg: #f4f4f5; --muted: #a1a1aa; --border: #2a2a2e; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.6; }
a { color: inherit; }
.nav { display: flex; justify-content: space-between; align-items: center; padding: 1rem 1.5rem; border-bottom: 1px solid var(--border); }
.brand { font-weight: 800; font-size: 1.4rem; text-decoration: none; }
.accent { color: var(--primary); }
.nav-link { margin-left: 1rem; text-decoration: none; color: var(--muted); }
.nav-link.active { color: var(--primary); }
.page { max-width: 64rem; margin: 0 auto; padding: 1.5rem; }
.section { padding: 3rem 0; }
.section-heading { text-align: center; margin-bottom: 2rem; }
.muted { color: var(--muted); }
.card { background: var(--card); border: 1px solid var(--border); border-radius: 0.75rem; padding: 1.25rem; margin-bottom: 1rem; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(16rem, 1fr)); gap: 1rem; }
.button { display: inline-block; padding: 0.6rem 1.2rem; border-radius: 0.5rem; background: var(--primary); color: #fff; text-decoration: none; border: 0; cursor: pointer; }
.button.outline { background: transparent; border: 1px solid var(--primary); color: var(--primary); }
.hero { text-align: center; padding: 4rem 0; }
.hero video { width: 100%; max-height: 24rem; object-fit: cover; border-radius: 1rem; }
.badge { display: inline-block; padding: 0.2rem 0.7rem; border-radius: 999px; font-size: 0.8rem; }
.badge.approved { background: #14532d; color: #bbf7d0; }
.badge.hidden { background: #7f1d1d; color: #fecaca; }
.notice { padding: 1rem; border-radius: 0.5rem; margin-bottom: 1.5rem; }
.notice.success { background: #14532d; }
.notice.error { background: #7f1d1d; }
.notice.info { background: #1e3a8a; }
form label { display: block; margin: 0.75rem 0 0.25rem; }
form input, form textarea { width: 100%; padding: 0.6rem; border-radius: 0.5rem; border: 1px solid var(--border); background: var(--bg); color: var(--fg); }
.footer { text-align: center; padding: 2rem; border-top: 1px solid var(--border); color: var(--muted); }
.footer a { margin: 0 0.5rem; }
blockquote { font-size: 1.3rem; font-style: italic; border-left: 4px solid var(--primary); padding-left: 1rem; }
`
