package web

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/lysyi3m/fitbhaskar/app/content"
	"github.com/lysyi3m/fitbhaskar/app/feed"
)

func Home(site *content.Site, videos []feed.Video) g.Node {
	return page(site, "", site.Hero.Subtitle, "/",
		hero(site),
		Section(Class("section"), ID("mission"),
			sectionHeading(site.Mission.Title, ""),
			P(Class("muted"), g.Text(site.Mission.Body)),
		),
		g.If(site.Feature.Title != "", featureSection(site.Feature)),
		g.If(len(videos) > 0, videoSection(site.Channel, videos)),
		timelineSection(site.Timeline),
		sectionsGrid(site.Sections),
		Section(Class("section card"), ID("cta"),
			H2(g.Text(site.CTA.Title)),
			P(Class("muted"), g.Text(site.CTA.Body)),
			actions(site.CTA.Actions),
		),
	)
}

func hero(site *content.Site) g.Node {
	return Section(Class("hero"),
		g.If(site.Hero.Badge != "", Span(Class("badge"), g.Text(site.Hero.Badge))),
		H1(brandName(site)),
		P(Class("muted"), g.Text(site.Hero.Subtitle)),
		g.If(site.Hero.VideoURL != "", backgroundVideo(site.Hero.VideoURL)),
		actions(site.Hero.Actions),
	)
}

func backgroundVideo(src string) g.Node {
	return Video(Src(src),
		g.Attr("autoplay"), g.Attr("muted"), g.Attr("loop"), g.Attr("playsinline"),
		g.Attr("preload", "auto"),
	)
}

func featureSection(f content.Feature) g.Node {
	return Section(Class("section grid"), ID("feature"),
		Div(
			H2(g.Text(f.Title)),
			P(Class("muted"), g.Text(f.Body)),
			g.If(f.Note != "", Small(Class("muted"), g.Text(f.Note))),
		),
		g.If(f.VideoURL != "", Video(Src(f.VideoURL),
			g.Attr("autoplay"), g.Attr("muted"), g.Attr("loop"), g.Attr("playsinline"), g.Attr("controls"),
		)),
	)
}

func actions(links []content.Link) g.Node {
	nodes := make([]g.Node, 0, len(links))
	for i, link := range links {
		class := "button"
		if i > 0 {
			class += " outline"
		}
		nodes = append(nodes, linkButton(link, class), g.Text(" "))
	}
	return Div(Class("actions"), g.Group(nodes))
}

func videoSection(channel content.Channel, videos []feed.Video) g.Node {
	cards := make([]g.Node, 0, len(videos))
	for _, v := range videos {
		cards = append(cards, A(Class("card video"), Href(v.Link), Target("_blank"), Rel("noopener noreferrer"),
			g.If(v.ThumbnailURL != "", Img(Src(v.ThumbnailURL), Alt(v.Title), g.Attr("loading", "lazy"))),
			H3(g.Text(v.Title)),
			g.If(!v.PublishedAt.IsZero(), Small(Class("muted"), g.Text(v.PublishedAt.Format("2 January 2006")))),
		))
	}

	return Section(Class("section"), ID("videos"),
		sectionHeading(channel.Heading, ""),
		Div(Class("grid"), g.Group(cards)),
		g.If(channel.URL != "", P(Class("section-heading"),
			A(Class("button outline"), Href(channel.URL), Target("_blank"), Rel("noopener noreferrer"), g.Text("Watch on YouTube")),
		)),
	)
}

func timelineSection(timeline []content.Milestone) g.Node {
	items := make([]g.Node, 0, len(timeline))
	for _, m := range timeline {
		items = append(items, Li(Class("card"),
			Span(Class("accent"), g.Text(m.Year)),
			H3(g.Text(m.Title)),
			P(Class("muted"), g.Text(m.Description)),
		))
	}

	return Section(Class("section"), ID("timeline"),
		sectionHeading("Transformation Timeline", ""),
		Ol(Class("timeline"), g.Group(items)),
	)
}

func sectionsGrid(sections []content.SectionTile) g.Node {
	tiles := make([]g.Node, 0, len(sections))
	for _, s := range sections {
		tiles = append(tiles, A(Class("card tile"), Href(s.Path),
			g.If(s.Icon != "", Span(Class("icon"), g.Text(s.Icon))),
			H3(g.Text(s.Title)),
			P(Class("muted"), g.Text(s.Description)),
			Span(Class("accent"), g.Text("Explore →")),
		))
	}

	return Section(Class("section"), ID("sections"),
		sectionHeading("Explore Sections", ""),
		Div(Class("grid"), g.Group(tiles)),
	)
}
