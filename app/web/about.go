package web

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/lysyi3m/fitbhaskar/app/content"
)

func About(site *content.Site) g.Node {
	a := site.About

	return page(site, "About", a.Subtitle, "/about",
		Section(Class("section"), ID("intro"),
			sectionHeading(a.Title, a.Subtitle),
			paragraphs(a.Intro),
		),
		g.If(len(a.Stats) > 0, statsSection(a.Stats)),
		g.If(len(a.DailyRoutine) > 0, routineSection(a)),
		g.If(len(a.Rules) > 0, listSection("rules", "My Rules", "Non-negotiable principles that guide my fitness journey", a.Rules)),
		g.If(len(a.Reasons) > 0, listSection("reasons", "Why I Created This Site", "", a.Reasons)),
		g.If(a.Quote != "", Section(Class("section"), ID("motivation"),
			sectionHeading("What Keeps Me Going", ""),
			BlockQuote(g.Text(a.Quote)),
			g.If(a.Motivation != "", P(Class("muted"), g.Text(a.Motivation))),
		)),
	)
}

func paragraphs(texts []string) g.Node {
	nodes := make([]g.Node, 0, len(texts))
	for _, text := range texts {
		nodes = append(nodes, P(g.Text(text)))
	}
	return g.Group(nodes)
}

func statsSection(stats []content.Stat) g.Node {
	cards := make([]g.Node, 0, len(stats))
	for _, s := range stats {
		cards = append(cards, Div(Class("card stat"),
			Strong(Class("accent"), g.Text(s.Value)),
			P(Class("muted"), g.Text(s.Label)),
		))
	}
	return Section(Class("section grid"), ID("stats"), g.Group(cards))
}

func routineSection(a content.About) g.Node {
	slots := make([]g.Node, 0, len(a.DailyRoutine))
	for _, slot := range a.DailyRoutine {
		slots = append(slots, Li(Class("card"),
			Span(Class("muted"), g.Text(slot.Time)), g.Text(" "),
			g.If(slot.Icon != "", Span(g.Text(slot.Icon+" "))),
			Strong(g.Text(slot.Activity)),
		))
	}

	groups := make([]g.Node, 0, len(a.RoutineSections))
	for _, section := range a.RoutineSections {
		items := make([]g.Node, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, Li(g.Text(item)))
		}
		groups = append(groups, Div(Class("card"),
			H3(g.Text(section.Title)),
			Ul(g.Group(items)),
		))
	}

	return Section(Class("section"), ID("routine"),
		sectionHeading("Daily Routine", a.RoutineSubtitle),
		Ol(Class("routine"), g.Group(slots)),
		g.If(len(groups) > 0, Div(Class("grid"), g.Group(groups))),
	)
}

func listSection(id, title, subtitle string, entries []string) g.Node {
	items := make([]g.Node, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Li(Class("card"), Span(Class("accent"), g.Text("✓ ")), g.Text(entry)))
	}
	return Section(Class("section"), ID(id),
		sectionHeading(title, subtitle),
		Ul(Class("grid"), g.Group(items)),
	)
}
