package web

import (
	"fmt"
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/lysyi3m/fitbhaskar/app/blog"
	"github.com/lysyi3m/fitbhaskar/app/content"
	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is the toast shown at the top of the blog page after an action.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

type AdminView struct {
	LoggedIn bool
	AdminID  string
	Posts    []blog.Post
}

type BlogView struct {
	Site     *content.Site
	Posts    []blog.Post
	Fallback bool
	Notice   *Notice
	Form     blog.SubmissionForm
	Admin    AdminView
}

const emptyFeedMessage = "No blog posts yet. Be the first to share your story!"

func Blog(v BlogView) g.Node {
	return page(v.Site, v.Site.Blog.Title, v.Site.Blog.Description, "/blog",
		Section(Class("section"),
			sectionHeading(v.Site.Blog.Title, v.Site.Blog.Description),
			g.Iff(v.Notice != nil, func() g.Node { return notice(v.Notice) }),
		),
		Div(Class("grid"),
			feedColumn(v.Posts, v.Fallback),
			submissionForm(v.Form),
		),
		adminPanel(v.Admin),
	)
}

func notice(n *Notice) g.Node {
	return Div(Class("notice "+string(n.Kind)), g.Attr("role", "status"),
		Strong(g.Text(n.Title)),
		g.If(n.Message != "", P(g.Text(n.Message))),
	)
}

func feedColumn(posts []blog.Post, fallback bool) g.Node {
	if len(posts) == 0 {
		return Section(ID("feed"), P(Class("card muted"), g.Text(emptyFeedMessage)))
	}

	articles := make([]g.Node, 0, len(posts))
	for _, post := range posts {
		articles = append(articles, postCard(post))
	}

	return Section(ID("feed"),
		g.If(fallback, P(Class("muted"), g.Text("Showing sample stories while the community feed is unavailable."))),
		g.Group(articles),
	)
}

func postCard(post blog.Post) g.Node {
	return Article(Class("card post"), ID(fmt.Sprintf("post-%d", post.Row)),
		H3(g.Text(post.Subject)),
		P(Class("muted"),
			g.Text(post.Name), g.Text(" · "),
			g.Text(post.FormattedDate()), g.Text(" · "),
			g.Text(readingTime(post.ReadingTime())),
		),
		P(Class("content"), g.Text(post.Content)),
	)
}

func submissionForm(form blog.SubmissionForm) g.Node {
	return Section(ID("submit"), Class("card"),
		H3(g.Text("Share Your Story")),
		Form(Method("post"), Action("/blog/submit"),
			field("name", "Your Name", "text", form.Name),
			field("email", "Email", "email", form.Email),
			field("subject", "Title", "text", form.Subject),
			Label(For("content"), g.Text("Your Story")),
			Textarea(ID("content"), Name("content"), Rows("6"), g.Attr("required"),
				Placeholder("Tell us about your fitness journey..."),
				g.Text(form.Content),
			),
			Button(Class("button"), Type("submit"), g.Text("Submit Blog")),
		),
	)
}

func field(name, label, inputType, value string) g.Node {
	return g.Group([]g.Node{
		Label(For(name), g.Text(label)),
		Input(ID(name), Name(name), Type(inputType), Value(value), g.Attr("required")),
	})
}

func adminPanel(admin AdminView) g.Node {
	if !admin.LoggedIn {
		return Section(Class("section card"), ID("admin"),
			H3(g.Text("Admin Login")),
			Form(Method("post"), Action("/blog/admin/login"),
				field("adminId", "Admin ID", "text", ""),
				field("adminPass", "Password", "password", ""),
				Button(Class("button"), Type("submit"), g.Text("Login")),
			),
		)
	}

	rows := make([]g.Node, 0, len(admin.Posts))
	for _, post := range admin.Posts {
		rows = append(rows, adminRow(post))
	}

	return Section(Class("section card"), ID("admin"),
		H3(g.Text("Moderation Panel")),
		P(Class("muted"), g.Text("Logged in as "+admin.AdminID)),
		Div(Class("actions"),
			Form(Method("post"), Action("/blog/admin/refresh"),
				Button(Class("button outline"), Type("submit"), g.Text("Refresh")),
			),
			Form(Method("post"), Action("/blog/admin/logout"),
				Button(Class("button outline"), Type("submit"), g.Text("Logout")),
			),
		),
		P(Class("muted"), g.Text(SubmissionCount(len(admin.Posts)))),
		g.Group(rows),
	)
}

func adminRow(post blog.Post) g.Node {
	badgeClass := "badge hidden"
	if post.IsApproved() {
		badgeClass = "badge approved"
	}

	return Article(Class("card admin-post"),
		H3(g.Text(post.Subject)),
		Span(Class(badgeClass), g.Text(post.Badge())),
		P(Class("muted"),
			g.Text(post.Name),
			g.If(post.Email != "", g.Text(" <"+post.Email+">")),
			g.Text(" · "+post.FormattedDate()),
			g.Text(" · row "+strconv.Itoa(post.Row)),
		),
		P(g.Text(post.Content)),
		Div(Class("actions"),
			approvalButton(post.Row, gateway.ApprovedYes, "Approve (Yes)", "button"),
			approvalButton(post.Row, gateway.ApprovedNo, "Hide (No)", "button outline"),
		),
	)
}

func approvalButton(row int, value, label, class string) g.Node {
	return Form(Method("post"), Action("/blog/admin/approve"),
		Input(Type("hidden"), Name("row"), Value(strconv.Itoa(row))),
		Input(Type("hidden"), Name("approved"), Value(value)),
		Button(Class(class), Type("submit"), g.Text(label)),
	)
}
