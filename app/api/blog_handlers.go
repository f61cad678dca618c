package api

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/fitbhaskar/app/blog"
	"github.com/lysyi3m/fitbhaskar/app/cfg"
	"github.com/lysyi3m/fitbhaskar/app/gateway"
	"github.com/lysyi3m/fitbhaskar/app/web"
)

// blogPage collects what one render of the blog page needs. Handlers fill
// in what their action changed; the rest is loaded on render.
type blogPage struct {
	status  int
	public  *blog.LoadResult
	session *blog.AdminSession
	notice  *web.Notice
	form    blog.SubmissionForm
}

func (h *Handler) GetBlog(c *gin.Context) {
	h.renderBlog(c, blogPage{session: h.currentSession(c)})
}

func (h *Handler) PostSubmission(c *gin.Context) {
	var form blog.SubmissionForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("Invalid submission form", "error", err)
	}

	result := h.submitter.Submit(c.Request.Context(), &form)

	page := blogPage{
		session: h.currentSession(c),
		form:    form,
		notice:  &web.Notice{Kind: web.NoticeSuccess, Title: result.Title, Message: result.Message},
	}

	switch {
	case result.Outcome == blog.OutcomeInvalid:
		page.status = http.StatusBadRequest
		page.notice.Kind = web.NoticeError
	case result.Outcome == blog.OutcomeFailed && !result.Masked:
		page.status = http.StatusBadGateway
		page.notice.Kind = web.NoticeError
	}

	h.renderBlog(c, page)
}

func (h *Handler) PostAdminLogin(c *gin.Context) {
	session, err := h.moderator.Login(c.Request.Context(), c.PostForm("adminId"), c.PostForm("adminPass"))
	if err != nil {
		page := blogPage{status: http.StatusBadGateway, notice: &web.Notice{
			Kind:    web.NoticeError,
			Title:   "Could not load submissions",
			Message: "Please verify credentials or try again in a moment.",
		}}

		switch {
		case errors.Is(err, blog.ErrCredentialsRequired):
			page.status = http.StatusBadRequest
			page.notice.Title = "Admin login required"
			page.notice.Message = "Enter your Admin ID and password to load submissions."
		case gateway.IsRejection(err):
			page.status = http.StatusUnauthorized
			page.notice.Message = cmp.Or(gateway.RejectionMessage(err), page.notice.Message)
		}

		h.renderBlog(c, page)
		return
	}

	h.setSessionCookie(c, session.Token)

	h.renderBlog(c, blogPage{session: session, notice: &web.Notice{
		Kind:    web.NoticeSuccess,
		Title:   "Admin view loaded",
		Message: web.SubmissionCount(len(session.Posts())),
	}})
}

func (h *Handler) PostAdminLogout(c *gin.Context) {
	h.moderator.Logout(h.currentSession(c))
	h.clearSessionCookie(c)

	h.renderBlog(c, blogPage{notice: &web.Notice{
		Kind:    web.NoticeInfo,
		Title:   "Logged out",
		Message: "Admin access cleared from this device.",
	}})
}

func (h *Handler) PostAdminRefresh(c *gin.Context) {
	session := h.currentSession(c)
	if session == nil {
		h.renderLoginRequired(c)
		return
	}

	if err := h.moderator.Refresh(c.Request.Context(), session); err != nil {
		h.renderBlog(c, blogPage{status: http.StatusBadGateway, session: session, notice: &web.Notice{
			Kind:    web.NoticeError,
			Title:   "Could not load submissions",
			Message: "Please verify credentials or try again in a moment.",
		}})
		return
	}

	h.renderBlog(c, blogPage{session: session, notice: &web.Notice{
		Kind:    web.NoticeSuccess,
		Title:   "Admin view loaded",
		Message: web.SubmissionCount(len(session.Posts())),
	}})
}

func (h *Handler) PostAdminApproval(c *gin.Context) {
	session := h.currentSession(c)
	if session == nil {
		h.renderLoginRequired(c)
		return
	}

	approved := strings.TrimSpace(c.PostForm("approved"))
	row, err := strconv.Atoi(strings.TrimSpace(c.PostForm("row")))
	if err != nil || row <= 0 {
		approved = ""
	}

	public, err := h.moderator.SetApproval(c.Request.Context(), session, row, approved)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, blog.ErrInvalidApproval) {
			status = http.StatusBadRequest
		}

		h.renderBlog(c, blogPage{status: status, session: session, notice: &web.Notice{
			Kind:    web.NoticeError,
			Title:   "Update failed",
			Message: "Could not update the row. Please verify credentials and try again.",
		}})
		return
	}

	h.renderBlog(c, blogPage{public: &public, session: session, notice: &web.Notice{
		Kind:    web.NoticeSuccess,
		Title:   "Marked as " + approved,
		Message: fmt.Sprintf("Row %d updated in the sheet.", row),
	}})
}

// renderLoginRequired answers a privileged action without a session. The
// gateway is never contacted.
func (h *Handler) renderLoginRequired(c *gin.Context) {
	h.clearSessionCookie(c)

	h.renderBlog(c, blogPage{status: http.StatusUnauthorized, notice: &web.Notice{
		Kind:    web.NoticeError,
		Title:   "Login to manage posts",
		Message: "Enter admin credentials to approve or hide posts.",
	}})
}

func (h *Handler) renderBlog(c *gin.Context, p blogPage) {
	if p.public == nil {
		result := h.feed.LoadApprovedPosts(c.Request.Context())
		p.public = &result
	}

	view := web.BlogView{
		Site:     h.site,
		Posts:    p.public.Posts,
		Fallback: p.public.Fallback,
		Notice:   p.notice,
		Form:     p.form,
	}

	if p.session != nil {
		view.Admin = web.AdminView{
			LoggedIn: true,
			AdminID:  p.session.AdminID(),
			Posts:    p.session.Posts(),
		}
	}

	h.render(c, cmp.Or(p.status, http.StatusOK), web.Blog(view))
}

func (h *Handler) currentSession(c *gin.Context) *blog.AdminSession {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return nil
	}
	return h.moderator.Session(token)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, 0, "/blog", "", secureCookies(), true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/blog", "", secureCookies(), true)
}

func secureCookies() bool {
	return strings.HasPrefix(cfg.Get().BaseUrl, "https://")
}

// rateLimit throttles submissions per client IP. Rejected requests get the
// blog page back with the form intact.
func (h *Handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		slog.Warn("Submission rate limited", "client_ip", c.ClientIP())

		var form blog.SubmissionForm
		if err := c.ShouldBind(&form); err != nil {
			slog.Warn("Invalid submission form", "error", err)
		}

		h.renderBlog(c, blogPage{status: http.StatusTooManyRequests, session: h.currentSession(c), form: form, notice: &web.Notice{
			Kind:    web.NoticeError,
			Title:   "Slow down",
			Message: "You have sent several stories in a short time. Please wait a minute and try again.",
		}})
		c.Abort()
	}
}

// SweepLimiters drops rate limit buckets of clients that went quiet.
func (h *Handler) SweepLimiters() int {
	return h.limiter.Sweep(limiterIdle)
}
