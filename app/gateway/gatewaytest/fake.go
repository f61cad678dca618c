// Package gatewaytest provides an in-process stand-in for the spreadsheet
// gateway, speaking the same wire format.
package gatewaytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

type Row struct {
	Row      int    `json:"row"`
	DateTime string `json:"dateTime,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Content  string `json:"content,omitempty"`
	Approved string `json:"approved"`
}

type Call struct {
	Method string
	Query  map[string]string
	Form   map[string]string
}

// Fake serves GET listings and POST submissions/approvals from memory.
// Unauthenticated listings return every row, exactly like the real script;
// filtering is the client's job.
type Fake struct {
	Server *httptest.Server

	AdminID   string
	AdminPass string

	mu       sync.Mutex
	rows     []Row
	calls    []Call
	down     bool
	status   string
	message  string
	rawBody  string
	postHook func(form map[string]string)
}

func New(rows ...Row) *Fake {
	f := &Fake{
		AdminID:   "admin",
		AdminPass: "secret",
		rows:      rows,
		status:    "success",
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *Fake) URL() string {
	return f.Server.URL + "/exec"
}

func (f *Fake) Close() {
	f.Server.Close()
}

// SetDown makes every call fail with HTTP 503.
func (f *Fake) SetDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

// SetWriteStatus controls the status/message pair returned by POST calls.
func (f *Fake) SetWriteStatus(status, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.message = message
}

// SetRawBody makes every call answer 200 with body verbatim.
func (f *Fake) SetRawBody(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawBody = body
}

func (f *Fake) OnPost(hook func(form map[string]string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postHook = hook
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *Fake) Rows() []Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Row, len(f.rows))
	copy(out, f.rows)
	return out
}

func (f *Fake) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	call := Call{Method: r.Method, Query: flatten(r.URL.Query()), Form: flatten(r.PostForm)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	down, rawBody, hook := f.down, f.rawBody, f.postHook
	f.mu.Unlock()

	if down {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if rawBody != "" {
		w.Write([]byte(rawBody))
		return
	}

	switch r.Method {
	case http.MethodGet:
		f.list(w, call.Query)
	case http.MethodPost:
		if hook != nil {
			hook(call.Form)
		}
		f.write(w, call.Form)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (f *Fake) list(w http.ResponseWriter, query map[string]string) {
	if _, ok := query["adminId"]; ok && !f.authorized(query) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Invalid admin credentials"})
		return
	}

	f.mu.Lock()
	rows := make([]Row, len(f.rows))
	copy(rows, f.rows)
	f.mu.Unlock()

	json.NewEncoder(w).Encode(map[string]any{"posts": rows})
}

func (f *Fake) write(w http.ResponseWriter, form map[string]string) {
	f.mu.Lock()
	status, message := f.status, f.message
	f.mu.Unlock()

	if status != "success" {
		json.NewEncoder(w).Encode(map[string]string{"status": status, "message": message})
		return
	}

	if form["action"] == "approve" {
		if !f.authorized(form) {
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Invalid admin credentials"})
			return
		}
		row, _ := strconv.Atoi(form["row"])
		f.mu.Lock()
		for i := range f.rows {
			if f.rows[i].Row == row {
				f.rows[i].Approved = form["approved"]
			}
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Row updated"})
		return
	}

	f.mu.Lock()
	next := len(f.rows) + 2
	f.rows = append(f.rows, Row{
		Row:      next,
		Email:    form["email"],
		Name:     form["name"],
		Subject:  form["subject"],
		Content:  form["content"],
		Approved: "No",
	})
	f.mu.Unlock()

	resp := map[string]string{"status": "success"}
	if message != "" {
		resp["message"] = message
	}
	json.NewEncoder(w).Encode(resp)
}

func (f *Fake) authorized(values map[string]string) bool {
	return strings.TrimSpace(values["adminId"]) == f.AdminID && strings.TrimSpace(values["adminPass"]) == f.AdminPass
}

func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
