package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	StatusSuccess = "success"

	ApprovedYes = "Yes"
	ApprovedNo  = "No"

	actionApprove = "approve"
)

type Op string

const (
	OpList      Op = "list"
	OpAdminList Op = "admin_list"
	OpSubmit    Op = "submit"
	OpApprove   Op = "approve"
)

// LooseValue holds a JSON scalar of any type the spreadsheet script may emit.
// Truthiness follows the script's own conventions: "", null, false and 0 are
// empty; everything else has a value.
type LooseValue struct {
	text   string
	num    float64
	isNum  bool
	truthy bool
}

// Loose builds a string-valued LooseValue.
func Loose(s string) LooseValue {
	return LooseValue{text: s, truthy: s != ""}
}

// LooseNumber builds a number-valued LooseValue.
func LooseNumber(n float64) LooseValue {
	return LooseValue{
		text:   strconv.FormatFloat(n, 'f', -1, 64),
		num:    n,
		isNum:  true,
		truthy: n != 0,
	}
}

func (v *LooseValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = LooseValue{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("failed to decode string value: %w", err)
		}
		*v = Loose(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return fmt.Errorf("failed to decode boolean value: %w", err)
		}
		*v = LooseValue{text: strconv.FormatBool(b), truthy: b}
		if b {
			v.num = 1
		}
	case '{', '[':
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return fmt.Errorf("failed to decode composite value: %w", err)
		}
		*v = LooseValue{text: compact.String(), truthy: true}
	default:
		n, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return fmt.Errorf("failed to decode number value: %w", err)
		}
		*v = LooseNumber(n)
	}

	return nil
}

func (v LooseValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

func (v LooseValue) String() string {
	return v.text
}

func (v LooseValue) Truthy() bool {
	return v.truthy
}

// Int converts the value the way the script's row ids are read: numbers are
// truncated, numeric strings are parsed, anything else is 0.
func (v LooseValue) Int() int {
	if v.isNum {
		return int(v.num)
	}
	if v.text == "true" && v.truthy {
		return 1
	}

	s := strings.TrimSpace(v.text)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// RawPost is a post record exactly as the gateway returns it. Older sheet
// revisions used date/author/title, so those columns are kept as fallbacks.
type RawPost struct {
	Row      LooseValue `json:"row"`
	DateTime LooseValue `json:"dateTime"`
	Date     LooseValue `json:"date"`
	Email    LooseValue `json:"email"`
	Name     LooseValue `json:"name"`
	Author   LooseValue `json:"author"`
	Subject  LooseValue `json:"subject"`
	Title    LooseValue `json:"title"`
	Content  LooseValue `json:"content"`
	Approved LooseValue `json:"approved"`
}

type ListResponse struct {
	Posts   []RawPost `json:"posts"`
	Status  string    `json:"status,omitempty"`
	Message string    `json:"message,omitempty"`
}

type WriteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Credentials are attached to every privileged gateway call.
type Credentials struct {
	ID   string
	Pass string
}

func (c Credentials) Empty() bool {
	return c.ID == "" || c.Pass == ""
}

type Submission struct {
	Name    string
	Email   string
	Subject string
	Content string
}
