package trends

import (
	"encoding/json"
	"strconv"
	"time"
)

// MaxKeywords is the most keywords one comparison accepts
const MaxKeywords = 5

// Properties are the accepted gprop values; empty means web search
var Properties = []string{"", "images", "news", "youtube", "froogle"}

// Payload is the query sent to the explore endpoint
type Payload struct {
	Keywords  []string
	Category  int
	Timeframe string
	Geo       string
	Property  string

	// HostLanguage overrides the client hl for this query when set
	HostLanguage string
}

// comparisonItem is one keyword entry in the explore req parameter
type comparisonItem struct {
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
	Geo     string `json:"geo"`
}

// exploreReq is the JSON encoded req parameter of the explore endpoint
type exploreReq struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

// Widget is one entry of the explore response
// Request is kept raw and sent back verbatim to the widget data endpoints
type Widget struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type exploreResp struct {
	Widgets []Widget `json:"widgets"`
}

// Timeline is the interest over time series for the payload keywords
type Timeline struct {
	Keywords []string
	Points   []Point
}

// Empty reports whether no points came back
func (t Timeline) Empty() bool { return len(t.Points) == 0 }

// Point is one time bucket; Value has one entry per keyword in payload order
type Point struct {
	Time          string `json:"time"`
	FormattedTime string `json:"formattedTime"`
	Value         []int  `json:"value"`
	HasData       []bool `json:"hasData"`
	IsPartial     bool   `json:"isPartial"`
}

// At parses the unix seconds bucket start
func (p Point) At() (time.Time, error) {
	sec, err := strconv.ParseInt(p.Time, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

type multilineResp struct {
	Default struct {
		TimelineData []Point `json:"timelineData"`
	} `json:"default"`
}
