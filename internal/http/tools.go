// v0
// internal/http/tools.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"pewpewworld/statsboard/internal/colorcode"
	"pewpewworld/statsboard/internal/metrics"
	"pewpewworld/statsboard/internal/score"
)

// colorsResponse is the decoded form of a colour-coded string.
type colorsResponse struct {
	Plain    string         `json:"plain"`
	Segments []colorSegment `json:"segments"`
}

type colorSegment struct {
	Text string          `json:"text"`
	Hex  string          `json:"hex"`
	CSS  string          `json:"css"`
	RGBA colorcode.Color `json:"rgba"`
}

type timeResponse struct {
	Ticks int64  `json:"ticks"`
	Time  string `json:"time"`
}

type pointsResponse struct {
	Players int     `json:"n"`
	Rank    int     `json:"r"`
	Points  float64 `json:"points"`
	Display string  `json:"display"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// colorsHandler decodes ?text= into segments. The optional ?background=
// (dark or light) pulls each colour into a readable lightness band.
func colorsHandler(logger *slog.Logger, m *metrics.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		raw := q.Get("text")

		var adjust func(colorcode.Color) colorcode.Color
		switch bg := strings.ToLower(strings.TrimSpace(q.Get("background"))); bg {
		case "":
		case "dark", "light":
			dark := bg == "dark"
			adjust = func(c colorcode.Color) colorcode.Color {
				return colorcode.AdjustForBackground(c, dark)
			}
		default:
			m.IncToolRejected(metrics.ToolColors)
			writeJSON(logger, w, http.StatusBadRequest, errorResponse{Error: "background must be dark or light"})
			return
		}

		decoded := colorcode.Decode(raw)
		segments := make([]colorSegment, 0, len(decoded))
		for _, seg := range decoded {
			c := seg.Color
			if adjust != nil {
				c = adjust(c)
			}
			segments = append(segments, colorSegment{Text: seg.Text, Hex: c.Hex(), CSS: c.CSS(), RGBA: c})
		}
		m.AddSegments(len(segments))

		writeJSON(logger, w, http.StatusOK, colorsResponse{
			Plain:    colorcode.StripCodes(raw),
			Segments: segments,
		})
	})
}

// timeHandler renders ?ticks= as m:ss.cc.
func timeHandler(logger *slog.Logger, m *metrics.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticks, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("ticks")), 10, 64)
		if err != nil {
			m.IncToolRejected(metrics.ToolTime)
			writeJSON(logger, w, http.StatusBadRequest, errorResponse{Error: "ticks must be an integer"})
			return
		}
		writeJSON(logger, w, http.StatusOK, timeResponse{Ticks: ticks, Time: score.FormatTicksAsTime(ticks)})
	})
}

// pointsHandler evaluates the speedrun rank curve for ?n= players and
// ?r= rank.
func pointsHandler(logger *slog.Logger, m *metrics.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		n, errN := strconv.Atoi(strings.TrimSpace(q.Get("n")))
		rank, errR := strconv.Atoi(strings.TrimSpace(q.Get("r")))
		if err := errors.Join(errN, errR); err != nil {
			m.IncToolRejected(metrics.ToolPoints)
			writeJSON(logger, w, http.StatusBadRequest, errorResponse{Error: "n and r must be integers"})
			return
		}
		points, err := score.PointsForRank(n, rank)
		if err != nil {
			m.IncToolRejected(metrics.ToolPoints)
			writeJSON(logger, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(logger, w, http.StatusOK, pointsResponse{
			Players: n,
			Rank:    rank,
			Points:  points,
			Display: score.FormatPoints(points),
		})
	})
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("response_encode_failed", slog.Any("err", err))
	}
}
