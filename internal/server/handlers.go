package server

import (
	"net/http"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/arrange"
	"github.com/matzehuels/slidelint/pkg/buildinfo"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/pipeline"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// =============================================================================
// Health
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
}

// =============================================================================
// Analysis
// =============================================================================

type analyzeRequest struct {
	deckInput

	Slides []int `json:"slides,omitempty"`

	// Unset flags keep the server defaults.
	MuteContainment        *bool `json:"muteContainment,omitempty"`
	IgnoreLines            *bool `json:"ignoreLines,omitempty"`
	IgnoreDecorativeShapes *bool `json:"ignoreDecorativeShapes,omitempty"`

	CheckBounds bool `json:"checkBounds,omitempty"`
	Refresh     bool `json:"refresh,omitempty"`
}

func (req *analyzeRequest) options(defaults pipeline.Options) pipeline.Options {
	opts := defaults
	opts.Slides = req.Slides
	opts.CheckBounds = req.CheckBounds
	opts.Refresh = req.Refresh
	if req.MuteContainment != nil {
		opts.Overlap.MuteContainment = *req.MuteContainment
	}
	if req.IgnoreLines != nil {
		opts.Overlap.IgnoreLines = *req.IgnoreLines
	}
	if req.IgnoreDecorativeShapes != nil {
		opts.Overlap.IgnoreDecorativeShapes = *req.IgnoreDecorativeShapes
	}
	return opts
}

type analyzeResponse struct {
	RequestID string           `json:"request_id"`
	Clean     bool             `json:"clean"`
	Result    *pipeline.Result `json:"result"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := s.decode(w, r, &req, &req.deckInput); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := req.document()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.options(s.Defaults)
	opts.Logger = s.Logger

	res, err := s.Runner.Analyze(r.Context(), doc, opts, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		RequestID: RequestID(r.Context()),
		Clean:     res.Clean(opts),
		Result:    res,
	})
}

type relationsRequest struct {
	deckInput

	Slide      int              `json:"slide,omitempty"`
	Tolerances *geom.Tolerances `json:"tolerances,omitempty"`

	// All includes disjoint pairs.
	All bool `json:"all,omitempty"`
}

type relationsResponse struct {
	RequestID string          `json:"request_id"`
	Slide     int             `json:"slide"`
	Cached    bool            `json:"cached"`
	Pairs     []analysis.Pair `json:"pairs"`
}

func (s *Server) relations(w http.ResponseWriter, r *http.Request) {
	var req relationsRequest
	if err := s.decode(w, r, &req, &req.deckInput); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := req.document()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tol := s.Defaults.Overlap.Tolerances
	if req.Tolerances != nil {
		tol = *req.Tolerances
	}

	n := slideNumber(req.Slide)
	pairs, hit, err := s.Runner.RelationsWithCacheInfo(r.Context(), doc, n, tol)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !req.All {
		pairs = analysis.NonDisjoint(pairs)
	}
	if pairs == nil {
		pairs = []analysis.Pair{}
	}
	writeJSON(w, http.StatusOK, relationsResponse{
		RequestID: RequestID(r.Context()),
		Slide:     n,
		Cached:    hit,
		Pairs:     pairs,
	})
}

type canvasResponse struct {
	RequestID string       `json:"request_id"`
	Slide     int          `json:"slide"`
	Canvas    slide.Canvas `json:"canvas"`
}

func (s *Server) canvas(w http.ResponseWriter, r *http.Request) {
	var req struct {
		deckInput
		Slide int `json:"slide,omitempty"`
	}
	if err := s.decode(w, r, &req, &req.deckInput); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := req.document()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n := slideNumber(req.Slide)
	c, err := s.Runner.Canvas(doc, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, canvasResponse{RequestID: RequestID(r.Context()), Slide: n, Canvas: c})
}

// =============================================================================
// Arrangement
// =============================================================================

type arrangeRequest struct {
	deckInput

	Slide   int   `json:"slide,omitempty"`
	Indices []any `json:"indices"`

	// Mode names the alignment; Direction names the distribution axis.
	Mode      string `json:"mode,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type arrangeResponse struct {
	RequestID string          `json:"request_id"`
	Slide     int             `json:"slide"`
	Moves     []arrange.Move  `json:"moves"`
	Deck      *slide.Document `json:"deck"`
}

func (s *Server) align(w http.ResponseWriter, r *http.Request) {
	s.arrange(w, r, func(req *arrangeRequest, doc *slide.Document, n int, indices []int) ([]arrange.Move, error) {
		mode, err := arrange.ParseAlignment(req.Mode)
		if err != nil {
			// Align rejects the unknown mode after validating the selection.
			mode = arrange.Alignment(req.Mode)
		}
		return s.Runner.Align(r.Context(), doc, n, indices, mode)
	})
}

func (s *Server) distribute(w http.ResponseWriter, r *http.Request) {
	s.arrange(w, r, func(req *arrangeRequest, doc *slide.Document, n int, indices []int) ([]arrange.Move, error) {
		axis, err := arrange.ParseDirection(req.Direction)
		if err != nil {
			axis = arrange.Direction(req.Direction)
		}
		return s.Runner.Distribute(r.Context(), doc, n, indices, axis)
	})
}

type arrangeFunc func(req *arrangeRequest, doc *slide.Document, n int, indices []int) ([]arrange.Move, error)

func (s *Server) arrange(w http.ResponseWriter, r *http.Request, fn arrangeFunc) {
	var req arrangeRequest
	if err := s.decode(w, r, &req, &req.deckInput); err != nil {
		s.writeError(w, r, err)
		return
	}
	indices, err := arrange.ParseIndexValues(req.Indices)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := req.document()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	n := slideNumber(req.Slide)
	moves, err := fn(&req, doc, n, indices)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if moves == nil {
		moves = []arrange.Move{}
	}
	writeJSON(w, http.StatusOK, arrangeResponse{
		RequestID: RequestID(r.Context()),
		Slide:     n,
		Moves:     moves,
		Deck:      doc,
	})
}
