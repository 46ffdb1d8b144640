package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/arrange"
	"github.com/matzehuels/slidelint/pkg/cache"
	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

func text(x, y, w, h float64, s string) *slide.Element {
	el := slide.NewElement(x, y, w, h)
	el.Text = slide.Text{s}
	return el
}

func shape(x, y, w, h float64) *slide.Element {
	el := slide.NewElement(x, y, w, h)
	el.Shape = "rect"
	return el
}

func testDeck() *slide.Document {
	return slide.NewDocument(
		map[string]any{"width": 10.0, "height": 5.625},
		&slide.Slide{Elements: []*slide.Element{
			text(0, 0, 2, 1, "Title"),
			text(1, 0.5, 2, 1, "Subtitle"),
			shape(9.5, 4, 1, 1),
		}},
		&slide.Slide{Elements: []*slide.Element{
			shape(1, 1, 2, 2),
		}},
	)
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"JSON", false},
		{"svg", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	doc := testDeck()

	opts := Options{}
	if err := opts.Validate(doc); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Overlap.Tolerances != geom.DefaultTolerances {
		t.Errorf("Tolerances = %+v, want defaults", opts.Overlap.Tolerances)
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}
	if got := opts.SlideNumbers(doc); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("SlideNumbers = %v", got)
	}

	for _, n := range []int{0, 3, -1} {
		opts := Options{Slides: []int{n}}
		if err := opts.Validate(doc); !errors.Is(err, errors.ErrCodeIndexOutOfBounds) {
			t.Errorf("slide %d: error = %v, want INDEX_OUT_OF_BOUNDS", n, err)
		}
	}

	if err := (&Options{}).Validate(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil document: error = %v", err)
	}
}

func TestReportKeyOpts(t *testing.T) {
	a := DefaultOptions()
	b := DefaultOptions()
	b.CheckBounds = true

	k := cache.NewDefaultKeyer()
	if k.ReportKey("h", a.ReportKeyOpts(1, "Slide 1")) == k.ReportKey("h", b.ReportKeyOpts(1, "Slide 1")) {
		t.Error("CheckBounds should change the report key")
	}
	if k.ReportKey("h", a.ReportKeyOpts(1, "Slide 1")) == k.ReportKey("h", a.ReportKeyOpts(2, "Slide 2")) {
		t.Error("slide number should change the report key")
	}
}

func TestRunnerAnalyze(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)

	opts := DefaultOptions()
	opts.CheckBounds = true

	first := &analysis.Recorder{}
	res, err := runner.Analyze(ctx, testDeck(), opts, first)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.RunID == "" || res.DeckHash == "" {
		t.Errorf("missing ids: %+v", res)
	}
	if res.Stats.Slides != 2 || res.Stats.Elements != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Stats.Overlaps != 1 || res.Stats.Severe != 1 || res.Stats.OutOfBounds != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo != (CacheInfo{Misses: 2}) {
		t.Errorf("CacheInfo = %+v", res.CacheInfo)
	}
	if res.Clean(opts) {
		t.Error("result should not be clean")
	}
	if c := res.Slides[0].Canvas; c == nil || c.Width != 10 || c.Height != 5.625 {
		t.Errorf("Canvas = %+v", c)
	}

	want := "❌ Slide 1: text overlap between element 0 (text) and element 1 (text) [1 x 0.5]; move apart vertically by 0.5"
	if texts := first.Texts(); len(texts) == 0 || texts[0] != want {
		t.Errorf("first line = %q, want %q", texts, want)
	}
	if len(res.Slides[1].Lines) != 0 {
		t.Errorf("clean slide emitted %v", res.Slides[1].Lines)
	}

	second := &analysis.Recorder{}
	again, err := runner.Analyze(ctx, testDeck(), opts, second)
	if err != nil {
		t.Fatal(err)
	}
	if again.CacheInfo != (CacheInfo{Hits: 2}) {
		t.Errorf("second run CacheInfo = %+v", again.CacheInfo)
	}
	if !reflect.DeepEqual(first.Lines, second.Lines) {
		t.Errorf("replayed lines differ:\n%v\n%v", first.Lines, second.Lines)
	}
	if again.Stats.Overlaps != res.Stats.Overlaps || again.Stats.OutOfBounds != res.Stats.OutOfBounds {
		t.Errorf("cached stats differ: %+v vs %+v", again.Stats, res.Stats)
	}

	opts.Refresh = true
	fresh, err := runner.Analyze(ctx, testDeck(), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.Hits != 0 {
		t.Errorf("Refresh should bypass cache reads: %+v", fresh.CacheInfo)
	}
}

func TestRunnerAnalyzeSelection(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := DefaultOptions()
	opts.Slides = []int{2}

	res, err := runner.Analyze(context.Background(), testDeck(), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slides) != 1 || res.Slides[0].Number != 2 {
		t.Errorf("Slides = %+v", res.Slides)
	}
	if !res.Clean(opts) {
		t.Error("slide 2 should be clean")
	}
}

func TestRunnerAnalyzeDetachedSlideLabel(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)

	elements := func() []*slide.Element {
		return []*slide.Element{text(0, 0, 2, 1, "Title"), text(1, 0.5, 2, 1, "Subtitle")}
	}
	bare := &slide.Document{Slides: []*slide.Slide{{Elements: elements()}}}
	attached := slide.NewDocument(nil, &slide.Slide{Elements: elements()})

	// Both decks encode to the same JSON; only attachment differs.
	tests := []struct {
		name string
		doc  *slide.Document
		want string
	}{
		{"detached", bare, analysis.UnknownSlide},
		{"attached", attached, "Slide 1"},
		{"detached again", bare, analysis.UnknownSlide},
	}

	for _, tt := range tests {
		rec := &analysis.Recorder{}
		res, err := runner.Analyze(ctx, tt.doc, DefaultOptions(), rec)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := res.Slides[0].Report.Slide; got != tt.want {
			t.Errorf("%s: label = %q, want %q", tt.name, got, tt.want)
		}
		for _, line := range rec.Texts() {
			if !strings.Contains(line, tt.want) {
				t.Errorf("%s: line %q missing label %q", tt.name, line, tt.want)
			}
		}
	}
}

func TestRunnerAnalyzeCanvasFailure(t *testing.T) {
	doc := slide.NewDocument(nil, &slide.Slide{Elements: []*slide.Element{shape(0, 0, 1, 1)}})
	opts := DefaultOptions()
	opts.CheckBounds = true

	_, err := NewRunner(nil, nil, nil).Analyze(context.Background(), doc, opts, nil)
	if !errors.Is(err, errors.ErrCodeDimensionResolution) {
		t.Errorf("error = %v, want DIMENSION_RESOLUTION_FAILURE", err)
	}
}

func TestRunnerRelations(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	doc := testDeck()

	pairs, hit, err := runner.RelationsWithCacheInfo(ctx, doc, 1, geom.Tolerances{})
	if err != nil {
		t.Fatal(err)
	}
	if hit || len(pairs) != 3 {
		t.Fatalf("hit %v, %d pairs", hit, len(pairs))
	}
	if pairs[0].Relation.Kind != geom.Overlapping {
		t.Errorf("pair 0-1 = %v", pairs[0].Relation.Kind)
	}

	cached, hit, err := runner.RelationsWithCacheInfo(ctx, doc, 1, geom.Tolerances{})
	if err != nil || !hit {
		t.Fatalf("second call: hit %v err %v", hit, err)
	}
	if !reflect.DeepEqual(pairs, cached) {
		t.Error("cached relations differ")
	}

	if _, err := runner.Relations(ctx, doc, 9, geom.Tolerances{}); !errors.Is(err, errors.ErrCodeIndexOutOfBounds) {
		t.Errorf("error = %v", err)
	}
}

func TestRunnerArrange(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	doc := testDeck()

	moves, err := runner.Align(ctx, doc, 1, []int{0, 1}, arrange.AlignLeft)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 {
		t.Fatalf("moves = %+v", moves)
	}
	if got := slide.Bounds(doc.Slides[0].Elements[1]).X; got != 0 {
		t.Errorf("x after align = %v", got)
	}

	if _, err := runner.Align(ctx, doc, 1, []int{0, 5}, arrange.AlignLeft); !errors.Is(err, errors.ErrCodeIndexOutOfBounds) {
		t.Errorf("error = %v", err)
	}
	if _, err := runner.Distribute(ctx, doc, 1, []int{0, 1, 2}, arrange.Direction("diagonal")); !errors.Is(err, errors.ErrCodeUnsupportedDistributionDirection) {
		t.Errorf("error = %v", err)
	}
	if _, err := runner.Distribute(ctx, nil, 1, nil, arrange.Horizontal); err == nil {
		t.Error("nil document should fail")
	}

	c, err := runner.Canvas(doc, 2)
	if err != nil || c.Width != 10 {
		t.Errorf("Canvas = %+v, %v", c, err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidelint.toml")
	body := `
[overlap]
mute_containment = false
ignore_lines = true

[tolerances]
coarse = 0.001

[cache]
backend = "none"
ttl = "2h"

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Overlap.MuteContainment || !cfg.Overlap.IgnoreLines {
		t.Errorf("Overlap = %+v", cfg.Overlap)
	}
	if cfg.Tolerances.Coarse != 0.001 || cfg.Tolerances.Fine != geom.FineEpsilon {
		t.Errorf("Tolerances = %+v", cfg.Tolerances)
	}
	if cfg.Cache.Backend != CacheNone || cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodyBytes == 0 {
		t.Errorf("Server = %+v", cfg.Server)
	}

	opts := cfg.Options()
	if opts.Overlap.Tolerances.Coarse != 0.001 || opts.Overlap.MuteContainment {
		t.Errorf("Options = %+v", opts.Overlap)
	}

	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("OpenCache = %T, want NullCache", c)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[overlap]\nmute = true\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"negative tolerance", "[tolerances]\ncoarse = -1.0\n"},
		{"syntax", "[overlap\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(p, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(p); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestConfigFileCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Dir = t.TempDir()

	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	fc, ok := c.(*cache.FileCache)
	if !ok || fc.Dir() != cfg.Cache.Dir {
		t.Errorf("OpenCache = %T", c)
	}

	var sb strings.Builder
	if err := cfg.Encode(&sb); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "[overlap]") || !strings.Contains(sb.String(), "mute_containment = true") {
		t.Errorf("Encode output:\n%s", sb.String())
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.json")
	if err := slide.WriteFile(testDeck(), path); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path, nil)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if len(doc.Slides) != 2 || doc.ElementCount() != 4 {
		t.Errorf("loaded %d slides, %d elements", len(doc.Slides), doc.ElementCount())
	}

	stdin := strings.NewReader(`{"elements":[{"x":1,"y":1,"w":1,"h":1}]}`)
	doc, err = LoadDocument("-", stdin)
	if err != nil || len(doc.Slides) != 1 {
		t.Errorf("stdin: %v", err)
	}

	tests := []struct {
		path string
		code errors.Code
	}{
		{"", errors.ErrCodeInvalidPath},
		{"deck.key", errors.ErrCodeInvalidFormat},
		{filepath.Join(dir, "missing.json"), errors.ErrCodeFileNotFound},
		{filepath.Join(dir, "missing.pptx"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		if _, err := LoadDocument(tt.path, nil); !errors.Is(err, tt.code) {
			t.Errorf("LoadDocument(%q) = %v, want %s", tt.path, err, tt.code)
		}
	}
}

func TestDecodeDocument(t *testing.T) {
	if _, err := DecodeDocument([]byte(`{"slides":[]}`), ""); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := DecodeDocument([]byte("not a zip"), DeckPPTX); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("pptx: %v", err)
	}
	if _, err := DecodeDocument(nil, "odp"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("odp: %v", err)
	}
}
