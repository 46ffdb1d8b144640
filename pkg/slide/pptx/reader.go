// Package pptx reads element geometry from PowerPoint (.pptx) files into a
// [slide.Document].
//
// Only what the geometry engine needs is read: the slide size from
// ppt/presentation.xml and, for every shape, its position, size and the
// markers that decide its semantic tag. Positions are converted from EMU to
// inches; shapes inside groups are mapped into slide coordinates. Line flips
// are kept so a rising connector is not read as a falling one; flips and
// rotation of enclosing groups are ignored. Text content, images and charts
// are identified but not extracted beyond that.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/slide"
)

const presentationPart = "ppt/presentation.xml"

// lineGeometries are preset shapes drawn as a single stroke.
var lineGeometries = map[string]bool{
	"line":               true,
	"straightConnector1": true,
}

// ReadFile opens and converts the .pptx file at filename.
func ReadFile(filename string) (*slide.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", filename)
		}
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filename, err)
	}
	return Read(f, info.Size())
}

// Decode converts an in-memory .pptx archive.
func Decode(data []byte) (*slide.Document, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read converts the .pptx archive in r.
func Read(r io.ReaderAt, size int64) (*slide.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "opening ZIP archive")
	}
	rd := &reader{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		rd.files[f.Name] = f
	}
	return rd.document()
}

type reader struct {
	files map[string]*zip.File
}

func (r *reader) content(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *reader) document() (*slide.Document, error) {
	data, err := r.content(presentationPart)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "not a presentation")
	}
	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", presentationPart)
	}

	doc := &slide.Document{}
	if pres.SlideSz != nil && pres.SlideSz.Cx > 0 && pres.SlideSz.Cy > 0 {
		doc.Layout = map[string]any{"cx": pres.SlideSz.Cx, "cy": pres.SlideSz.Cy}
	}

	for _, name := range r.slideParts() {
		s, err := r.slide(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", name)
		}
		doc.Slides = append(doc.Slides, s)
	}
	if len(doc.Slides) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no slides found in presentation")
	}
	doc.Attach()
	return doc, nil
}

// slideParts lists ppt/slides/slideN.xml parts ordered by N.
func (r *reader) slideParts() []string {
	var parts []string
	for name := range r.files {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			parts = append(parts, name)
		}
	}
	sort.Slice(parts, func(i, j int) bool {
		return extractSlideNumber(parts[i]) < extractSlideNumber(parts[j])
	})
	return parts
}

// extractSlideNumber extracts N from "ppt/slides/slideN.xml".
func extractSlideNumber(p string) int {
	name := strings.TrimPrefix(p, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

func (r *reader) slide(name string) (*slide.Slide, error) {
	data, err := r.content(name)
	if err != nil {
		return nil, err
	}
	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, err
	}

	c := &converter{rels: r.relationships(name)}
	c.group(&sx.CSld.SpTree, identity)
	if c.elements == nil {
		c.elements = []*slide.Element{}
	}
	return &slide.Slide{Elements: c.elements}, nil
}

// relationships maps relationship IDs of a slide part to archive paths.
func (r *reader) relationships(part string) map[string]string {
	dir, file := path.Split(part)
	data, err := r.content(dir + "_rels/" + file + ".rels")
	if err != nil {
		return nil
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}
	out := make(map[string]string, len(rels.Relationship))
	for _, rel := range rels.Relationship {
		target := rel.Target
		if !strings.Contains(target, "://") {
			target = path.Clean(path.Join(dir, target))
		}
		out[rel.ID] = target
	}
	return out
}

// affine maps child EMU coordinates into slide EMU coordinates.
type affine struct {
	sx, sy, tx, ty float64
}

var identity = affine{sx: 1, sy: 1}

// then returns the mapping that applies inner first and a second.
func (a affine) then(inner affine) affine {
	return affine{
		sx: a.sx * inner.sx,
		sy: a.sy * inner.sy,
		tx: a.sx*inner.tx + a.tx,
		ty: a.sy*inner.ty + a.ty,
	}
}

// groupAffine maps a group's child space (chOff, chExt) onto its frame
// (off, ext).
func groupAffine(x *xfrmXML) affine {
	if x == nil {
		return identity
	}
	g := identity
	if x.ChExt.Cx != 0 {
		g.sx = float64(x.Ext.Cx) / float64(x.ChExt.Cx)
	}
	if x.ChExt.Cy != 0 {
		g.sy = float64(x.Ext.Cy) / float64(x.ChExt.Cy)
	}
	g.tx = float64(x.Off.X) - float64(x.ChOff.X)*g.sx
	g.ty = float64(x.Off.Y) - float64(x.ChOff.Y)*g.sy
	return g
}

type converter struct {
	rels     map[string]string
	elements []*slide.Element
}

func (c *converter) group(g *groupXML, t affine) {
	for _, ch := range g.Children {
		switch {
		case ch.Sp != nil:
			c.add(c.shape(ch.Sp), ch.Sp.SpPr.Xfrm, t)
		case ch.CxnSp != nil:
			c.add(c.connector(ch.CxnSp), ch.CxnSp.SpPr.Xfrm, t)
		case ch.Pic != nil:
			c.add(c.picture(ch.Pic), ch.Pic.SpPr.Xfrm, t)
		case ch.Frame != nil:
			c.add(c.frame(ch.Frame), ch.Frame.Xfrm, t)
		case ch.Group != nil:
			c.group(ch.Group, t.then(groupAffine(ch.Group.GrpSpPr.Xfrm)))
		}
	}
}

// add places el using x mapped through t. Elements without a transform
// inherit their position from a layout placeholder and are kept without
// geometry.
func (c *converter) add(el *slide.Element, x *xfrmXML, t affine) {
	if x != nil {
		el.Placement.X = slide.F(inches(t.sx*float64(x.Off.X) + t.tx))
		el.Placement.Y = slide.F(inches(t.sy*float64(x.Off.Y) + t.ty))
		el.Placement.W = slide.F(inches(t.sx * float64(x.Ext.Cx)))
		el.Placement.H = slide.F(inches(t.sy * float64(x.Ext.Cy)))
		if el.Kind == string(slide.TagLine) {
			el.Placement.FlipH, el.Placement.FlipV = x.FlipH, x.FlipV
		}
	}
	c.elements = append(c.elements, el)
}

// inches converts EMU to inches, rounded to a micro-inch.
func inches(emu float64) float64 {
	return math.Round(emu/slide.EMUPerInch*1e6) / 1e6
}

func (c *converter) shape(sp *spXML) *slide.Element {
	el := &slide.Element{Name: sp.NvSpPr.CNvPr.Name}
	prst := ""
	if sp.SpPr.PrstGeom != nil {
		prst = sp.SpPr.PrstGeom.Prst
	}
	el.Line = stroke(sp.SpPr.Ln)
	el.Fill = fill(&sp.SpPr)

	if lineGeometries[prst] {
		el.Kind = string(slide.TagLine)
		return el
	}
	if txt := text(sp.TxBody); txt != "" {
		el.Text = slide.Text{txt}
	}
	if prst == "" {
		prst = "custom"
	}
	el.Shape = prst
	return el
}

func (c *converter) connector(cx *cxnSpXML) *slide.Element {
	return &slide.Element{
		Name: cx.NvCxnSpPr.CNvPr.Name,
		Kind: string(slide.TagLine),
		Line: stroke(cx.SpPr.Ln),
	}
}

func (c *converter) picture(p *picXML) *slide.Element {
	el := &slide.Element{Name: p.NvPicPr.CNvPr.Name}
	id := p.BlipFill.Blip.Embed
	if target, ok := c.rels[id]; ok {
		el.Image = target
	} else if id != "" {
		el.Image = id
	} else {
		el.Image = "embedded"
	}
	return el
}

func (c *converter) frame(f *graphicFrameXML) *slide.Element {
	el := &slide.Element{Name: f.NvGraphicFramePr.CNvPr.Name}
	data := f.Graphic.GraphicData
	uri := data.URI
	switch {
	case data.Tbl != nil || strings.HasSuffix(uri, "/table"):
		el.Table = tableJSON(data.Tbl)
	case strings.Contains(uri, "/chart"):
		el.ChartType = "chart"
	case strings.Contains(uri, "/diagram"):
		el.SmartArt, _ = json.Marshal(map[string]string{"uri": uri})
	default:
		el.Type = "graphicFrame"
	}
	return el
}

// tableJSON encodes cell text row by row.
func tableJSON(tbl *tblXML) json.RawMessage {
	rows := [][]string{}
	if tbl != nil {
		for _, tr := range tbl.Tr {
			row := make([]string, len(tr.Tc))
			for i, tc := range tr.Tc {
				row[i] = text(tc.TxBody)
			}
			rows = append(rows, row)
		}
	}
	b, _ := json.Marshal(rows)
	return b
}

// text joins runs of each paragraph and paragraphs with newlines.
func text(body *txBodyXML) string {
	if body == nil {
		return ""
	}
	paras := make([]string, 0, len(body.P))
	for _, p := range body.P {
		var sb strings.Builder
		for _, r := range p.R {
			sb.WriteString(r.T)
		}
		for _, f := range p.Fld {
			sb.WriteString(f.T)
		}
		paras = append(paras, sb.String())
	}
	return strings.TrimSpace(strings.Join(paras, "\n"))
}

// stroke converts an outline. An explicit noFill outline means no stroke.
func stroke(ln *lnXML) *slide.Stroke {
	if ln == nil || ln.NoFill != nil {
		return nil
	}
	s := &slide.Stroke{Width: math.Round(float64(ln.W)/12700*100) / 100}
	if ln.SolidFill != nil && ln.SolidFill.SrgbClr != nil {
		s.Color = ln.SolidFill.SrgbClr.Val
	}
	if ln.PrstDash != nil {
		s.Dash = ln.PrstDash.Val
	}
	return s
}

// fill converts a solid interior fill. Alpha is recorded as transparency
// in percent. noFill and a missing fill both yield nil.
func fill(pr *spPrXML) *slide.Fill {
	if pr.NoFill != nil || pr.SolidFill == nil {
		return nil
	}
	f := &slide.Fill{}
	if clr := pr.SolidFill.SrgbClr; clr != nil {
		f.Color = clr.Val
		if clr.Alpha != nil {
			t := 100 - float64(clr.Alpha.Val)/1000
			f.Transparency = &t
		}
	}
	return f
}
