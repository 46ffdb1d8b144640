package pptx

import "encoding/xml"

// presentationXML is ppt/presentation.xml; only the slide size is read.
type presentationXML struct {
	XMLName xml.Name    `xml:"presentation"`
	SlideSz *slideSzXML `xml:"sldSz"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

// slideXML is a ppt/slides/slide*.xml part.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree groupXML `xml:"spTree"`
}

// groupXML is the shape tree itself or a nested group. Children keep
// document order, which is the z-order of the slide.
type groupXML struct {
	GrpSpPr  grpSpPrXML
	Children []shapeXML
}

// shapeXML holds exactly one child of a shape tree.
type shapeXML struct {
	Sp    *spXML
	CxnSp *cxnSpXML
	Pic   *picXML
	Frame *graphicFrameXML
	Group *groupXML
}

// UnmarshalXML decodes children in document order, skipping unknown kinds.
func (g *groupXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var child shapeXML
			switch t.Name.Local {
			case "grpSpPr":
				err = d.DecodeElement(&g.GrpSpPr, &t)
			case "sp":
				child.Sp = &spXML{}
				err = d.DecodeElement(child.Sp, &t)
			case "cxnSp":
				child.CxnSp = &cxnSpXML{}
				err = d.DecodeElement(child.CxnSp, &t)
			case "pic":
				child.Pic = &picXML{}
				err = d.DecodeElement(child.Pic, &t)
			case "graphicFrame":
				child.Frame = &graphicFrameXML{}
				err = d.DecodeElement(child.Frame, &t)
			case "grpSp":
				child.Group = &groupXML{}
				err = d.DecodeElement(child.Group, &t)
			default:
				err = d.Skip()
			}
			if err != nil {
				return err
			}
			if child != (shapeXML{}) {
				g.Children = append(g.Children, child)
			}
		case xml.EndElement:
			return nil
		}
	}
}

type grpSpPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

// spXML is a regular shape or text box.
type spXML struct {
	NvSpPr nvPrXML    `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

// cxnSpXML is a connector, which slidelint treats as a line element.
type cxnSpXML struct {
	NvCxnSpPr nvPrXML `xml:"nvCxnSpPr"`
	SpPr      spPrXML `xml:"spPr"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	PrstGeom  *prstGeomXML  `xml:"prstGeom"`
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Ln        *lnXML        `xml:"ln"`
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"`
}

type solidFillXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type srgbClrXML struct {
	Val   string    `xml:"val,attr"`
	Alpha *alphaXML `xml:"alpha"`
}

// alphaXML is opacity in thousandths of a percent; 100000 is opaque.
type alphaXML struct {
	Val int `xml:"val,attr"`
}

type lnXML struct {
	W         int64         `xml:"w,attr"` // Width in EMUs
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	PrstDash  *prstDashXML  `xml:"prstDash"`
}

type prstDashXML struct {
	Val string `xml:"val,attr"`
}

type xfrmXML struct {
	FlipH bool     `xml:"flipH,attr"`
	FlipV bool     `xml:"flipV,attr"`
	Off   pointXML `xml:"off"`
	Ext   sizeXML  `xml:"ext"`
	ChOff pointXML `xml:"chOff"`
	ChExt sizeXML  `xml:"chExt"`
}

type pointXML struct {
	X int64 `xml:"x,attr"` // EMUs
	Y int64 `xml:"y,attr"` // EMUs
}

type sizeXML struct {
	Cx int64 `xml:"cx,attr"` // EMUs
	Cy int64 `xml:"cy,attr"` // EMUs
}

type txBodyXML struct {
	P []pXML `xml:"p"`
}

type pXML struct {
	R   []rXML `xml:"r"`
	Fld []rXML `xml:"fld"`
}

type rXML struct {
	T string `xml:"t"`
}

type picXML struct {
	NvPicPr  nvPrXML     `xml:"nvPicPr"`
	BlipFill blipFillXML `xml:"blipFill"`
	SpPr     spPrXML     `xml:"spPr"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
}

// graphicFrameXML holds tables, charts and diagrams. Its transform sits
// directly on the frame rather than under spPr.
type graphicFrameXML struct {
	NvGraphicFramePr nvPrXML    `xml:"nvGraphicFramePr"`
	Xfrm             *xfrmXML   `xml:"xfrm"`
	Graphic          graphicXML `xml:"graphic"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string  `xml:"uri,attr"`
	Tbl *tblXML `xml:"tbl"`
}

type tblXML struct {
	Tr []trXML `xml:"tr"`
}

type trXML struct {
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

// relationshipsXML is a .rels part.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
