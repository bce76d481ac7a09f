// Package commentary implements the Commentary Parser and Persister
// (§4.12): walks every <Commentary id Type> element in a law's body XML
// into AmendmentAnnotation values, keyed by a per-code-type sequence.
package commentary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/xmltree"
)

var codeTypeByLetter = map[string]legalrecord.CodeType{
	"F": legalrecord.CodeAmendment,
	"C": legalrecord.CodeModification,
	"I": legalrecord.CodeCommencement,
	"M": legalrecord.CodeExtentEditorial,
	"E": legalrecord.CodeExtentEditorial,
	"X": legalrecord.CodeExtentEditorial,
}

var reCanonicalCode = regexp.MustCompile(`^[FCIMEX]\d+$`)

// Walk finds every <Commentary> element in root and returns its annotations
// in discovery order, with affected_sections left empty — callers invert
// the LAT walk's per-row CommentaryRefs to populate that field via
// AttachAffectedSections.
func Walk(root *xmltree.Node, lawName string) []legalrecord.AmendmentAnnotation {
	seqByType := map[legalrecord.CodeType]int{}
	var out []legalrecord.AmendmentAnnotation

	for _, n := range root.FindAll("Commentary") {
		typeAttr := n.Get("Type")
		codeType, ok := codeTypeByLetter[typeAttr]
		if !ok {
			continue
		}
		refID := n.Get("id")
		seqByType[codeType]++
		seq := seqByType[codeType]

		ann := legalrecord.AmendmentAnnotation{
			ID:       commentaryID(lawName, codeType, seq),
			LawName:  lawName,
			CodeType: codeType,
			Seq:      seq,
			Code:     commentaryCode(typeAttr, refID),
			Source:   "lat_parser",
			Text:     commentaryText(n),
		}
		out = append(out, ann)
	}
	return out
}

// AttachAffectedSections inverts a {ref_id: []section_id} map (built by
// collecting each LATRow's CommentaryRefs) onto the annotation whose Code
// equals the ref id, filling AffectedSections (§4.12).
func AttachAffectedSections(annotations []legalrecord.AmendmentAnnotation, refToSections map[string][]string) {
	for i := range annotations {
		if sections, ok := refToSections[annotations[i].Code]; ok {
			annotations[i].AffectedSections = sections
		}
	}
}

func commentaryID(lawName string, codeType legalrecord.CodeType, seq int) string {
	return lawName + ":" + string(codeType) + ":" + strconv.Itoa(seq)
}

// commentaryCode returns the original ref id when it already matches the
// canonical ^[FCIMEX]\d+$ shape, otherwise a type-prefixed fallback
// (§4.12: ids like "c7806021" are internal keys, not citable codes).
func commentaryCode(typeAttr, refID string) string {
	if reCanonicalCode.MatchString(refID) {
		return refID
	}
	return typeAttr + ":" + refID
}

// commentaryText joins the text of every descendant of n, skipping Citation
// elements and everything beneath them.
func commentaryText(n *xmltree.Node) string {
	var parts []string
	var collect func(*xmltree.Node)
	collect = func(node *xmltree.Node) {
		for _, c := range node.Children {
			if c.Name == "Citation" {
				continue
			}
			if c.Text != "" {
				parts = append(parts, c.Text)
			}
			collect(c)
		}
	}
	collect(n)
	return xmltree.CollapseWhitespace(strings.Join(parts, " "))
}

// InvertCommentaryRefs builds a {ref_id: []section_id} map from LAT rows'
// CommentaryRefs so AttachAffectedSections can populate annotations.
func InvertCommentaryRefs(rows []legalrecord.LATRow) map[string][]string {
	out := map[string][]string{}
	for _, row := range rows {
		for _, ref := range row.CommentaryRefs {
			out[ref] = append(out[ref], row.SectionID)
		}
	}
	return out
}
