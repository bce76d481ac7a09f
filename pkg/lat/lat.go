// Package lat implements the LAT (Legal-Articles-Table) Walker and
// Persister (§4.13): a depth-first body-XML tree walk producing ordered
// structural rows with citation, sort-key, hierarchy path, depth, and
// parallel-provision disambiguation.
package lat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/xmltree"
)

// transparentContainers recurse only (§4.13 element table).
var transparentContainers = map[string]bool{
	"Legislation": true, "Primary": true, "Secondary": true, "Body": true,
	"Schedules": true, "ScheduleBody": true, "FragmentBody": true,
	"P1para": true, "P2para": true, "P3para": true, "P4para": true,
	"P1group": true, "P2group": true, "P3group": true,
}

// skippedEntirely contains content belonging to other laws or alternative
// territorial versions, never walked (§4.13).
var skippedEntirely = map[string]bool{
	"BlockAmendment": true, "AppendText": true, "BlockExtract": true,
	"Versions": true, "Version": true, "Commentaries": true,
	"Commentary": true, "Contents": true,
}

var reCommentaryRef = regexp.MustCompile(`^[FCIE]\d`)

// Walker walks a law's body XML into ordered LATRow values.
type Walker struct {
	client *httpfetch.Client
}

func NewWalker(client *httpfetch.Client) *Walker {
	return &Walker{client: client}
}

// Fetch retrieves and walks the body XML for (typeCode, year, number).
func (w *Walker) Fetch(ctx context.Context, typeCode, year, number string) ([]legalrecord.LATRow, error) {
	result, err := w.client.Fetch(ctx, httpfetch.BodyPath(typeCode, year, number))
	if err != nil {
		return nil, err
	}
	if result.Kind != httpfetch.KindXML {
		return nil, fmt.Errorf("lat: no XML available for %s/%s/%s", typeCode, year, number)
	}
	root, err := xmltree.Parse(result.Body)
	if err != nil {
		return nil, fmt.Errorf("lat: xml parse failed: %w", err)
	}
	lawName := fmt.Sprintf("UK_%s_%s_%s", typeCode, year, number)
	return Walk(root, lawName, legalrecord.PrimaryTypeCodes[typeCode]), nil
}

// walkContext carries the hierarchical keys live during the depth-first
// walk, cleared according to §4.13's element table.
type walkContext struct {
	part, chapter, headingGroup    string
	schedule                        string
	provision, sub, paragraph, subParagraph string
	defaultExtent                   string
}

// Walk performs the depth-first body-XML walk and returns ordered LATRow
// values with position, derived fields, and disambiguation already applied.
// isAct selects section/sub_section citation vocabulary over article/sub_article
// (§4.13: "Acts use section/sub_section, others article/sub_article").
func Walk(root *xmltree.Node, lawName string, isAct bool) []legalrecord.LATRow {
	w := &walker{lawName: lawName, isAct: isAct}
	w.walk(root, walkContext{})
	w.assignPositions()
	w.detectParallelProvisions()
	w.disambiguate()
	return w.rows
}

type walker struct {
	lawName string
	isAct   bool
	rows    []legalrecord.LATRow
}

func (w *walker) walk(n *xmltree.Node, ctx walkContext) {
	if n.Get("RestrictExtent") != "" {
		ctx.defaultExtent = n.Get("RestrictExtent")
	}

	switch {
	case skippedEntirely[n.Name]:
		return
	case transparentContainers[n.Name]:
		w.recurseChildren(n, ctx)
		return
	}

	switch n.Name {
	case "Part":
		childCtx := ctx
		childCtx.part = numberOf(n)
		childCtx.chapter, childCtx.headingGroup = "", ""
		w.emit(n, childCtx, legalrecord.SectionPart)
		w.recurseChildren(n, childCtx)
	case "Chapter":
		childCtx := ctx
		childCtx.chapter = numberOf(n)
		childCtx.headingGroup = ""
		w.emit(n, childCtx, legalrecord.SectionChapter)
		w.recurseChildren(n, childCtx)
	case "Pblock":
		childCtx := ctx
		if firstP1 := firstDescendant(n, "P1"); firstP1 != nil {
			childCtx.headingGroup = numberOf(firstP1)
		}
		w.emit(n, childCtx, legalrecord.SectionHeading)
		w.recurseChildren(n, childCtx)
	case "P1":
		childCtx := ctx
		childCtx.provision = numberOf(n)
		childCtx.sub, childCtx.paragraph, childCtx.subParagraph = "", "", ""
		sectionType := legalrecord.SectionSection
		if !w.isAct {
			sectionType = legalrecord.SectionArticle
		}
		w.emit(n, childCtx, sectionType)
		w.recurseChildren(n, childCtx)
	case "P2":
		childCtx := ctx
		childCtx.sub = numberOf(n)
		childCtx.paragraph, childCtx.subParagraph = "", ""
		sectionType := legalrecord.SectionSubSection
		if !w.isAct {
			sectionType = legalrecord.SectionSubArticle
		}
		w.emit(n, childCtx, sectionType)
		w.recurseChildren(n, childCtx)
	case "P3":
		childCtx := ctx
		childCtx.paragraph = numberOf(n)
		childCtx.subParagraph = ""
		sectionType := legalrecord.SectionParagraph
		if childCtx.schedule != "" && childCtx.provision == "" {
			sectionType = legalrecord.SectionParagraph // schedule-paragraph, same enum, see citation()
		}
		w.emit(n, childCtx, sectionType)
		w.recurseChildren(n, childCtx)
	case "P4":
		childCtx := ctx
		childCtx.subParagraph = numberOf(n)
		w.emit(n, childCtx, legalrecord.SectionSubParagraph)
		w.recurseChildren(n, childCtx)
	case "Schedule":
		childCtx := ctx
		childCtx.schedule = numberOf(n)
		childCtx.part, childCtx.chapter, childCtx.headingGroup = "", "", ""
		childCtx.provision, childCtx.sub, childCtx.paragraph, childCtx.subParagraph = "", "", "", ""
		w.emit(n, childCtx, legalrecord.SectionSchedule)
		w.recurseChildren(n, childCtx)
	case "SignedSection":
		w.emit(n, ctx, legalrecord.SectionSigned)
	case "Tabular":
		w.emit(n, ctx, legalrecord.SectionTable)
	case "Figure":
		w.emit(n, ctx, legalrecord.SectionNote)
	default:
		w.recurseChildren(n, ctx)
	}
}

func (w *walker) recurseChildren(n *xmltree.Node, ctx walkContext) {
	for _, c := range n.Children {
		w.walk(c, ctx)
	}
}

func (w *walker) emit(n *xmltree.Node, ctx walkContext, sectionType legalrecord.SectionType) {
	row := legalrecord.LATRow{
		LawName:       w.lawName,
		SectionType:   sectionType,
		Part:          ctx.part,
		Chapter:       ctx.chapter,
		HeadingGroup:  ctx.headingGroup,
		Schedule:      ctx.schedule,
		Provision:     ctx.provision,
		Sub:           ctx.sub,
		Paragraph:     ctx.paragraph,
		SubParagraph:  ctx.subParagraph,
		ExtentCode:    ctx.defaultExtent,
		Text:          bodyText(n),
	}
	countCommentaryRefs(n, &row)
	row.SectionID = citation(w.lawName, sectionType, ctx, w.isAct)
	row.SortKey = sortKey(ctx)
	row.HierarchyPath = hierarchyPath(ctx)
	row.Depth = depth(sectionType, ctx)
	w.rows = append(w.rows, row)
}

// countCommentaryRefs counts descendant CommentaryRef/@Ref values matching
// ^[FCIE]\d; refs starting with a lowercase letter are internal keys and do
// not count (§4.13).
func countCommentaryRefs(n *xmltree.Node, row *legalrecord.LATRow) {
	for _, ref := range n.FindAll("CommentaryRef") {
		id := ref.Get("Ref")
		if id == "" || !reCommentaryRef.MatchString(id) {
			continue
		}
		row.CommentaryRefs = append(row.CommentaryRefs, id)
		switch id[0] {
		case 'F':
			row.AmendmentCount++
		case 'C':
			row.ModificationCount++
		case 'I':
			row.CommencementCount++
		case 'E':
			row.EditorialCount++
		}
	}
}

// bodyText collects descendant text excluding the Number/Pnumber label
// children, so a row's text does not repeat its own citation number.
func bodyText(n *xmltree.Node) string {
	var parts []string
	var collect func(*xmltree.Node)
	collect = func(node *xmltree.Node) {
		for _, c := range node.Children {
			if c.Name == "Number" || c.Name == "Pnumber" {
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

func numberOf(n *xmltree.Node) string {
	for _, name := range []string{"Number", "Pnumber"} {
		for _, c := range n.Children {
			if c.Name == name {
				return strings.TrimSpace(c.AllText())
			}
		}
	}
	return ""
}

func firstDescendant(n *xmltree.Node, name string) *xmltree.Node {
	all := n.FindAll(name)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// assignPositions assigns 1-based positions in emission order (§4.13 post-pass 1).
func (w *walker) assignPositions() {
	for i := range w.rows {
		w.rows[i].Position = i + 1
	}
}

// detectParallelProvisions marks any (provision, extent) pair whose
// provision appears under more than one extent, suffixing section_id with
// [{extent}] and sort_key with ~{extent} (§4.13 post-pass 3).
func (w *walker) detectParallelProvisions() {
	extentsByProvision := map[string]map[string]bool{}
	for _, r := range w.rows {
		if r.Provision == "" {
			continue
		}
		if extentsByProvision[r.Provision] == nil {
			extentsByProvision[r.Provision] = map[string]bool{}
		}
		extentsByProvision[r.Provision][r.ExtentCode] = true
	}
	for i := range w.rows {
		r := &w.rows[i]
		if r.Provision == "" {
			continue
		}
		if len(extentsByProvision[r.Provision]) > 1 {
			r.SectionID = r.SectionID + "[" + r.ExtentCode + "]"
			r.SortKey = r.SortKey + "~" + r.ExtentCode
		}
	}
}

// disambiguate suffixes any still-duplicate section_id with #{position}
// (§4.13 post-pass 4).
func (w *walker) disambiguate() {
	seen := map[string]int{}
	for _, r := range w.rows {
		seen[r.SectionID]++
	}
	counted := map[string]int{}
	for i := range w.rows {
		id := w.rows[i].SectionID
		if seen[id] <= 1 {
			continue
		}
		counted[id]++
		if counted[id] > 1 {
			w.rows[i].SectionID = fmt.Sprintf("%s#%d", id, w.rows[i].Position)
		}
	}
}
