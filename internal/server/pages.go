package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"hoshin-matrix/internal/hoshin"
	"hoshin-matrix/internal/manual"
	"hoshin-matrix/internal/models"
	"hoshin-matrix/internal/parser"

	"github.com/rs/zerolog/hlog"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageAutomatic = "automatic.html"
	pageManual    = "manual.html"
)

type pages struct {
	byName map[string]*template.Template
}

func loadPages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template)}
	for _, name := range []string{pageAutomatic, pageManual} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		p.byName[name] = t
	}
	return p, nil
}

// render executes the page into a buffer first so template errors become a
// clean 500.
func (p *pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.byName[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", name).Msg("Error rendering page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type modeOption struct {
	Value    string
	Title    string
	Selected bool
}

func modeOptions(current models.Mode) []modeOption {
	var opts []modeOption
	for _, m := range []models.Mode{models.ModeAutomatic, models.ModeManual} {
		opts = append(opts, modeOption{Value: m.String(), Title: m.Title(), Selected: m == current})
	}
	return opts
}

type automaticView struct {
	Modes           []modeOption
	Inputs          models.Inputs
	Report          *hoshin.Report
	MatrixHTML      template.HTML
	SuggestionsHTML template.HTML
	LegendHTML      template.HTML
	Warning         string
	Error           string
}

// newAutomaticView trusts the report HTML: goldmark drops raw HTML from the
// model output.
func newAutomaticView(sess *Session) automaticView {
	v := automaticView{
		Modes:  modeOptions(models.ModeAutomatic),
		Inputs: sess.Inputs,
		Report: sess.Report,
	}
	if sess.Report != nil {
		v.MatrixHTML = template.HTML(sess.Report.MatrixHTML)
		v.SuggestionsHTML = template.HTML(sess.Report.SuggestionsHTML)
		if legend, err := parser.RenderHTML(models.Legend); err == nil {
			v.LegendHTML = template.HTML(legend)
		}
		v.Warning = sess.Report.Warning
	}
	return v
}

type listField struct {
	Name  string
	Title string
	Label string
	Text  string
}

type selectorCell struct {
	Label string
	Field string
	Value models.Relation
}

type pairView struct {
	Title string
	Cells []selectorCell
}

type relationOption struct {
	Value models.Relation
	Title string
}

type manualView struct {
	Modes     []modeOption
	Lists     []listField
	Pairs     []pairView
	Relations []relationOption
	Error     string
	Notice    string
}

var listFields = []struct {
	name  string
	level manual.Level
	label string
}{
	{"strategic", manual.LevelStrategic, "List strategic objectives (one per line)"},
	{"annual", manual.LevelAnnual, "List annual objectives (one per line)"},
	{"priorities", manual.LevelPriorities, "List priorities (one per line)"},
	{"kpis", manual.LevelKPIs, "List KPIs (one per line)"},
	{"responsibles", manual.LevelResponsibles, "List responsible persons (one per line)"},
}

func newManualView(sess *Session) manualView {
	v := manualView{Modes: modeOptions(models.ModeManual)}
	for _, f := range listFields {
		v.Lists = append(v.Lists, listField{
			Name:  f.name,
			Title: f.level.Title(),
			Label: f.label,
			Text:  manual.Text(sess.Plan.Entities(f.level)),
		})
	}
	for _, pair := range manual.Pairs {
		pv := pairView{Title: pair.Title}
		for _, row := range sess.Plan.Entities(pair.Rows) {
			for _, col := range sess.Plan.Entities(pair.Cols) {
				pv.Cells = append(pv.Cells, selectorCell{
					Label: pair.Label(row, col),
					Field: manual.FieldName(pair.ID, row, col),
					Value: sess.Selections.Get(pair.ID, row, col),
				})
			}
		}
		v.Pairs = append(v.Pairs, pv)
	}
	for _, rel := range models.Relations {
		title := string(rel)
		if rel != models.RelationNone {
			title += " (" + rel.Describe() + ")"
		}
		v.Relations = append(v.Relations, relationOption{Value: rel, Title: title})
	}
	return v
}
