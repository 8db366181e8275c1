// Package render turns grouped lessons into the HTML grid markup served by
// the web surface.
package render

import (
	"html/template"
	"strings"

	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/i18n"
)

// row is the template view of one lesson
type row struct {
	Index    int
	LessonID string
	Date     string
	Badge    string
	Parts    []domain.Part
}

// page is the template view of the full document
type page struct {
	Lang   string
	Title  string
	Empty  string
	Alert  string
	Grid   template.HTML
	Margin string
}

var (
	gridTpl = template.Must(template.New("grid").Parse(gridHTML))
	pageTpl = template.Must(template.New("page").Parse(pageHTML))
)

// rows builds one view per lesson in insertion order. The date header comes
// from the first part.
func rows(g *domain.GroupedLessons) []row {
	out := make([]row, 0, g.Len())
	for i, id := range g.Keys() {
		parts := g.Parts(id)
		r := row{Index: i, LessonID: id, Badge: i18n.PartCount(len(parts)), Parts: parts}
		if len(parts) > 0 {
			r.Date = parts[0].Date
		}
		out = append(out, r)
	}
	return out
}

// Render returns the grid markup: one lesson-row section per lesson, one
// focusable card per part. Thumbnails are deferred in data-src.
func Render(g *domain.GroupedLessons) (string, error) {
	var sb strings.Builder
	if err := gridTpl.Execute(&sb, rows(g)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Page wraps the grid in a standalone document with the lazy thumbnail
// loader and keyboard navigation scripts
func Page(g *domain.GroupedLessons, lang string) (string, error) {
	return PageWithAlert(g, lang, "")
}

// PageWithAlert is Page with an error banner above the grid
func PageWithAlert(g *domain.GroupedLessons, lang, alert string) (string, error) {
	grid, err := Render(g)
	if err != nil {
		return "", err
	}
	p := page{
		Lang:   lang,
		Title:  i18n.Text(lang, i18n.MsgTitle),
		Grid:   template.HTML(grid),
		Alert:  alert,
		Margin: "200px 400px",
	}
	if g.Len() == 0 {
		p.Empty = i18n.Text(lang, i18n.MsgNoLessons)
	}

	var sb strings.Builder
	if err := pageTpl.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}

const gridHTML = `{{range .}}<section class="lesson-row" data-lesson-id="{{.LessonID}}" data-row="{{.Index}}">
<header class="lesson-header"><h2 class="lesson-date">{{.Date}}</h2><span class="badge">{{.Badge}}</span></header>
<div class="parts">{{$row := .Index}}{{range $col, $p := .Parts}}
<div class="card" tabindex="0" data-lesson-id="{{$p.LessonID}}" data-part-id="{{$p.PartID}}" data-row="{{$row}}" data-col="{{$col}}">
<div class="thumb" data-src="{{$p.ThumbnailURL}}"></div>
<div class="card-body"><h3 class="card-title">{{$p.Title}}</h3><p class="card-meta">{{$p.Duration}}</p></div>
</div>{{end}}
</div>
</section>
{{end}}`

const pageHTML = `<!doctype html>
<html lang="{{.Lang}}">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;margin:0;padding:1rem;background:#111;color:#eee}
.lesson-row{margin-bottom:1.5rem}
.lesson-header{display:flex;gap:.75rem;align-items:baseline}
.badge{font-size:.8rem;background:#333;border-radius:999px;padding:.1rem .6rem}
.parts{display:flex;gap:12px;overflow-x:auto;padding:.5rem 0}
.card{flex:0 0 240px;background:#1c1c1c;border-radius:8px;outline:none;cursor:pointer}
.card:focus{box-shadow:0 0 0 3px #e5a00d}
.thumb{height:135px;background:#222 center/cover no-repeat;border-radius:8px 8px 0 0;opacity:.2;transition:opacity .3s}
.thumb.loaded{opacity:1}
.card-body{padding:.5rem}
.card-title{font-size:.95rem;margin:0 0 .25rem}
.card-meta{font-size:.8rem;color:#aaa;margin:0}
.empty{color:#888}
.alert{background:#5c1a1a;border:1px solid #a33;border-radius:6px;padding:.75rem 1rem;margin-bottom:1rem}
</style>
<h1>{{.Title}}</h1>
{{if .Alert}}<div class="alert" role="alert">{{.Alert}}</div>{{end}}
{{if .Empty}}<p class="empty">{{.Empty}}</p>{{end}}
<div id="lessons">{{.Grid}}</div>
<script>
(function(){
  function load(el){
    el.style.backgroundImage = 'url("' + el.dataset.src + '")';
    el.classList.add('loaded');
  }
  var thumbs = document.querySelectorAll('.thumb[data-src]');
  if ('IntersectionObserver' in window) {
    var io = new IntersectionObserver(function(entries){
      entries.forEach(function(e){
        if (e.isIntersecting) { load(e.target); io.unobserve(e.target); }
      });
    }, {rootMargin: '{{.Margin}}'});
    thumbs.forEach(function(el){ io.observe(el); });
  } else {
    thumbs.forEach(load);
  }

  var rows = Array.prototype.map.call(document.querySelectorAll('.lesson-row'), function(r){
    return r.querySelectorAll('.card');
  });
  var cur = {row: 0, col: 0};
  function focus(){
    var card = rows[cur.row][cur.col];
    card.focus({preventScroll: true});
    card.scrollIntoView({behavior: 'smooth', block: 'center', inline: 'center'});
  }
  function play(card){ window.location.href = '/parts/' + encodeURIComponent(card.dataset.partId) + '/video'; }
  document.addEventListener('click', function(e){
    var card = e.target.closest('.card');
    if (card) play(card);
  });
  document.addEventListener('keydown', function(e){
    if (!rows.length) return;
    var r = cur.row, c = cur.col;
    switch (e.key) {
    case 'ArrowRight': c++; break;
    case 'ArrowLeft': c--; break;
    case 'ArrowDown': r++; break;
    case 'ArrowUp': r--; break;
    case 'Enter': play(rows[cur.row][cur.col]); return;
    default: return;
    }
    e.preventDefault();
    r = Math.max(0, Math.min(r, rows.length - 1));
    c = Math.max(0, Math.min(c, rows[r].length - 1));
    if (r === cur.row && c === cur.col) return;
    cur = {row: r, col: c};
    focus();
  });
})();
</script>
</html>
`
