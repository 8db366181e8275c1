package render

import (
	"strings"
	"testing"

	"github.com/mmcdole/aulas/internal/domain"
)

func sampleGrouped() *domain.GroupedLessons {
	g := domain.NewGroupedLessons()
	g.Append(domain.Part{LessonID: "L1", PartID: "a", Title: "Parte 1", Duration: "1 hora e 1 minuto", Date: "01/03/2024", ThumbnailURL: "https://img.example/thumbnail?url=a&width=320"})
	g.Append(domain.Part{LessonID: "L1", PartID: "b", Title: "Parte <2>", Duration: "1 minuto", Date: "01/03/2024"})
	g.Append(domain.Part{LessonID: "L2", PartID: "c", Title: "Parte 1", Duration: "0 minutos", Date: "29/02/2024"})
	return g
}

func TestRenderEmptyHasNoRows(t *testing.T) {
	for _, g := range []*domain.GroupedLessons{nil, domain.NewGroupedLessons()} {
		out, err := Render(g)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if strings.Contains(out, "lesson-row") {
			t.Fatalf("expected zero rows, got %q", out)
		}
	}
}

func TestRenderRowsAndCards(t *testing.T) {
	out, err := Render(sampleGrouped())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(out, `class="lesson-row"`); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	if n := strings.Count(out, `class="card" tabindex="0"`); n != 3 {
		t.Fatalf("expected 3 focusable cards, got %d", n)
	}
	if strings.Index(out, `data-lesson-id="L1"`) > strings.Index(out, `data-lesson-id="L2"`) {
		t.Fatalf("rows out of insertion order")
	}
	for _, want := range []string{
		`data-part-id="a"`,
		`<span class="badge">2 partes</span>`,
		`<span class="badge">1 parte</span>`,
		`<h2 class="lesson-date">29/02/2024</h2>`,
		`Parte &lt;2&gt;`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markup missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDefersThumbnails(t *testing.T) {
	out, err := Render(sampleGrouped())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `data-src="https://img.example/thumbnail?url=a&amp;width=320"`) {
		t.Fatalf("expected deferred thumbnail url:\n%s", out)
	}
	if strings.Contains(out, ` src=`) || strings.Contains(out, "background-image") {
		t.Fatalf("thumbnail must not load eagerly:\n%s", out)
	}
}

func TestPageIncludesLazyLoader(t *testing.T) {
	out, err := Page(sampleGrouped(), "pt")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	for _, want := range []string{`<html lang="pt">`, "Aulas Diárias", "IntersectionObserver", "unobserve", `<div id="lessons">`} {
		if !strings.Contains(out, want) {
			t.Fatalf("page missing %q", want)
		}
	}

	empty, err := Page(nil, "en")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(empty, "No lessons available") || strings.Contains(empty, `class="lesson-row"`) {
		t.Fatalf("unexpected empty page")
	}
}

func TestPageWithAlert(t *testing.T) {
	out, err := PageWithAlert(nil, "pt", "Sem conexão com o servidor.")
	if err != nil {
		t.Fatalf("PageWithAlert: %v", err)
	}
	if !strings.Contains(out, `<div class="alert" role="alert">Sem conexão com o servidor.</div>`) {
		t.Fatalf("alert banner missing")
	}
}
