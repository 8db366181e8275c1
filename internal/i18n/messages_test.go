package i18n

import (
	"fmt"
	"testing"

	"github.com/mmcdole/aulas/internal/domain"
)

func TestTextUsesLanguage(t *testing.T) {
	if got := Text("pt", MsgVideoNotFound); got != "Vídeo não encontrado." {
		t.Fatalf("pt: got %q", got)
	}
	if got := Text("en", MsgVideoNotFound); got != "Video not found." {
		t.Fatalf("en: got %q", got)
	}
}

func TestTextFallsBackToPortuguese(t *testing.T) {
	if got := Text("not-a-tag!", MsgNoLessons); got != "Nenhuma aula disponível" {
		t.Fatalf("fallback: got %q", got)
	}
}

func TestTextFormatsArguments(t *testing.T) {
	if got := Text("en", MsgPlaying, "Part 1"); got != "Playing: Part 1" {
		t.Fatalf("got %q", got)
	}
}

func TestErrorTextMapsSentinels(t *testing.T) {
	offline := &domain.FetchError{Op: "lessons", Err: fmt.Errorf("%w: dial tcp", domain.ErrServerOffline)}
	if got := ErrorText("en", offline, MsgLoadLessonsFailed); got != "Cannot reach the server." {
		t.Fatalf("offline: got %q", got)
	}
	if got := ErrorText("pt", domain.ErrVideoNotFound, MsgLoadVideoFailed); got != "Vídeo não encontrado." {
		t.Fatalf("not found: got %q", got)
	}
	decode := &domain.FetchError{Op: "collections", Err: domain.ErrDecode}
	if got := ErrorText("en", decode, MsgLoadCollectionsFailed); got != "Could not load the lesson parts. Please try again later." {
		t.Fatalf("decode: got %q", got)
	}
}

func TestCatalogErrorTextByStage(t *testing.T) {
	collections := &domain.FetchError{Op: "collections", Err: fmt.Errorf("%w: eof", domain.ErrDecode)}
	if got := CatalogErrorText("en", collections); got != "Could not load the lesson parts. Please try again later." {
		t.Fatalf("collections: got %q", got)
	}
	lessons := &domain.FetchError{Op: "lessons", Err: fmt.Errorf("unexpected status code: %d", 500)}
	if got := CatalogErrorText("en", lessons); got != "Could not load the lessons. Please try again later." {
		t.Fatalf("lessons: got %q", got)
	}
}
