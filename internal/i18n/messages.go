package i18n

import (
	"errors"

	"github.com/mmcdole/aulas/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for user-facing text
const (
	MsgLoadLessonsFailed     = "load_lessons_failed"
	MsgLoadCollectionsFailed = "load_collections_failed"
	MsgLoadVideoFailed       = "load_video_failed"
	MsgVideoNotFound         = "video_not_found"
	MsgServerOffline         = "server_offline"
	MsgPlayerFailed          = "player_failed"
	MsgLoading               = "loading"
	MsgLoadingVideo          = "loading_video"
	MsgPlaying               = "playing"
	MsgNoLessons             = "no_lessons"
	MsgNoMatches             = "no_matches"
	MsgDismissHint           = "dismiss_hint"
	MsgCloseHint             = "close_hint"
	MsgTitle                 = "title"
	MsgFilterPlaceholder     = "filter_placeholder"
	MsgHelpMove              = "help_move"
	MsgHelpPlay              = "help_play"
	MsgHelpFilter            = "help_filter"
	MsgHelpQuit              = "help_quit"
)

var translations = map[language.Tag]map[string]string{
	language.Portuguese: {
		MsgLoadLessonsFailed:     "Não foi possível carregar as aulas. Tente novamente mais tarde.",
		MsgLoadCollectionsFailed: "Não foi possível carregar as partes das aulas. Tente novamente mais tarde.",
		MsgLoadVideoFailed:       "Não foi possível carregar o vídeo. Tente novamente.",
		MsgVideoNotFound:         "Vídeo não encontrado.",
		MsgServerOffline:         "Sem conexão com o servidor.",
		MsgPlayerFailed:          "Não foi possível abrir o player de vídeo.",
		MsgLoading:               "Carregando aulas...",
		MsgLoadingVideo:          "Carregando vídeo...",
		MsgPlaying:               "Reproduzindo: %s",
		MsgNoLessons:             "Nenhuma aula disponível",
		MsgNoMatches:             "Nenhum resultado",
		MsgDismissHint:           "enter/esc para fechar",
		MsgCloseHint:             "esc para fechar o vídeo",
		MsgTitle:                 "Aulas Diárias",
		MsgFilterPlaceholder:     "digite para filtrar...",
		MsgHelpMove:              "mover",
		MsgHelpPlay:              "assistir",
		MsgHelpFilter:            "filtrar",
		MsgHelpQuit:              "sair",
	},
	language.English: {
		MsgLoadLessonsFailed:     "Could not load the lessons. Please try again later.",
		MsgLoadCollectionsFailed: "Could not load the lesson parts. Please try again later.",
		MsgLoadVideoFailed:       "Could not load the video. Please try again.",
		MsgVideoNotFound:         "Video not found.",
		MsgServerOffline:         "Cannot reach the server.",
		MsgPlayerFailed:          "Could not open the video player.",
		MsgLoading:               "Loading lessons...",
		MsgLoadingVideo:          "Loading video...",
		MsgPlaying:               "Playing: %s",
		MsgNoLessons:             "No lessons available",
		MsgNoMatches:             "No matches",
		MsgDismissHint:           "enter/esc to dismiss",
		MsgCloseHint:             "esc to close the video",
		MsgTitle:                 "Daily Lessons",
		MsgFilterPlaceholder:     "type to filter...",
		MsgHelpMove:              "move",
		MsgHelpPlay:              "play",
		MsgHelpFilter:            "filter",
		MsgHelpQuit:              "quit",
	},
}

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Portuguese))
	for tag, entries := range translations {
		for key, msg := range entries {
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Printer returns a printer for the UI language, falling back to Portuguese
func Printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Portuguese
	}
	return message.NewPrinter(tag, message.Catalog(messages))
}

// Text translates a message key for the UI language
func Text(lang, key string, args ...interface{}) string {
	return Printer(lang).Sprintf(key, args...)
}

// ErrorText picks the user-facing message for err: connection and missing
// video errors have their own text, anything else uses fallbackKey
func ErrorText(lang string, err error, fallbackKey string) string {
	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return Text(lang, MsgServerOffline)
	case errors.Is(err, domain.ErrVideoNotFound):
		return Text(lang, MsgVideoNotFound)
	default:
		return Text(lang, fallbackKey)
	}
}

// CatalogErrorText is the alert for a failed startup load: which message is
// shown depends on whether the lessons or their parts could not be read
func CatalogErrorText(lang string, err error) string {
	key := MsgLoadLessonsFailed
	var fe *domain.FetchError
	if errors.As(err, &fe) && fe.Op == "collections" {
		key = MsgLoadCollectionsFailed
	}
	return ErrorText(lang, err, key)
}
