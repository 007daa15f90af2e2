package apierrors_test

import (
	"os"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"taskflow/pkg/apierrors"
	"taskflow/pkg/translator"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	translator.Translator.MustAddMessages(language.English, &i18n.Message{
		ID:    apierrors.MsgTaskNotFound,
		Other: "Task not found",
	})
	translator.Translator.MustAddMessages(language.French, &i18n.Message{
		ID:    apierrors.MsgTaskNotFound,
		Other: "Tâche introuvable",
	})
	os.Exit(m.Run())
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(404, apierrors.MsgTaskNotFound, "en")
	assert.Equal(t, 404, err.ErrDetails.Code)
	assert.Equal(t, "Task not found", err.ErrDetails.Message)
}

func TestGetTransErrorMsg_UsesRequestedLanguage(t *testing.T) {
	assert.Equal(t, "Tâche introuvable", apierrors.GetTransErrorMsg(apierrors.MsgTaskNotFound, "fr"))
	assert.Equal(t, "Tâche introuvable", apierrors.GetTransErrorMsg(apierrors.MsgTaskNotFound, "fr-FR,fr;q=0.9"))
}

func TestGetTransErrorMsg_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Task not found", apierrors.GetTransErrorMsg(apierrors.MsgTaskNotFound, "de"))
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	assert.Equal(t, "unknown_key", apierrors.GetTransErrorMsg("unknown_key", "en"))
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, apierrors.MsgTaskNotFound, "en")
	assert.Equal(t, "Code: 500, Message: Task not found", err.Error())
}

func TestCreateErrorWithData_FillsTemplate(t *testing.T) {
	translator.Translator.MustAddMessages(language.English, &i18n.Message{
		ID:    apierrors.MsgInvalidSummaryLimit,
		Other: "limit must be a number between 1 and {{.Max}}",
	})

	err := apierrors.CreateErrorWithData(400, apierrors.MsgInvalidSummaryLimit, "en", map[string]any{"Max": 365})
	assert.Equal(t, 400, err.ErrDetails.Code)
	assert.Equal(t, "limit must be a number between 1 and 365", err.ErrDetails.Message)
}
