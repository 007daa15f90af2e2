package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"taskflow/pkg/translator"
)

// JsonErr is the body of every failed API response.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError builds the envelope with the message translated for lang.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return CreateErrorWithData(code, msgKey, lang, nil)
}

// CreateErrorWithData fills the message template with data before translating.
func CreateErrorWithData(code int, msgKey string, lang string, data map[string]any) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: translate(msgKey, lang, data)}}
}

// GetTransErrorMsg returns the message for msgKey in lang, then English, then
// the key itself.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translate(msgKey, lang, nil)
}

func translate(msgKey, lang string, data map[string]any) string {
	if translator.Translator == nil {
		return msgKey
	}

	localizer := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: msgKey, TemplateData: data})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
