package apierrors

const (
	MsgInternalError = "internalError"

	MsgMissingToken       = "missingToken"
	MsgInvalidToken       = "invalidToken"
	MsgInvalidAuthPayload = "invalidAuthPayload"
	MsgEmailTaken         = "emailTaken"
	MsgInvalidCredentials = "invalidCredentials"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"

	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"

	MsgInvalidSummaryPayload = "invalidSummaryPayload"
	MsgInvalidSummaryDate    = "invalidSummaryDate"
	MsgInvalidSummaryLimit   = "invalidSummaryLimit"
	MsgSummaryNotFound       = "summaryNotFound"
	MsgSummaryConflict       = "summaryConflict"
	MsgNoSummariesInRange    = "noSummariesInRange"
	MsgFailListSummaries     = "failListSummaries"
	MsgFailGetSummary        = "failGetSummary"
	MsgFailSaveSummary       = "failSaveSummary"
	MsgFailDeleteSummary     = "failDeleteSummary"

	MsgProviderUnauthorized     = "providerUnauthorized"
	MsgProviderQuotaExceeded    = "providerQuotaExceeded"
	MsgProviderModelUnavailable = "providerModelUnavailable"
	MsgProviderNotConfigured    = "providerNotConfigured"
	MsgFailGenerateSummary      = "failGenerateSummary"
)
