package i18n

// Authentication
var (
	ErrorInvalidCredentials = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorUnauthorizedAccess = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrorForbiddenAccess    = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrorUsernameExists     = NewErrorWithCode("ErrorUsernameExists", ErrorConflict)
)

// Validation and persistence
var (
	ErrorRequiredField   = NewErrorWithCode("ErrorRequiredField", ErrorBadRequest)
	ErrorInvalidValue    = NewErrorWithCode("ErrorInvalidValue", ErrorBadRequest)
	ErrorRecordNotFound  = NewErrorWithCode("ErrorRecordNotFound", ErrorNotFound)
	ErrorRecordInUse     = NewErrorWithCode("ErrorRecordInUse", ErrorConflict)
	ErrorDatabaseFailure = NewErrorWithCode("ErrorDatabaseFailure", ErrorInternalServer)
	ErrorDeviceNotAvail  = NewErrorWithCode("ErrorDeviceNotAvailable", ErrorConflict)
)

// Flash message IDs (success/info)
const (
	MsgLoginWelcome    = "MsgLoginWelcome"
	MsgLogout          = "MsgLogout"
	MsgRegistered      = "MsgRegistered"
	MsgCreated         = "MsgCreated"
	MsgUpdated         = "MsgUpdated"
	MsgDeleted         = "MsgDeleted"
	MsgDistributed     = "MsgDistributed"
	MsgPasswordChanged = "MsgPasswordChanged"
)
