package cnst

const (
	// AppName is the application name used for logging and metrics namespaces
	AppName = "simontok"

	// SessionCookie is the name of the session cookie carrying the signed token
	SessionCookie = "simontok_session"

	// LangCookie stores the user's preferred display language
	LangCookie = "simontok_lang"

	// XLang is the header used to override the display language
	XLang = "X-Lang"
)

// Supported display languages
const (
	LangID = "id"
	LangEN = "en"
)

// Gin context keys
const (
	CtxAccount = "account"
	CtxLang    = "lang"
	CtxReqID   = "request_id"
)

// TrigramCentral is the office allowed to run the distribution workflow.
const TrigramCentral = "PJB"
