package types

type ContentType string

const (
	NONE                ContentType = ""
	JSON                ContentType = "application/json"
	JSON_PLAINTEXT_UTF8 ContentType = "application/json; charset=UTF-8"
	FORM                ContentType = "application/x-www-form-urlencoded"
	PLAINTEXT_UTF8      ContentType = "text/plain;charset=UTF-8"
)

type HeaderOpts struct {
	WithCookies   bool
	WithCsrfToken bool
	WithRequestID bool
	Referer       string
	Origin        string
	Extra         map[string]string
}
