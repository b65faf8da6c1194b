// Package i18n localizes user-facing API messages. Romanian is the
// default; English is served when the client prefers it.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	RateLimited        = "rate_limited"
	TokenMissing       = "token_missing"
	TokenNotFound      = "token_not_found"
	TokenAlreadyUsed   = "token_already_used"
	TokenExpired       = "token_expired"
	RequestIDRequired  = "request_id_required"
	EmailRequired      = "email_required"
	EmailInvalid       = "email_invalid"
	InvalidBody        = "invalid_body"
	InvalidInput       = "invalid_input"
	RequestNotFound    = "request_not_found"
	Unauthorized       = "unauthorized"
	Forbidden          = "forbidden"
	InternalError      = "internal_error"
	UploadNoFiles      = "upload_no_files"
	UploadInvalidFiles = "upload_invalid_files"
	UploadTooLarge     = "upload_too_large"
	UploadTooManyFiles = "upload_too_many_files"
	UploadFileTooLarge = "upload_file_too_large"
	UploadFileType     = "upload_file_type"
)

var supported = []language.Tag{
	language.Romanian, // first entry is the fallback
	language.English,
}

var matcher = language.NewMatcher(supported)

var messages = map[string][2]string{ // key -> {ro, en}
	RateLimited:        {"Prea multe cereri. Vă rugăm să încercați din nou mai târziu.", "Too many requests. Please try again later."},
	TokenMissing:       {"Lipsește tokenul de încărcare.", "The upload token is missing."},
	TokenNotFound:      {"Linkul de încărcare nu este valid.", "This upload link is not valid."},
	TokenAlreadyUsed:   {"Acest link a fost deja folosit. Fișierele au fost trimise.", "This link has already been used. Your files were submitted."},
	TokenExpired:       {"Acest link a expirat. Cereți un link nou.", "This link has expired. Please request a new one."},
	RequestIDRequired:  {"Lipsește identificatorul cererii.", "The request id is required."},
	EmailRequired:      {"Adresa de email este obligatorie.", "The email address is required."},
	EmailInvalid:       {"Adresa de email nu este validă.", "The email address is not valid."},
	InvalidBody:        {"Corpul cererii nu este valid.", "The request body is not valid."},
	InvalidInput:       {"Datele trimise nu sunt valide: %s", "The submitted data is not valid: %s"},
	RequestNotFound:    {"Cererea de mutare nu a fost găsită.", "The moving request was not found."},
	Unauthorized:       {"Autentificare necesară.", "Authentication required."},
	Forbidden:          {"Nu aveți acces la această cerere.", "You do not have access to this request."},
	InternalError:      {"A apărut o eroare. Vă rugăm să încercați din nou.", "Something went wrong. Please try again."},
	UploadNoFiles:      {"Nu a fost selectat niciun fișier.", "No files were selected."},
	UploadInvalidFiles: {"Fișier respins: %s", "File rejected: %s"},
	UploadTooLarge:     {"Fișierele depășesc dimensiunea maximă permisă.", "The files exceed the maximum allowed size."},
	UploadTooManyFiles: {"Puteți încărca cel mult %d fișiere odată.", "You can upload at most %d files at once."},
	UploadFileTooLarge: {"Fișierul %s este prea mare (maximum %d MB pentru poze și %d MB pentru video).", "File %s is too large (maximum %d MB for photos and %d MB for videos)."},
	UploadFileType:     {"Fișierul %s nu este o poză sau un video acceptat (JPG, PNG, WEBP, HEIC, MP4, MOV, WEBM).", "File %s is not a supported photo or video (JPG, PNG, WEBP, HEIC, MP4, MOV, WEBM)."},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Romanian))
	for key, m := range messages {
		_ = b.SetString(language.Romanian, key, m[0])
		_ = b.SetString(language.English, key, m[1])
	}
	return b
}

// Match picks the best supported language for an Accept-Language value.
func Match(acceptLanguage string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Printer returns a message printer for the given language.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// T localizes key for the request's preferred language.
func T(r *http.Request, key string, args ...any) string {
	return Printer(Match(r.Header.Get("Accept-Language"))).Sprintf(key, args...)
}
