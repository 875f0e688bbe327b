package httpapi

import _ "embed"

//go:embed templates/feedback.tmpl
var feedbackTemplateHTML string

//go:embed templates/thank_you.tmpl
var thankYouTemplateHTML string

//go:embed templates/not_found.tmpl
var notFoundTemplateHTML string

//go:embed templates/admin.tmpl
var adminTemplateHTML string
