package email

// PreviewData holds sample values for rendering each template without a
// real recipient, e.g. from `lightbnb email-preview welcome`.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName":  "Devin Sanders",
		"UserEmail": "tristanjacobs@gmail.com",
	},
}

// RenderPreview renders name with its PreviewData.
func RenderPreview(name Template) (string, error) {
	return Render(name, PreviewData[name])
}
