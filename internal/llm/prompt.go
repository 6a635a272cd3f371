package llm

// BuildImageExtractPrompt asks the model for plain text only, no JSON.
// OCR for uploaded menu images is delegated entirely to the model.
func BuildImageExtractPrompt() string {
	return `Extract all text from this menu image.
Return only the text content, formatted as it appears on the menu.
Do not add commentary, markdown, or explanations.`
}

// BuildPDFExtractPrompt is used when a PDF has no usable text layer.
func BuildPDFExtractPrompt() string {
	return `Extract all text from this PDF document.
Return only the text content, formatted as it appears, preserving the menu structure.
Do not add commentary, markdown, or explanations.`
}
