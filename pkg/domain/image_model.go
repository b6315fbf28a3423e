package domain

const (
	GeminiFlashModel = "Toolbaz/gemini-2.5-flash"
	DallE2Model      = "dall-e-2"
	DallE3Model      = "dall-e-3"
)

type ImageSize string

const (
	Size256x256   ImageSize = "256x256"
	Size512x512   ImageSize = "512x512"
	Size1024x1024 ImageSize = "1024x1024"
)
