package tools

import "github.com/JaimeStill/file-lab/pkg/openapi"

// spec holds OpenAPI operation definitions for the tools endpoints.
type spec struct {
	Templates         *openapi.Operation
	CompressImage     *openapi.Operation
	ConvertFormat     *openapi.Operation
	ResizeForTemplate *openapi.Operation
	WatermarkImage    *openapi.Operation
	ConvertHEICBatch  *openapi.Operation
	CompressPDF       *openapi.Operation
	MergePDF          *openapi.Operation
	SplitPDF          *openapi.Operation
	ProtectPDF        *openapi.Operation
	WatermarkPDF      *openapi.Operation
	Thumbnails        *openapi.Operation
	PDFInfo           *openapi.Operation
}

var (
	fileField    = openapi.FileField("Input file")
	qualityField = openapi.Field("number", "Lossy quality in (0,1]", 0.8)
	formatField  = openapi.Field("string", "Output format: jpeg, png, webp, gif, bmp, tiff", "webp")
	opacityField = openapi.Field("number", "Watermark opacity in [0,1]", DefaultOpacity)
	posField     = openapi.Field("string", "center, top-left, top-right, bottom-left, bottom-right", "center")
)

func sizedResponses(description, contentType string) map[int]*openapi.Response {
	return map[int]*openapi.Response{
		200: openapi.ResponseFile(description, contentType),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("PayloadTooLarge"),
		422: openapi.ResponseRef("UnprocessableEntity"),
		500: openapi.ResponseRef("InternalError"),
	}
}

// Spec contains OpenAPI operation definitions for all tools endpoints.
var Spec = spec{
	Templates: &openapi.Operation{
		Summary:     "List social media templates",
		Description: "Returns the template catalog in display order",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Template catalog", "Template"),
		},
	},
	CompressImage: &openapi.Operation{
		Summary:     "Compress image",
		Description: "Re-encodes an image at the given quality. Size metadata is returned in X-Original-Size, X-Output-Size, and X-Savings-Percent",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":    fileField,
			"quality": qualityField,
			"format":  formatField,
		}, "file"),
		Responses: sizedResponses("Compressed image", "application/octet-stream"),
	},
	ConvertFormat: &openapi.Operation{
		Summary:     "Convert image format",
		Description: "Decodes any supported raster or HEIC image and encodes it in the target format",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":    fileField,
			"quality": qualityField,
			"format":  formatField,
		}, "file"),
		Responses: sizedResponses("Converted image", "application/octet-stream"),
	},
	ResizeForTemplate: &openapi.Operation{
		Summary:     "Resize image for template",
		Description: "Letterboxes an image onto a white frame of the template's exact size",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":     fileField,
			"template": openapi.Field("string", "Template name or slug", "instagram-post"),
		}, "file", "template"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseFile("Resized JPEG", "image/jpeg"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	WatermarkImage: &openapi.Operation{
		Summary:     "Watermark image",
		Description: "Draws a text or image watermark. Exactly one of text or mark is required",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":      fileField,
			"text":      openapi.Field("string", "Watermark text", "SAMPLE"),
			"mark":      openapi.FileField("Watermark image"),
			"color":     openapi.Field("string", "Text color as #RRGGBB, rgb(), or rgba()", "#FFFFFF"),
			"opacity":   opacityField,
			"font_size": openapi.Field("number", "Font size in pixels; default width/20", nil),
			"position":  posField,
			"format":    formatField,
			"preview":   openapi.Field("boolean", "Use the tighter preview margin", false),
		}, "file"),
		Responses: sizedResponses("Watermarked image", "application/octet-stream"),
	},
	ConvertHEICBatch: &openapi.Operation{
		Summary:     "Convert HEIC batch",
		Description: "Converts every uploaded HEIC image to JPEG and returns them in a ZIP archive. The first failing file aborts the batch",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"files":   openapi.FileField("HEIC images, repeated"),
			"quality": qualityField,
		}, "files"),
		Responses: sizedResponses("ZIP of JPEG images", "application/zip"),
	},
	CompressPDF: &openapi.Operation{
		Summary:     "Compress PDF",
		Description: "Re-serializes with object streams; low quality also scales page content to 90%",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":    fileField,
			"quality": openapi.Field("string", "low, medium, or high", "medium"),
		}, "file"),
		Responses: sizedResponses("Compressed PDF", "application/pdf"),
	},
	MergePDF: &openapi.Operation{
		Summary:     "Merge PDFs",
		Description: "Concatenates all pages of every input in upload order",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"files": openapi.FileField("PDF documents, repeated, at least two"),
		}, "files"),
		Responses: sizedResponses("Merged PDF", "application/pdf"),
	},
	SplitPDF: &openapi.Operation{
		Summary:     "Extract pages",
		Description: "Builds a new document from a one-based page selection. Order and duplicates are kept",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":  fileField,
			"pages": openapi.Field("string", "Pages such as 1,3,3,2 or 2-4", "1-3"),
		}, "file", "pages"),
		Responses: sizedResponses("Extracted PDF", "application/pdf"),
	},
	ProtectPDF: &openapi.Operation{
		Summary:     "Protect PDF",
		Description: "Encrypts with AES-256 or returns the document re-serialized in passthrough mode. What was applied is reported in X-Protection-* headers",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":           fileField,
			"password":       openapi.Field("string", "User password, at least 4 characters", nil),
			"owner_password": openapi.Field("string", "Owner password; defaults to the user password", nil),
			"mode":           openapi.Field("string", "encrypt or passthrough", "encrypt"),
			"permissions":    openapi.Field("string", "none or all", "none"),
		}, "file", "password"),
		Responses: sizedResponses("Protected PDF", "application/pdf"),
	},
	WatermarkPDF: &openapi.Operation{
		Summary:     "Watermark PDF",
		Description: "Stamps Helvetica text on every page",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":      fileField,
			"text":      openapi.Field("string", "Watermark text", "DRAFT"),
			"color":     openapi.Field("string", "Text color", "#808080"),
			"opacity":   opacityField,
			"font_size": openapi.Field("integer", "Font size in points", 48),
			"position":  posField,
		}, "file", "text"),
		Responses: sizedResponses("Watermarked PDF", "application/pdf"),
	},
	Thumbnails: &openapi.Operation{
		Summary:     "Render page thumbnails",
		Description: "Renders every page as a JPEG data URI scaled to the requested width",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":  fileField,
			"width": openapi.Field("integer", "Thumbnail width in pixels", 200),
		}, "file"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Thumbnails in page order", "Thumbnail"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	PDFInfo: &openapi.Operation{
		Summary:     "Inspect PDF",
		Description: "Returns page count, page sizes, version, encryption state, and document metadata",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Property{
			"file":     fileField,
			"password": openapi.Field("string", "Password for encrypted documents", nil),
		}, "file"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document information", "PDFInfo"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
}

// Schemas returns the response schemas referenced by Spec.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Template": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"name":         {Type: "string"},
				"slug":         {Type: "string"},
				"width":        {Type: "integer"},
				"height":       {Type: "integer"},
				"aspect_ratio": {Type: "string", Example: "16:9"},
			},
		},
		"Thumbnail": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"page_number": {Type: "integer", Description: "One-based page number"},
				"data_uri":    {Type: "string", Description: "data:image/jpeg;base64,..."},
				"width":       {Type: "integer"},
				"height":      {Type: "integer"},
			},
		},
		"PDFInfo": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"page_count": {Type: "integer"},
				"page_sizes": {Type: "array", Description: "Page sizes in points"},
				"version":    {Type: "string"},
				"encrypted":  {Type: "boolean"},
				"title":      {Type: "string"},
				"author":     {Type: "string"},
				"subject":    {Type: "string"},
				"keywords":   {Type: "string"},
				"creator":    {Type: "string"},
				"producer":   {Type: "string"},
			},
		},
	}
}
