package openapi

// NewComponents returns the shared error responses and the Error schema used
// by every file-lab endpoint.
func NewComponents() *Components {
	errorResponse := func(description string) *Response {
		return &Response{
			Description: description,
			Content: map[string]*MediaType{
				"application/json": {Schema: SchemaRef("Error")},
			},
		}
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"error": {Type: "string", Description: "Error message"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":          errorResponse("Invalid request or option"),
			"NotFound":            errorResponse("Resource not found"),
			"PayloadTooLarge":     errorResponse("Upload exceeds the configured size limit"),
			"UnprocessableEntity": errorResponse("Input could not be decoded or parsed"),
			"InternalError":       errorResponse("Encoding or rendering failed"),
		},
	}
}

// AddSchemas merges schemas into the components, replacing same-named entries.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the components, replacing same-named entries.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}
