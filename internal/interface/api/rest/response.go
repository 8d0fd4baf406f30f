package rest

const ResponseMessage = "Success"

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
