package servekit

// createResponse wraps a handler result in the response envelope. The error,
// when present, travels as its message string.
func createResponse[T any](body T, err error) StdResponse[T] {
	resp := StdResponse[T]{Body: body}
	if err != nil {
		msg := err.Error()
		resp.Error = &msg
	}
	return resp
}
