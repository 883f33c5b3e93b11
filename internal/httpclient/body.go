package httpclient

import (
	"io"
	"net/http"
)

// maxBodySize bounds how much of a response body is buffered
const maxBodySize = 10 << 20

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
