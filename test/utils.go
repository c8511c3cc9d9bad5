package test

import (
	"bytes"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

func bodyString(resp *http.Response) string {
	body := resp.Body
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return "[!] error: failed to read response body: " + err.Error()
	}

	// restore the body so it can be read again (e.g. when bodyString is
	// evaluated as an assertion's message argument before bodyJSON runs)
	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	return string(bodyBytes)
}

func bodyJSON(resp *http.Response) gjson.Result {
	return gjson.Parse(bodyString(resp))
}
