package server

import (
	"github.com/goccy/go-json"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

// JSON encodes v as the response body and sets the status and Content-Type.
// On encoding failure the response is left untouched.
//
// Example:
//
//	r.Get("/stats", func(req *http11.Request) *http11.Response {
//	    resp := http11.NewResponse(http11.StatusOK)
//	    if err := server.JSON(resp, http11.StatusOK, srv.Stats().Snapshot()); err != nil {
//	        resp.Status = http11.StatusInternalServerError
//	    }
//	    return resp
//	})
func JSON(resp *http11.Response, status http11.Status, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	resp.Status = status
	resp.AddHeader(http11.HeaderContentType, "application/json")
	resp.SetBody(body)
	return nil
}

// errorBody is the JSON body of responses the server generates itself.
type errorBody struct {
	Error string `json:"error"`
}
