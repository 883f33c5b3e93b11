package gateway

import (
	"net/http"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/httpclient"
)

// Classify turns a transport response into the envelope payload or one of
// the failure kinds. The status is checked before the body is looked at.
func Classify(resp *httpclient.Response) ([]byte, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, ierr.WithError(&ierr.TransportError{
			StatusCode: resp.StatusCode,
			Reason:     resp.Reason,
		}).
			WithHintf("Gateway returned http status %d", resp.StatusCode).
			WithReportableDetails(map[string]any{
				"status_code":   resp.StatusCode,
				"response_body": truncate(resp.Body, 512),
			}).
			Mark(ierr.ErrTransport)
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil || env.Code == nil {
		if err == nil {
			err = ierr.NewError("response envelope has no code").Error()
		}
		return nil, ierr.WithError(err).
			WithHint("Gateway response is not a valid envelope").
			WithReportableDetails(map[string]any{
				"response_body": truncate(resp.Body, 512),
			}).
			Mark(ierr.ErrMalformedResponse)
	}

	if *env.Code != 0 {
		return nil, ierr.WithError(&ierr.BusinessError{
			Code:    *env.Code,
			Message: env.Message,
		}).
			WithHint(env.Message).
			Mark(ierr.ErrBusiness)
	}

	return env.Response, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
