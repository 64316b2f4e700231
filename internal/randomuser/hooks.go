package randomuser

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/userfeed/internal/logging"
)

// StatusHook logs responses that usually need attention upstream
// (401 and 500). It takes no corrective action.
func StatusHook(logger logging.Logger) ResponseHook {
	return func(ctx context.Context, resp *RawResponse) {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			logger.Warn(ctx, "unauthorized response", "status", resp.StatusCode)
		case http.StatusInternalServerError:
			logger.Error(ctx, "server error response", "status", resp.StatusCode)
		}
	}
}
