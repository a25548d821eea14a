package listing

import (
	"errors"
	"fmt"

	"excelPanel/internal/api"
)

// Describe turns an error into the text shown next to the control that
// triggered it. The class only changes wording; nothing is retried.
func Describe(err error, baseURL string) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Kind {
	case api.KindNetwork:
		return fmt.Sprintf("Backend server is not reachable at %s. Check that the server is running.", baseURL)
	case api.KindServer:
		msg := apiErr.Message
		if msg == "" {
			msg = "Internal server error"
		}
		if apiErr.Details != "" {
			msg += " - " + apiErr.Details
		}
		return fmt.Sprintf("Server error (%d): %s. Please contact the administrator.", apiErr.Status, msg)
	default:
		return apiErr.Message
	}
}
