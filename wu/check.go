package wu

import (
	"fmt"

	"github.com/spf13/cast"

	"wunderground/internal/types"
)

// CheckError looks for the service's response.error envelope in a decoded
// response. With no envelope it returns ("", nil), whatever else the tree
// looks like. With one, the message is "<type>: <description>)"; raise
// selects whether it comes back as an *Error or as a plain string.
func CheckError(resp any, raise bool) (string, error) {
	envelope, ok := Extract(resp, "response.error").(map[string]any)
	if !ok {
		return "", nil
	}

	// The trailing parenthesis matches the service's own message format.
	msg := fmt.Sprintf("%s: %s)", cast.ToString(envelope["type"]), cast.ToString(envelope["description"]))
	if raise {
		return "", types.NewAppError(types.ErrCodeServiceError, msg, nil).WithDetails(map[string]any{
			"type":        envelope["type"],
			"description": envelope["description"],
		})
	}
	return msg, nil
}
