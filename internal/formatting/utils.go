package formatting

import (
	"encoding/json"
	"fmt"
)

// PrettyJSON formats any value as indented JSON for debug logs and error messages.
// It falls back to fmt.Sprintf when the value cannot be marshaled.
//
// Example:
//
//	logging.Debug("API", "response body: %s", formatting.PrettyJSON(channel))
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
