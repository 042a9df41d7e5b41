package utils

import (
	"log"
	"strings"
)

const maxLoggedBody = 512

// LogEvent prints one line per notable step with module/action/request_id.
// Keep payloads and credentials out of message.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}

// LogError is LogEvent for failures. upstreamBody, when present, is the
// external API's response text and is truncated.
func LogError(requestID, module, action string, err error, upstreamBody string) {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	if body := strings.TrimSpace(upstreamBody); body != "" {
		log.Printf("[%s] action=%s request_id=%s error=%q upstream_body=%q", strings.ToUpper(module), action, strings.TrimSpace(requestID), msg, Truncate(body, maxLoggedBody))
		return
	}
	log.Printf("[%s] action=%s request_id=%s error=%q", strings.ToUpper(module), action, strings.TrimSpace(requestID), msg)
}
