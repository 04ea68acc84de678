package quiz

import (
	"encoding/json"
	"log/slog"
)

// marshal encodes a response payload. The payloads are built from plain
// maps and model types; encoding them cannot fail in practice, so a
// failure is logged and reported as an empty message rather than aborting
// the request.
func marshal(payload map[string]any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		return nil
	}
	return data
}

// okMessage renders {"type":"response","result":"ok", ...info}.
func okMessage(info map[string]any) []byte {
	payload := map[string]any{
		"type":   "response",
		"result": "ok",
	}
	for key, value := range info {
		payload[key] = value
	}
	return marshal(payload)
}

// errorMessage renders an error response with the numeric error code and
// optional human-readable details.
func errorMessage(code ErrorCode, details string) []byte {
	payload := map[string]any{
		"type":       "response",
		"result":     "error",
		"error_code": int(code),
	}
	if details != "" {
		payload["details"] = details
	}
	return marshal(payload)
}

// message renders a typed server-initiated message, e.g.
// {"type":"question-opened", ...fields}.
func message(messageType string, fields map[string]any) []byte {
	payload := map[string]any{"type": messageType}
	for key, value := range fields {
		payload[key] = value
	}
	return marshal(payload)
}
