package utils

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ShouldRetry reports whether a model call failed for a transient reason.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == 429
	}
	errMsg := strings.ToLower(err.Error())
	for _, transient := range []string{
		"rate limit",
		"500 internal server error",
		"502 bad gateway",
		"503 service unavailable",
		"504 gateway timeout",
		"timeout",
		"connection reset by peer",
		"context deadline exceeded",
	} {
		if strings.Contains(errMsg, transient) {
			return true
		}
	}
	return false
}

// DetermineFileType names the kind of an artifact from its filename.
func DetermineFileType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return "HTML"
	case ".css":
		return "CSS"
	case ".js":
		return "JavaScript"
	case ".json":
		return "JSON"
	case ".md":
		return "Markdown"
	case ".txt":
		return "Text"
	case ".yaml", ".yml":
		return "YAML"
	default:
		return "Unknown"
	}
}

// ContentType maps a file type from DetermineFileType to a MIME type.
func ContentType(fileType string) string {
	switch fileType {
	case "HTML":
		return "text/html; charset=utf-8"
	case "CSS":
		return "text/css; charset=utf-8"
	case "JavaScript":
		return "text/javascript; charset=utf-8"
	case "JSON":
		return "application/json"
	case "Markdown":
		return "text/markdown; charset=utf-8"
	case "YAML":
		return "application/yaml"
	case "Text":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
