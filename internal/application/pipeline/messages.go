package pipeline

import (
	apperrors "github.com/fridgelens/v1/pkg/errors"
)

// UserMessage maps a failure to the single human-readable message
// shown inline when a pipeline stage fails. Each taxonomy code keeps
// its own message so the user can tell a dead network from a bad key.
func UserMessage(err error) string {
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidCredential:
		return "The AI service rejected the configured API key. Check your credentials."
	case apperrors.CodeUnreachable:
		return "Could not reach the AI service. Check your internet connection and try again."
	case apperrors.CodeUpstreamRejected:
		return "The AI service rejected the request. Please try again later."
	case apperrors.CodeMalformedResponse:
		return "The AI service returned an unexpected response. Please try again."
	default:
		return "Something went wrong while analyzing your photo. Please try again."
	}
}
