// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// FailurePrefix starts every failure message returned to a tool caller.
const FailurePrefix = "🚨 "

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindServiceUnavailable
	KindAuthFailure
	KindUpstream
	KindParse
	KindNotFound
	KindValidation
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindServiceUnavailable: "service_unavailable",
	KindAuthFailure:        "auth_failure",
	KindUpstream:           "upstream_error",
	KindParse:              "parse_error",
	KindNotFound:           "not_found",
	KindValidation:         "validation_error",
}

func (k Kind) String() string { return kindNames[k] }

// rawLimit bounds the response prefix kept on parse failures.
const rawLimit = 200

// Error is a classified provider failure.
type Error struct {
	Kind     Kind
	Provider string

	// Code is the upstream error code or HTTP status, when there is one.
	Code    string
	Message string

	// Missing names the unset credentials of an unavailable provider.
	Missing []string

	// Raw is a bounded prefix of the response that failed to parse.
	Raw string

	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Unavailable reports a provider whose credentials are incomplete.
func Unavailable(provider string, missing ...string) *Error {
	return &Error{Kind: KindServiceUnavailable, Provider: provider, Missing: missing}
}

// AuthFailed reports a rejected or unreadable token exchange.
func AuthFailed(provider string, cause error) *Error {
	return &Error{Kind: KindAuthFailure, Provider: provider, cause: cause}
}

// Upstream reports an error the remote API declared in its response body.
func Upstream(provider, code, message string) *Error {
	return &Error{Kind: KindUpstream, Provider: provider, Code: code, Message: message}
}

// HTTPStatus reports a non-200 response.
func HTTPStatus(provider string, status int, body []byte) *Error {
	return &Error{
		Kind:     KindUpstream,
		Provider: provider,
		Code:     strconv.Itoa(status),
		Message:  "요청 실패, 응답: " + Snippet(string(body), rawLimit),
	}
}

// Transport reports a request that never produced a response.
func Transport(provider string, cause error) *Error {
	return &Error{Kind: KindUpstream, Provider: provider, Message: "요청 실패", cause: cause}
}

// Parse reports a response body that could not be decoded.
func Parse(provider string, cause error, body []byte) *Error {
	return &Error{Kind: KindParse, Provider: provider, Raw: Snippet(string(body), rawLimit), cause: cause}
}

// NotFound reports an empty answer where a record was required.
func NotFound(provider, message string) *Error {
	return &Error{Kind: KindNotFound, Provider: provider, Message: message}
}

// Invalid reports caller input rejected before any request was made.
func Invalid(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Render converts err into the text returned to a tool caller. The result
// always begins with FailurePrefix.
func Render(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return FailurePrefix + "요청 처리 중 오류가 발생했습니다: " + err.Error()
	}

	switch e.Kind {
	case KindServiceUnavailable:
		return fmt.Sprintf("%s%s API 인증 정보가 설정되지 않았습니다.\n.env 파일을 생성하거나 환경변수를 설정해주세요.\n필요한 변수: %s",
			FailurePrefix, e.Provider, strings.Join(e.Missing, ", "))
	case KindAuthFailure:
		msg := FailurePrefix + "토큰 발급에 실패했습니다. API 키와 인증 정보를 확인해주세요."
		if e.cause != nil {
			msg += "\n원인: " + e.cause.Error()
		}
		return msg
	case KindUpstream:
		msg := e.Message
		if e.cause != nil {
			msg += ": " + e.cause.Error()
		}
		if e.Code != "" {
			return fmt.Sprintf("%s%s API 오류 (코드: %s): %s", FailurePrefix, e.Provider, e.Code, msg)
		}
		return fmt.Sprintf("%s%s API 오류: %s", FailurePrefix, e.Provider, msg)
	case KindParse:
		msg := fmt.Sprintf("%s%s 응답 파싱 오류", FailurePrefix, e.Provider)
		if e.cause != nil {
			msg += ": " + e.cause.Error()
		}
		if e.Raw != "" {
			msg += "\n응답: " + e.Raw
		}
		return msg
	default:
		return FailurePrefix + e.Message
	}
}

// IsFailure reports whether text is a rendered failure.
func IsFailure(text string) bool {
	return strings.HasPrefix(text, FailurePrefix)
}
