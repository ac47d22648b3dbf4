package resultchecker

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrIncompleteReport means the provider returned a report missing one
	// or more required sections.
	ErrIncompleteReport = errors.New("the report sheet is incomplete, please contact the school")

	errEmptyPayload = errors.New("empty response payload")
)

// Report is the normalized report sheet. Section payloads stay raw because
// their shapes vary between provider deployments; completeness only
// requires their presence.
type Report struct {
	Student   json.RawMessage `json:"student"`
	Term      json.RawMessage `json:"term"`
	Cognitive json.RawMessage `json:"cognitive"`
	School    json.RawMessage `json:"school"`
	Comment   json.RawMessage `json:"comment"`
}

// Complete reports whether every required section is present and non-null.
func (r *Report) Complete() bool {
	if r == nil {
		return false
	}
	for _, section := range []json.RawMessage{r.Student, r.Term, r.Cognitive, r.School, r.Comment} {
		if !present(section) {
			return false
		}
	}
	return true
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && string(trimmed) != "null"
}

// StudentInfo is the resolved student from the validate step.
type StudentInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
	SchoolID  string `json:"schoolId"`
}

// NormalizeStudent accepts the student either at the payload root or nested
// under a "student" key with schoolId alongside.
func NormalizeStudent(raw json.RawMessage) (*StudentInfo, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmptyPayload
	}

	var wrapped struct {
		Student  json.RawMessage `json:"student"`
		SchoolID string          `json:"schoolId"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil && present(wrapped.Student) {
		var info StudentInfo
		if err := json.Unmarshal(wrapped.Student, &info); err != nil {
			return nil, errors.New("unrecognized student payload")
		}
		if info.SchoolID == "" {
			info.SchoolID = wrapped.SchoolID
		}
		return &info, nil
	}

	var info StudentInfo
	if err := json.Unmarshal(trimmed, &info); err != nil {
		return nil, errors.New("unrecognized student payload")
	}
	if info.ID == "" && info.Name == "" && info.RegNumber == "" {
		return nil, errors.New("student not found in payload")
	}
	return &info, nil
}

// NormalizeToken accepts the two token shapes the provider sends: a bare
// JSON string or an object with a "token" field.
func NormalizeToken(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", errEmptyPayload
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", errors.New("empty token")
		}
		return s, nil
	}

	var obj struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", errors.New("unrecognized token payload")
	}
	if strings.TrimSpace(obj.Token) == "" {
		return "", errors.New("empty token")
	}
	return obj.Token, nil
}

// NormalizeReport accepts the report either at the payload root or nested
// under a "reportSheet" key.
func NormalizeReport(raw json.RawMessage) (*Report, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmptyPayload
	}

	var wrapped struct {
		ReportSheet json.RawMessage `json:"reportSheet"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil && present(wrapped.ReportSheet) {
		trimmed = bytes.TrimSpace(wrapped.ReportSheet)
	}

	var report Report
	if err := json.Unmarshal(trimmed, &report); err != nil {
		return nil, errors.New("unrecognized report payload")
	}
	return &report, nil
}
