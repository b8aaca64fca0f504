package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/upstream"
	"brokerweb/internal/workflow"
)

// previewLogCount is how many recent conversation entries a roster row shows.
const previewLogCount = 3

// Indian mobile numbers only; the backend enforces the same shape.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// InquiryBackend is the slice of the backend client the inquiry service needs.
type InquiryBackend interface {
	CreateInquiry(ctx context.Context, in upstream.InquiryInput) (*model.Inquiry, error)
	ListInquiries(ctx context.Context, token string, filter upstream.InquiryFilter) ([]model.Inquiry, error)
	GetInquiry(ctx context.Context, token, id string) (*model.Inquiry, error)
	UpdateStatus(ctx context.Context, token, id, status string) error
	AppendLog(ctx context.Context, token, id, agentID, message, newStatus string) error
	AssignInquiry(ctx context.Context, token, id, agentID string) error
	UnassignInquiry(ctx context.Context, token, id string) error
}

// InquiryListItem is a roster row: the inquiry plus a short tail of its
// conversation, oldest of the three first.
type InquiryListItem struct {
	model.Inquiry
	Preview []model.ConversationLog `json:"preview"`
}

// InquiryService owns the inquiry workflows: public capture, the agent
// pipeline and the admin triage loop.
type InquiryService interface {
	SubmitPublic(ctx context.Context, in upstream.InquiryInput) (*model.Inquiry, error)
	List(ctx context.Context, sess *model.Session, filter upstream.InquiryFilter) ([]InquiryListItem, error)
	Detail(ctx context.Context, sess *model.Session, id string) (*model.Inquiry, error)
	ComputeNextState(current workflow.Status) (workflow.Status, bool)
	ApplyTransition(ctx context.Context, sess *model.Session, inquiryID, agentID string, target workflow.Status, note string) (*model.Inquiry, error)
	AppendLog(ctx context.Context, sess *model.Session, inquiryID, agentID, message string) (*model.Inquiry, error)
	TriageStatus(ctx context.Context, sess *model.Session, inquiryID string, from, to workflow.Status) error
	Assign(ctx context.Context, sess *model.Session, inquiryID, agentID string) error
	Unassign(ctx context.Context, sess *model.Session, inquiryID string) error
}

type inquiryService struct {
	backend  InquiryBackend
	pipeline workflow.AgentPipeline
	triage   workflow.AdminTriage
}

// NewInquiryService creates a new inquiry service.
func NewInquiryService(backend InquiryBackend) InquiryService {
	return &inquiryService{backend: backend}
}

// SubmitPublic captures a lead from the public site. Name and a valid phone
// number are the only hard requirements.
func (s *inquiryService) SubmitPublic(ctx context.Context, in upstream.InquiryInput) (*model.Inquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !phonePattern.MatchString(in.Phone) {
		return nil, fmt.Errorf("%w: phone must be a valid 10-digit mobile number", apperrors.ErrValidation)
	}
	if in.InquiryType == "" {
		in.InquiryType = "general"
	}
	return s.backend.CreateInquiry(ctx, in)
}

// List returns the inquiry roster with per-row conversation previews.
func (s *inquiryService) List(ctx context.Context, sess *model.Session, filter upstream.InquiryFilter) ([]InquiryListItem, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}

	inquiries, err := s.backend.ListInquiries(ctx, token, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InquiryListItem, 0, len(inquiries))
	for _, inq := range inquiries {
		items = append(items, InquiryListItem{
			Inquiry: inq,
			Preview: previewLogs(inq.ConversationLogs),
		})
	}
	return items, nil
}

// Detail returns one inquiry with its conversation newest-first.
func (s *inquiryService) Detail(ctx context.Context, sess *model.Session, id string) (*model.Inquiry, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}

	inq, err := s.backend.GetInquiry(ctx, token, id)
	if err != nil {
		return nil, err
	}
	reverseLogs(inq.ConversationLogs)
	return inq, nil
}

// ComputeNextState reports the pipeline step after current. The second
// return is false when current is terminal or not a pipeline state.
func (s *inquiryService) ComputeNextState(current workflow.Status) (workflow.Status, bool) {
	return s.pipeline.Next(current)
}

// ApplyTransition advances an inquiry along the agent pipeline. The acting
// agent must be known before anything is sent; an unattributed transition is
// rejected locally. The returned inquiry is re-read from the backend so the
// caller sees the authoritative post-transition state.
func (s *inquiryService) ApplyTransition(ctx context.Context, sess *model.Session, inquiryID, agentID string, target workflow.Status, note string) (*model.Inquiry, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(agentID) == "" {
		return nil, fmt.Errorf("%w: acting agent is required for a status change", apperrors.ErrValidation)
	}

	inq, err := s.backend.GetInquiry(ctx, token, inquiryID)
	if err != nil {
		return nil, err
	}

	current := workflow.Status(inq.Status)
	if !s.pipeline.CanTransition(current, target) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", apperrors.ErrValidation, workflow.Label(current), workflow.Label(target))
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = "Status updated to " + workflow.Label(target)
	}

	if err := s.backend.AppendLog(ctx, token, inquiryID, agentID, note, string(target)); err != nil {
		return nil, err
	}

	updated, err := s.backend.GetInquiry(ctx, token, inquiryID)
	if err != nil {
		return nil, err
	}
	reverseLogs(updated.ConversationLogs)
	return updated, nil
}

// AppendLog records a conversation note without touching the status. An
// empty message is rejected before any request is made.
func (s *inquiryService) AppendLog(ctx context.Context, sess *model.Session, inquiryID, agentID, message string) (*model.Inquiry, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(agentID) == "" {
		return nil, fmt.Errorf("%w: acting agent is required", apperrors.ErrValidation)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: log message must not be empty", apperrors.ErrValidation)
	}

	if err := s.backend.AppendLog(ctx, token, inquiryID, agentID, message, ""); err != nil {
		return nil, err
	}

	updated, err := s.backend.GetInquiry(ctx, token, inquiryID)
	if err != nil {
		return nil, err
	}
	reverseLogs(updated.ConversationLogs)
	return updated, nil
}

// TriageStatus moves an inquiry within the admin triage loop. Unlike the
// agent pipeline this loop may reopen a closed inquiry, and carries no actor
// attribution.
func (s *inquiryService) TriageStatus(ctx context.Context, sess *model.Session, inquiryID string, from, to workflow.Status) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	if !s.triage.CanTransition(from, to) {
		return fmt.Errorf("%w: cannot move from %s to %s", apperrors.ErrValidation, workflow.Label(from), workflow.Label(to))
	}
	return s.backend.UpdateStatus(ctx, token, inquiryID, string(to))
}

// Assign hands an inquiry to an agent.
func (s *inquiryService) Assign(ctx context.Context, sess *model.Session, inquiryID, agentID string) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	if strings.TrimSpace(agentID) == "" {
		return fmt.Errorf("%w: agent is required", apperrors.ErrValidation)
	}
	return s.backend.AssignInquiry(ctx, token, inquiryID, agentID)
}

// Unassign removes the current agent from an inquiry.
func (s *inquiryService) Unassign(ctx context.Context, sess *model.Session, inquiryID string) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	return s.backend.UnassignInquiry(ctx, token, inquiryID)
}

// bearerToken extracts the upstream token from a session, refusing partial
// sessions outright.
func bearerToken(sess *model.Session) (string, error) {
	if sess == nil || !sess.Valid() {
		return "", apperrors.ErrSessionExpired
	}
	return sess.Token, nil
}

// previewLogs returns the last few entries in their original chronological
// order, matching what the roster shows under each row.
func previewLogs(logs []model.ConversationLog) []model.ConversationLog {
	if len(logs) <= previewLogCount {
		return append([]model.ConversationLog(nil), logs...)
	}
	return append([]model.ConversationLog(nil), logs[len(logs)-previewLogCount:]...)
}

// reverseLogs flips a conversation newest-first for the detail view.
func reverseLogs(logs []model.ConversationLog) {
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
}
