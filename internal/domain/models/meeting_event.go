// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies a kind of meeting lifecycle event. The set is fixed;
// the event log rejects unknown types.
type EventType string

// Pre-meeting event types.
const (
	EventMeetingCreated        EventType = "meeting_created"
	EventMeetingUpdated        EventType = "meeting_updated"
	EventMeetingRescheduled    EventType = "meeting_rescheduled"
	EventSubmittedForApproval  EventType = "submitted_for_approval"
	EventApproved              EventType = "approved"
	EventRejected              EventType = "rejected"
	EventResubmitted           EventType = "resubmitted"
	EventMeetingCancelled      EventType = "meeting_cancelled"
	EventAgendaPublished       EventType = "agenda_published"
	EventAgendaUpdated         EventType = "agenda_updated"
	EventDocumentAdded         EventType = "document_added"
	EventDocumentRemoved       EventType = "document_removed"
	EventParticipantAdded      EventType = "participant_added"
	EventParticipantRemoved    EventType = "participant_removed"
	EventInvitationSent        EventType = "invitation_sent"
	EventReminderSent          EventType = "reminder_sent"
)

// During-meeting event types.
const (
	EventMeetingStarted     EventType = "meeting_started"
	EventAttendanceRecorded EventType = "attendance_recorded"
	EventQuorumAchieved     EventType = "quorum_achieved"
	EventQuorumLost         EventType = "quorum_lost"
	EventMotionRaised       EventType = "motion_raised"
	EventVoteOpened         EventType = "vote_opened"
	EventVoteClosed         EventType = "vote_closed"
	EventNoteAdded          EventType = "note_added"
)

// Post-meeting event types.
const (
	EventMeetingEnded        EventType = "meeting_ended"
	EventMinutesDrafted      EventType = "minutes_drafted"
	EventMinutesPublished    EventType = "minutes_published"
	EventMinutesApproved     EventType = "minutes_approved"
	EventActionItemsAssigned EventType = "action_items_assigned"
	EventArchived            EventType = "archived"
	EventSuperseded          EventType = "superseded"
)

// SystemActorUID is the synthetic actor recorded on events the service emits
// on its own behalf, e.g. the approved event on the auto-approved path.
const (
	SystemActorUID  = "system"
	SystemActorName = "System"
)

// statusChangingEvents are the event types that carry a from/to state pair.
var statusChangingEvents = map[EventType]bool{
	EventMeetingCreated:       true,
	EventSubmittedForApproval: true,
	EventApproved:             true,
	EventRejected:             true,
	EventResubmitted:          true,
	EventMeetingStarted:       true,
	EventMeetingEnded:         true,
	EventArchived:             true,
	EventMeetingCancelled:     true,
}

// IsValid reports whether the event type is a member of the fixed set.
func (e EventType) IsValid() bool {
	_, ok := payloadFactories[e]
	return ok
}

// ChangesStatus reports whether events of this type record a state
// transition.
func (e EventType) ChangesStatus() bool {
	return statusChangingEvents[e]
}

// MeetingEvent is an immutable audit record of something that happened to a
// meeting. Events are created once and never mutated or deleted; the event
// log is the source of truth for a meeting's history, and the state on the
// Meeting record is a cached projection of the latest status-changing event.
//
// PerformedByName is a snapshot of the actor's name at the time of the event,
// not a live join, so history stays accurate if the actor is later renamed.
type MeetingEvent struct {
	UID             string          `json:"uid"`
	MeetingUID      string          `json:"meeting_uid"`
	Type            EventType       `json:"type"`
	FromState       *MeetingState   `json:"from_state,omitempty"`
	ToState         *MeetingState   `json:"to_state,omitempty"`
	PerformedBy     string          `json:"performed_by"`
	PerformedByName string          `json:"performed_by_name"`
	PerformedAt     time.Time       `json:"performed_at"`
	Payload         json.RawMessage `json:"payload,omitempty"`
}

// EventPayload is the typed metadata attached to an event. Payloads are
// serialized to a generic blob only at the persistence boundary; everywhere
// else they are concrete types.
type EventPayload interface {
	isEventPayload()
}

// CreatedPayload accompanies meeting_created.
type CreatedPayload struct {
	RequiresConfirmation bool       `json:"requires_confirmation"`
	SeriesUID            string     `json:"series_uid,omitempty"`
	SeriesPosition       int        `json:"series_position,omitempty"`
	Override             *Overrides `json:"override,omitempty"`
	OverrideReason       string     `json:"override_reason,omitempty"`
}

// SubmissionPayload accompanies submitted_for_approval and resubmitted.
type SubmissionPayload struct {
	AutoApproved   bool       `json:"auto_approved,omitempty"`
	Override       *Overrides `json:"override,omitempty"`
	OverrideReason string     `json:"override_reason,omitempty"`
}

// ApprovalPayload accompanies approved.
type ApprovalPayload struct {
	ApproverRole RoleCode `json:"approver_role,omitempty"`
	// System marks the synthetic approval on the auto-approved path.
	System bool `json:"system,omitempty"`
}

// RejectionPayload accompanies rejected.
type RejectionPayload struct {
	ApproverRole RoleCode `json:"approver_role,omitempty"`
	Reason       string   `json:"reason"`
}

// CancellationPayload accompanies meeting_cancelled.
type CancellationPayload struct {
	Reason string `json:"reason"`
}

// ReschedulePayload accompanies meeting_rescheduled.
type ReschedulePayload struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// AgendaPayload accompanies agenda_published and agenda_updated.
type AgendaPayload struct {
	AgendaUID string `json:"agenda_uid,omitempty"`
}

// DocumentPayload accompanies document_added and document_removed.
type DocumentPayload struct {
	DocumentUID string `json:"document_uid,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// ParticipantPayload accompanies participant_added and participant_removed.
type ParticipantPayload struct {
	UserUID string `json:"user_uid"`
	Guest   bool   `json:"guest,omitempty"`
}

// NotificationPayload accompanies invitation_sent and reminder_sent.
type NotificationPayload struct {
	Recipient string `json:"recipient"`
	Channel   string `json:"channel,omitempty"`
}

// AttendancePayload accompanies attendance_recorded.
type AttendancePayload struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

// QuorumPayload accompanies quorum_achieved and quorum_lost.
type QuorumPayload struct {
	Required int `json:"required"`
	Present  int `json:"present"`
}

// MotionPayload accompanies motion_raised.
type MotionPayload struct {
	MotionUID string `json:"motion_uid"`
	Title     string `json:"title,omitempty"`
}

// VotePayload accompanies vote_opened and vote_closed.
type VotePayload struct {
	MotionUID string `json:"motion_uid"`
	Outcome   string `json:"outcome,omitempty"`
}

// NotePayload accompanies note_added and meeting_updated.
type NotePayload struct {
	Text string `json:"text,omitempty"`
}

// MinutesPayload accompanies minutes_drafted, minutes_published and
// minutes_approved.
type MinutesPayload struct {
	MinutesUID string `json:"minutes_uid,omitempty"`
	Version    int    `json:"version,omitempty"`
}

// ActionItemsPayload accompanies action_items_assigned.
type ActionItemsPayload struct {
	Count int `json:"count"`
}

// ArchivePayload accompanies archived.
type ArchivePayload struct {
	RetentionDays int `json:"retention_days,omitempty"`
}

// TransitionPayload accompanies status-changing events with no extra data
// (meeting_started, meeting_ended).
type TransitionPayload struct{}

// SupersededPayload accompanies superseded, the compensating event that marks
// an earlier entry as corrected by a later one.
type SupersededPayload struct {
	SupersededEventUID string `json:"superseded_event_uid"`
	Reason             string `json:"reason,omitempty"`
}

func (CreatedPayload) isEventPayload()      {}
func (SubmissionPayload) isEventPayload()   {}
func (ApprovalPayload) isEventPayload()     {}
func (RejectionPayload) isEventPayload()    {}
func (CancellationPayload) isEventPayload() {}
func (ReschedulePayload) isEventPayload()   {}
func (AgendaPayload) isEventPayload()       {}
func (DocumentPayload) isEventPayload()     {}
func (ParticipantPayload) isEventPayload()  {}
func (NotificationPayload) isEventPayload() {}
func (AttendancePayload) isEventPayload()   {}
func (QuorumPayload) isEventPayload()       {}
func (MotionPayload) isEventPayload()       {}
func (VotePayload) isEventPayload()         {}
func (NotePayload) isEventPayload()         {}
func (MinutesPayload) isEventPayload()      {}
func (ActionItemsPayload) isEventPayload()  {}
func (ArchivePayload) isEventPayload()      {}
func (TransitionPayload) isEventPayload()   {}
func (SupersededPayload) isEventPayload()   {}

// payloadFactories maps every event type in the fixed set to its payload
// variant. This is the single place the 31-member enumeration is spelled out.
var payloadFactories = map[EventType]func() EventPayload{
	EventMeetingCreated:        func() EventPayload { return &CreatedPayload{} },
	EventMeetingUpdated:        func() EventPayload { return &NotePayload{} },
	EventMeetingRescheduled:    func() EventPayload { return &ReschedulePayload{} },
	EventSubmittedForApproval:  func() EventPayload { return &SubmissionPayload{} },
	EventApproved:              func() EventPayload { return &ApprovalPayload{} },
	EventRejected:              func() EventPayload { return &RejectionPayload{} },
	EventResubmitted:           func() EventPayload { return &SubmissionPayload{} },
	EventMeetingCancelled:      func() EventPayload { return &CancellationPayload{} },
	EventAgendaPublished:       func() EventPayload { return &AgendaPayload{} },
	EventAgendaUpdated:         func() EventPayload { return &AgendaPayload{} },
	EventDocumentAdded:         func() EventPayload { return &DocumentPayload{} },
	EventDocumentRemoved:       func() EventPayload { return &DocumentPayload{} },
	EventParticipantAdded:      func() EventPayload { return &ParticipantPayload{} },
	EventParticipantRemoved:    func() EventPayload { return &ParticipantPayload{} },
	EventInvitationSent:        func() EventPayload { return &NotificationPayload{} },
	EventReminderSent:          func() EventPayload { return &NotificationPayload{} },
	EventMeetingStarted:        func() EventPayload { return &TransitionPayload{} },
	EventAttendanceRecorded:    func() EventPayload { return &AttendancePayload{} },
	EventQuorumAchieved:        func() EventPayload { return &QuorumPayload{} },
	EventQuorumLost:            func() EventPayload { return &QuorumPayload{} },
	EventMotionRaised:          func() EventPayload { return &MotionPayload{} },
	EventVoteOpened:            func() EventPayload { return &VotePayload{} },
	EventVoteClosed:            func() EventPayload { return &VotePayload{} },
	EventNoteAdded:             func() EventPayload { return &NotePayload{} },
	EventMeetingEnded:          func() EventPayload { return &TransitionPayload{} },
	EventMinutesDrafted:        func() EventPayload { return &MinutesPayload{} },
	EventMinutesPublished:      func() EventPayload { return &MinutesPayload{} },
	EventMinutesApproved:       func() EventPayload { return &MinutesPayload{} },
	EventActionItemsAssigned:   func() EventPayload { return &ActionItemsPayload{} },
	EventArchived:              func() EventPayload { return &ArchivePayload{} },
	EventSuperseded:            func() EventPayload { return &SupersededPayload{} },
}

// EncodePayload serializes a typed payload for storage on the event.
func EncodePayload(payload EventPayload) (json.RawMessage, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding event payload: %w", err)
	}
	return data, nil
}

// DecodePayload deserializes the event's payload into the variant registered
// for its type.
func (e *MeetingEvent) DecodePayload() (EventPayload, error) {
	factory, ok := payloadFactories[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	payload := factory()
	if len(e.Payload) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(e.Payload, payload); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", e.Type, err)
	}
	return payload, nil
}

// Tags returns the indexer tags for the event.
func (e *MeetingEvent) Tags() []string {
	var tags []string
	if e.UID != "" {
		tags = append(tags, e.UID)
	}
	if e.MeetingUID != "" {
		tags = append(tags, "meeting_uid:"+e.MeetingUID)
	}
	if e.Type != "" {
		tags = append(tags, "event_type:"+string(e.Type))
	}
	return tags
}
