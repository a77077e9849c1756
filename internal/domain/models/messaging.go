// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

// NATS subjects that the board meeting service sends messages about.
const (
	// IndexMeetingSubject is the subject for the meeting indexing.
	// The subject is of the form: eboard.index.meeting
	IndexMeetingSubject = "eboard.index.meeting"

	// IndexMeetingEventSubject is the subject for the meeting event indexing.
	// The subject is of the form: eboard.index.meeting_event
	IndexMeetingEventSubject = "eboard.index.meeting_event"

	// MeetingCreatedSubject announces a newly scheduled meeting.
	// The subject is of the form: eboard.meetings-api.meeting_created
	MeetingCreatedSubject = "eboard.meetings-api.meeting_created"

	// MeetingUpdatedSubject announces a meeting change, including state
	// transitions.
	// The subject is of the form: eboard.meetings-api.meeting_updated
	MeetingUpdatedSubject = "eboard.meetings-api.meeting_updated"

	// MeetingCancelledSubject announces a meeting cancellation.
	// The subject is of the form: eboard.meetings-api.meeting_cancelled
	MeetingCancelledSubject = "eboard.meetings-api.meeting_cancelled"
)

// NATS wildcard subjects that the board meeting service handles messages about.
const (
	// MeetingsAPIQueue is the queue name for the meetings API handlers.
	MeetingsAPIQueue = "eboard.meetings-api.queue"
)

// NATS specific subjects that the board meeting service handles messages about.
const (
	// MeetingGetTitleSubject is the subject for the meeting get title.
	// The subject is of the form: eboard.meetings-api.get_title
	MeetingGetTitleSubject = "eboard.meetings-api.get_title"

	// MeetingGetStatusSubject is the subject for the meeting get status.
	// The subject is of the form: eboard.meetings-api.get_status
	MeetingGetStatusSubject = "eboard.meetings-api.get_status"
)

// NATS subjects of other services that this service requests over.
const (
	// DirectoryGetUserSubject resolves a user UID to a directory record.
	// The subject is of the form: eboard.directory-api.get_user
	DirectoryGetUserSubject = "eboard.directory-api.get_user"

	// DirectoryListParticipantsSubject lists a board's roster.
	// The subject is of the form: eboard.directory-api.list_participants
	DirectoryListParticipantsSubject = "eboard.directory-api.list_participants"

	// BoardGetSettingsSubject fetches a board's governance settings.
	// The subject is of the form: eboard.boards-api.get_settings
	BoardGetSettingsSubject = "eboard.boards-api.get_settings"
)

// MessageAction is a type for the action of a meeting message.
type MessageAction string

// MessageAction constants for the action of a meeting message.
const (
	// ActionCreated is the action for a resource creation message.
	ActionCreated MessageAction = "created"
	// ActionUpdated is the action for a resource update message.
	ActionUpdated MessageAction = "updated"
	// ActionDeleted is the action for a resource deletion message.
	ActionDeleted MessageAction = "deleted"
)

// MeetingIndexerMessage is a NATS message schema for sending messages related
// to meeting CRUD operations.
type MeetingIndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers"`
	Data    any               `json:"data"`
	// Tags is a list of tags to be set on the indexed resource for search.
	Tags []string `json:"tags"`
}

// MeetingAnnouncement is the schema for the event-bus messages published on
// the meeting_created, meeting_updated and meeting_cancelled subjects. It is
// msgpack-encoded on the wire.
type MeetingAnnouncement struct {
	MeetingUID string `msgpack:"meeting_uid" json:"meeting_uid"`
	BoardUID   string `msgpack:"board_uid" json:"board_uid"`
	Title      string `msgpack:"title" json:"title"`
	State      string `msgpack:"state" json:"state"`
	StartTime  string `msgpack:"start_time" json:"start_time"`
	SeriesUID  string `msgpack:"series_uid,omitempty" json:"series_uid,omitempty"`
}

// ListParticipantsRequest is the request schema for the directory roster
// subject.
type ListParticipantsRequest struct {
	BoardUID string `json:"board_uid"`
}

// ListParticipantsResponse is the reply schema for the directory roster
// subject.
type ListParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

// GetUserRequest is the request schema for the directory user subject.
type GetUserRequest struct {
	UserUID string `json:"user_uid"`
}

// GetBoardSettingsRequest is the request schema for the board settings
// subject.
type GetBoardSettingsRequest struct {
	BoardUID string `json:"board_uid"`
}
