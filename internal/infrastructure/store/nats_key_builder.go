// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package store

import "strings"

// Meeting keys are the meeting UID. Event keys nest the event under its
// meeting as "<meetingUID>.<eventUID>" so all events for one meeting can
// be listed by key prefix. UIDs are UUIDs, which only contain characters
// valid in NATS KV keys, so no further encoding is needed.

const eventKeySeparator = "."

// eventKey builds the KV key for a meeting event.
func eventKey(meetingUID, eventUID string) string {
	return meetingUID + eventKeySeparator + eventUID
}

// eventKeyPrefix builds the key prefix matching all events of a meeting.
func eventKeyPrefix(meetingUID string) string {
	return meetingUID + eventKeySeparator
}

// splitEventKey returns the meeting UID and event UID from an event key.
// The second return value is false when the key is not an event key.
func splitEventKey(key string) (meetingUID, eventUID string, ok bool) {
	meetingUID, eventUID, ok = strings.Cut(key, eventKeySeparator)
	if !ok || meetingUID == "" || eventUID == "" {
		return "", "", false
	}
	return meetingUID, eventUID, true
}
