package testutil

// Fixture JSON payloads mirroring what the backend returns.

// ConversationJSON is a two-message thread between users 1 and 2 where
// the inbound message from 2 has not been seen yet.
const ConversationJSON = `{
	"content": [
		{"senderId": 1, "receiverId": 2, "message": "Hello!", "timestamp": "2026-01-10T09:00:00Z", "seen": true},
		{"senderId": 2, "receiverId": 1, "message": "Hi, nice to meet you", "timestamp": "2026-01-10T09:01:00Z", "seen": false}
	],
	"page": 0,
	"size": 50,
	"totalElements": 2
}`

// BlockStatusClearJSON reports no blocking in either direction
const BlockStatusClearJSON = `{"blockedByMe": false, "blockedMe": false}`

// OnlineUsersJSON lists user 2 as online
const OnlineUsersJSON = `[2, 7, 31]`

// ProfilesJSON is a small browsable profile list
const ProfilesJSON = `[
	{"id": 2, "firstName": "Asha", "lastName": "Rao", "city": "Pune", "updatePhoto": "https://cdn.example.com/p/2.jpg"},
	{"id": 7, "firstName": "Rahul", "lastName": "Verma", "city": "Jaipur"}
]`

// NotificationsJSON is a feed with one unread entry missing its read flag
const NotificationsJSON = `[
	{"id": 11, "title": "New interest received", "message": "Asha sent you an interest", "read": true, "createdAt": "2026-01-09T12:00:00Z"},
	{"id": 12, "title": "Profile viewed", "message": "Your profile was viewed 3 times"}
]`
