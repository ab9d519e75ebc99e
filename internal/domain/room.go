package domain

// Source is one quality variant of a playlist entry.
type Source struct {
	Src        string `json:"src"`
	Resolution string `json:"resolution"`
}

// Subtitle describes one subtitle track of a playlist entry.
type Subtitle struct {
	Src   string `json:"src"`
	Lang  string `json:"lang"`
	Label string `json:"label"`
}

type MediaElement struct {
	Src       []Source   `json:"src"`
	Sub       []Subtitle `json:"sub"`
	Title     string     `json:"title,omitempty"`
	Thumbnail string     `json:"thumbnail,omitempty"`
}

type User struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	IsOwner bool   `json:"isOwner"`
}

// TargetState is the authoritative media state every client converges on.
type TargetState struct {
	Playlist     Playlist `json:"playlist"`
	Playing      bool     `json:"playing"`
	Paused       bool     `json:"paused"`
	Progress     float64  `json:"progress"`
	Duration     float64  `json:"duration"`
	Volume       float64  `json:"volume"`
	Muted        bool     `json:"muted"`
	PlaybackRate float64  `json:"playbackRate"`
	Loop         bool     `json:"loop"`
	Fullscreen   bool     `json:"fullscreen"`
}

// RoomState is the wire shape broadcast to clients on every mutation.
// Version increases by one per mutation so a client can recognize its own
// echoed update without deep comparison.
type RoomState struct {
	Id          string      `json:"id"`
	OwnerName   string      `json:"ownerName"`
	IsPublic    bool        `json:"isPublic"`
	Version     int64       `json:"version"`
	Users       []User      `json:"users"`
	TargetState TargetState `json:"targetState"`
}

// Room is the stored aggregate: broadcastable state plus the chat ring,
// which is only sent as history on join.
type Room struct {
	State RoomState     `json:"state"`
	Chat  []ChatMessage `json:"chat"`
}

func NewRoom(id string, isPublic bool) Room {
	return Room{
		State: RoomState{
			Id:       id,
			IsPublic: isPublic,
			Users:    []User{},
			TargetState: TargetState{
				Playlist:     Playlist{Items: []MediaElement{}, CurrentIndex: NoSelection},
				Paused:       true,
				Volume:       1,
				PlaybackRate: 1,
			},
		},
		Chat: []ChatMessage{},
	}
}

// Clone returns a deep copy so store callers never alias stored slices.
func (r Room) Clone() Room {
	c := r
	c.State.Users = append([]User(nil), r.State.Users...)
	c.State.TargetState.Playlist = r.State.TargetState.Playlist.clone()
	c.Chat = append([]ChatMessage(nil), r.Chat...)
	return c
}

func (s RoomState) HasUser(userId string) bool {
	for _, u := range s.Users {
		if u.Id == userId {
			return true
		}
	}

	return false
}

func (s RoomState) GetUser(userId string) (User, bool) {
	for _, u := range s.Users {
		if u.Id == userId {
			return u, true
		}
	}

	return User{}, false
}
