package room

type RoomSummary struct {
	Id          string `json:"id"`
	OwnerName   string `json:"ownerName"`
	MemberCount int    `json:"memberCount"`
}

type Stats struct {
	Rooms int `json:"rooms"`
	Users int `json:"users"`
}
