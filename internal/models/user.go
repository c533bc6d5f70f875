package models

// User is the read-only view of the users collection this service consumes.
// Profile CRUD and the follow/unfollow handlers that keep following/followers
// in sync live in another service.
type User struct {
	ID         string   `bson:"_id" json:"id"`
	FirstName  string   `bson:"first_name" json:"first_name"`
	LastName   string   `bson:"last_name" json:"last_name"`
	ProfilePic string   `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"`
	Following  []string `bson:"following" json:"following"`
	Followers  []string `bson:"followers" json:"followers"`
}

func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ChatPartner is the contact-list entry for the chat screen: everyone the
// user follows, is followed by, or already has a conversation with.
type ChatPartner struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ProfilePic      string `json:"profile_pic,omitempty"`
	IsMutualFollow  bool   `json:"is_mutual_follow"`
	IsFollowRequest bool   `json:"is_follow_request"`
}
