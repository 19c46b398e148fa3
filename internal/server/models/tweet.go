package models

import "time"

// Tweet is a short post. UserID is the ownership key: it is set once, from the
// authenticated principal, when the tweet is created. Name, UserName and URL
// describe the author and are joined in on read.
type Tweet struct {
	ID        string
	Text      string
	CreatedAt time.Time
	UserID    string
	Name      string
	UserName  string
	URL       string
}

// TweetEvent is the payload broadcast on the "tweets" topic after a tweet is
// stored.
type TweetEvent struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
}
