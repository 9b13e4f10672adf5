package domain

import "time"

const DefaultTokenType = "Bearer"

type Credentials struct {
	AccessToken string
	TokenType   string
	SavedAt     time.Time
}
