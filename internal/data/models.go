package data

import "time"

// Account contains the login information for each registered user.
type Account struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"size:32;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:64;not null"`
	CreatedAt    time.Time
}

func (Account) TableName() string { return "users" }

// GameHistory is one completed round for a user. Rows are written by the
// game logic when a round finishes; this layer only reads them.
type GameHistory struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     int64  `gorm:"index;not null"`
	Score      int32  `gorm:"not null"`
	Rank       int32  `gorm:"not null"`
	FinishedAt string `gorm:"size:32"`
}

func (GameHistory) TableName() string { return "game_history" }

// Word is one entry of the guessing word list.
type Word struct {
	ID   uint64 `gorm:"primaryKey"`
	Word string `gorm:"size:64;uniqueIndex;not null"`
}

func (Word) TableName() string { return "words" }
