package pkg

import "github.com/google/uuid"

const gameIDLength = 8

// GenerateGameID - generates a short unique identifier for a game. Short
// enough to share out of band for private invitations.
func GenerateGameID() string {
	return uuid.NewString()[:gameIDLength]
}
