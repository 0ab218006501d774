package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const tagLen = 16 // hex chars

// Signer tague les custom_id des composants Discord. Le secret vit le temps
// du process: après un restart les anciens boutons deviennent muets, ce qui
// est voulu (l'état CAPTCHA est volatil lui aussi).
type Signer struct {
	secret []byte
}

func NewSigner() (*Signer, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return &Signer{secret: secret}, nil
}

// Sign calcule le tag HMAC de "action:guild:user".
func (sg *Signer) Sign(action, guildID, userID string) string {
	mac := hmac.New(sha256.New, sg.secret)
	mac.Write([]byte(strings.Join([]string{action, guildID, userID}, ":")))
	return hex.EncodeToString(mac.Sum(nil))[:tagLen]
}

// Verify compare en temps constant le tag reçu au tag attendu.
func (sg *Signer) Verify(action, guildID, userID, tag string) bool {
	want := sg.Sign(action, guildID, userID)
	return subtle.ConstantTimeCompare([]byte(want), []byte(tag)) == 1
}
