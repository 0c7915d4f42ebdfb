// Package session builds and verifies the signed payload a member shows at
// the gym door. The checksum is a deterministic digest over the payload
// fields, so verification needs no network and no stored state. It proves
// integrity, not origin: there is no server-held secret, and a verifier that
// must resist forgery needs a server-issued signature instead.
package session

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/booking"
)

const (
	version        = "v1"
	checksumLength = 16 // hex chars of the SHA-256 prefix
)

// Payload binds a booking to its time window and gym.
type Payload struct {
	BookingID string    `json:"booking_id"`
	GymID     string    `json:"gym_id"`
	UserID    string    `json:"user_id"`
	Start     time.Time `json:"session_start"`
	End       time.Time `json:"session_end"`
	Reference string    `json:"reference"`
	Checksum  string    `json:"checksum"`
}

// Generate derives a payload from a booking snapshot. It never mutates the
// booking.
func Generate(b *booking.Booking) Payload {
	p := Payload{
		BookingID: b.ID,
		GymID:     b.GymID,
		UserID:    b.UserID,
		Start:     b.StartTime,
		End:       b.EndTime,
		Reference: b.Reference,
	}
	p.Checksum = checksum(p)
	return p
}

func canonical(p Payload) string {
	return strings.Join([]string{
		version,
		p.BookingID,
		p.GymID,
		p.UserID,
		strconv.FormatInt(p.Start.Unix(), 10),
		strconv.FormatInt(p.End.Unix(), 10),
		p.Reference,
	}, "|")
}

func checksum(p Payload) string {
	sum := sha256.Sum256([]byte(canonical(p)))
	return hex.EncodeToString(sum[:])[:checksumLength]
}

// Encode renders the payload as an opaque string fit for any 2-D barcode.
func (p Payload) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(canonical(p) + "|" + p.Checksum))
}

// Decode parses an encoded payload without verifying it; Validate does the
// verification.
func Decode(encoded string) (Payload, error) {
	// Strict mode rejects non-zero trailing padding bits, so no two
	// distinct encodings decode to the same canonical string.
	raw, err := base64.RawURLEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 8 || parts[0] != version {
		return Payload{}, fmt.Errorf("malformed payload")
	}

	start, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return Payload{}, fmt.Errorf("malformed session start")
	}
	end, err := strconv.ParseInt(parts[5], 10, 64)
	if err != nil {
		return Payload{}, fmt.Errorf("malformed session end")
	}

	return Payload{
		BookingID: parts[1],
		GymID:     parts[2],
		UserID:    parts[3],
		Start:     time.Unix(start, 0).UTC(),
		End:       time.Unix(end, 0).UTC(),
		Reference: parts[6],
		Checksum:  parts[7],
	}, nil
}
