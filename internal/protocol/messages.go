package protocol

const (
	// MaxUsernameLen matches the column width of the users table.
	MaxUsernameLen = 32
	// PasswordHashLen is the length of a hex encoded sha-256 digest.
	PasswordHashLen = 64

	// FinishedAtSize is the fixed width of the timestamp field in a game
	// history entry: 31 usable characters plus a null terminator.
	FinishedAtSize = 32
	// HistoryEntrySize is the serialized size of one game history entry.
	HistoryEntrySize = 4 + 4 + FinishedAtSize
	// MaxHistoryEntries is the largest entry count whose payload fits in the
	// shared buffer alongside the frame header and the count field.
	MaxHistoryEntries = (MaxPayloadSize - 2) / HistoryEntrySize
)

// Credentials is the payload of the Login and Register messages: a
// length-prefixed username followed by a fixed-width hex password hash.
type Credentials struct {
	Username     string
	PasswordHash string
}

func (c *Credentials) MarshalPayload() ([]byte, error) {
	if c.Username == "" || len(c.Username) > MaxUsernameLen {
		return nil, ErrMalformedPayload
	}
	if len(c.PasswordHash) != PasswordHashLen {
		return nil, ErrMalformedPayload
	}

	var w Writer
	w.WriteUint8(uint8(len(c.Username)))
	w.WriteBytes([]byte(c.Username))
	w.WriteBytes([]byte(c.PasswordHash))
	return w.Bytes(), nil
}

func (c *Credentials) UnmarshalPayload(p []byte) error {
	r := NewReader(p)
	ulen := int(r.ReadUint8())
	if r.Err() == nil && (ulen == 0 || ulen > MaxUsernameLen) {
		return ErrMalformedPayload
	}
	c.Username = string(r.ReadBytes(ulen))
	c.PasswordHash = string(r.ReadBytes(PasswordHashLen))
	if err := r.Err(); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ErrMalformedPayload
	}
	return nil
}

// Auth response statuses.
const (
	AuthStatusOK     uint8 = 0
	AuthStatusDenied uint8 = 1
)

// AuthResponse reports the outcome of a Login or Register message. UserID is
// only meaningful when Status is AuthStatusOK.
type AuthResponse struct {
	Status uint8
	UserID int32
}

func (a *AuthResponse) MarshalPayload() ([]byte, error) {
	var w Writer
	w.WriteUint8(a.Status)
	w.WriteInt32(a.UserID)
	return w.Bytes(), nil
}

func (a *AuthResponse) UnmarshalPayload(p []byte) error {
	r := NewReader(p)
	a.Status = r.ReadUint8()
	a.UserID = r.ReadInt32()
	if err := r.Err(); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ErrMalformedPayload
	}
	return nil
}

// GameHistoryEntry is one completed round as sent to the client.
type GameHistoryEntry struct {
	Score      int32
	Rank       int32
	FinishedAt string
}

// GameHistoryResponse is the payload answering GetGameHistory: a big-endian
// entry count followed by that many fixed-size entries.
type GameHistoryResponse struct {
	Entries []GameHistoryEntry
}

// MarshalPayload serializes the response. If the natural payload would not
// fit in the shared buffer the entry count is reduced to the largest value
// that does; the declared count always matches the entries actually present.
func (g *GameHistoryResponse) MarshalPayload() ([]byte, error) {
	entries := g.Entries
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}

	var w Writer
	w.WriteUint16(uint16(len(entries)))
	for _, e := range entries {
		w.WriteInt32(e.Score)
		w.WriteInt32(e.Rank)
		w.WriteFixedString(e.FinishedAt, FinishedAtSize)
	}
	return w.Bytes(), nil
}

func (g *GameHistoryResponse) UnmarshalPayload(p []byte) error {
	r := NewReader(p)
	count := int(r.ReadUint16())

	entries := make([]GameHistoryEntry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, GameHistoryEntry{
			Score:      r.ReadInt32(),
			Rank:       r.ReadInt32(),
			FinishedAt: r.ReadFixedString(FinishedAtSize),
		})
	}
	if err := r.Err(); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ErrMalformedPayload
	}
	g.Entries = entries
	return nil
}
